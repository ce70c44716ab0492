// Package cookies reads YouTube session cookies from local browsers.
package cookies

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"ytdeck/internal/domain/logger"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
	"golang.org/x/net/publicsuffix"
)

// Loader reads cookies for a registrable domain.
type Loader func(ctx context.Context, domain string) []*http.Cookie

// Manager caches browser cookies per registrable domain.
type Manager struct {
	mu      sync.RWMutex
	cookies map[string][]*http.Cookie
	load    Loader
}

// NewManager returns a manager reading cookies from every installed browser.
func NewManager() *Manager {
	return NewManagerWithLoader(loadFromBrowsers)
}

// NewManagerWithLoader returns a manager using a custom loader.
func NewManagerWithLoader(load Loader) *Manager {
	return &Manager{
		cookies: make(map[string][]*http.Cookie),
		load:    load,
	}
}

// Cookies returns the cookies for rawURL's registrable domain, loading them on first use.
func (m *Manager) Cookies(ctx context.Context, rawURL string) ([]*http.Cookie, error) {
	domain, err := baseDomain(rawURL)
	if err != nil {
		return nil, fmt.Errorf("error extracting base domain in cookie grab: %w", err)
	}

	m.mu.RLock()
	if c, ok := m.cookies[domain]; ok {
		m.mu.RUnlock()
		return c, nil
	}
	m.mu.RUnlock()

	c := m.load(ctx, domain)

	m.mu.Lock()
	m.cookies[domain] = c
	m.mu.Unlock()
	return c, nil
}

// Jar returns a cookie jar seeded with the cookies for rawURL.
func (m *Manager) Jar(ctx context.Context, rawURL string) (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	c, err := m.Cookies(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(c) > 0 {
		jar.SetCookies(u, c)
	}
	return jar, nil
}

// loadFromBrowsers reads valid cookies for domain via kooky.
func loadFromBrowsers(ctx context.Context, domain string) []*http.Cookie {
	kookieCookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(domain))
	if err != nil {
		logger.Pl.D(2, "Failed reading cookies: %v", err)
	}
	if len(kookieCookies) == 0 {
		logger.Pl.I("No cookies found for %s", domain)
		return nil
	}
	logger.Pl.I("Found %d cookies for %s", len(kookieCookies), domain)
	return convertToHTTPCookies(kookieCookies)
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		}
	}
	return httpCookies
}

// baseDomain returns the registrable domain (eTLD+1) of rawURL.
func baseDomain(rawURL string) (string, error) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// Hosts like "localhost" have no public suffix.
		return host, nil
	}
	return d, nil
}

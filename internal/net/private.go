// Package net provides networking helpers for ytdeck.
package net

import (
	"net"
	"net/netip"
	"net/url"
	"ytdeck/internal/domain/logger"
)

// IsPrivateNetwork reports whether host (a bare host, host:port or URL) only
// reaches loopback, private or link-local addresses.
//
// Hostnames are resolved. Unresolvable names and unspecified addresses like
// 0.0.0.0 count as public.
func IsPrivateNetwork(host string) bool {
	h := hostOnly(host)
	if h == "localhost" {
		return true
	}
	if addr, err := netip.ParseAddr(h); err == nil {
		return isPrivateAddr(addr)
	}

	ips, err := net.LookupIP(h)
	if err != nil || len(ips) == 0 {
		logger.Pl.D(1, "Failed to resolve hostname %q: %v", h, err)
		return false
	}
	for _, ip := range ips {
		addr, ok := netip.AddrFromSlice(ip)
		if !ok || !isPrivateAddr(addr.Unmap()) {
			return false
		}
	}
	return true
}

func isPrivateAddr(a netip.Addr) bool {
	return a.IsLoopback() || a.IsPrivate() || a.IsLinkLocalUnicast()
}

// hostOnly strips scheme, port and brackets.
func hostOnly(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	if u, err := url.Parse(host); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return host
}

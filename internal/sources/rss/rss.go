// Package rss fetches per-channel Atom feeds for the subscription feed.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
	"ytdeck/internal/sources"
	"ytdeck/internal/sources/cookies"

	"github.com/gocolly/colly"
)

const defaultFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// Option configures a Client.
type Option func(*Client)

// WithFeedURL overrides the feed URL template. It must contain one %s for the channel ID.
func WithFeedURL(template string) Option {
	return func(c *Client) {
		c.feedURL = template
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the request user agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCookies sends browser cookies with each request.
func WithCookies(m *cookies.Manager) Option {
	return func(c *Client) {
		c.cookies = m
	}
}

// Client fetches channel feeds.
type Client struct {
	feedURL   string
	timeout   time.Duration
	userAgent string
	cookies   *cookies.Manager
}

// New returns a feed client.
func New(opts ...Option) *Client {
	c := &Client{
		feedURL:   defaultFeedURL,
		timeout:   consts.HTTPClientTimeout,
		userAgent: consts.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns a feed source for a subscription.
func (c *Client) Source(sub models.Subscription) feed.Source {
	channelID := sub.ChannelID
	return feed.NewSource(consts.SourceRSSPrefix+channelID, func(ctx context.Context) (feed.Page, error) {
		return c.ChannelFeed(ctx, channelID)
	})
}

// ChannelFeed fetches and parses the feed for one channel.
func (c *Client) ChannelFeed(ctx context.Context, channelID string) (feed.Page, error) {
	sourceID := consts.SourceRSSPrefix + channelID
	feedURL := fmt.Sprintf(c.feedURL, channelID)

	body, err := c.fetch(ctx, sourceID, feedURL)
	if err != nil {
		return feed.Page{}, err
	}

	parsed, err := parseAtomFeed(body)
	if err != nil {
		return feed.Page{}, &sources.SourceError{Source: sourceID, Err: fmt.Errorf("%w: %v", sources.ErrMalformedResponse, err)}
	}

	items := feedToItems(parsed, channelID)
	logger.Pl.D(2, "Fetched %d entries from feed for channel %q", len(items), channelID)
	return feed.Page{Items: items}, nil
}

// fetchResult is the outcome of one collector visit.
type fetchResult struct {
	body []byte
	err  error
}

// fetch downloads the feed with a fresh collector.
//
// Colly has no context support, so the visit runs in a goroutine and is
// abandoned when ctx ends.
func (c *Client) fetch(ctx context.Context, sourceID, feedURL string) ([]byte, error) {
	collector := colly.NewCollector(
		colly.UserAgent(c.userAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(c.timeout)

	if c.cookies != nil {
		ck, err := c.cookies.Cookies(ctx, feedURL)
		if err != nil {
			logger.Pl.D(1, "No cookies for %q: %v", feedURL, err)
		} else if len(ck) > 0 {
			if err := collector.SetCookies(feedURL, ck); err != nil {
				logger.Pl.D(1, "Failed to set cookies for %q: %v", feedURL, err)
			}
		}
	}

	done := make(chan fetchResult, 1)
	collector.OnResponse(func(r *colly.Response) {
		if r.StatusCode != http.StatusOK {
			done <- fetchResult{err: sources.StatusError(sourceID, r.StatusCode)}
			return
		}
		done <- fetchResult{body: r.Body}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			done <- fetchResult{err: sources.StatusError(sourceID, r.StatusCode)}
			return
		}
		done <- fetchResult{err: &sources.SourceError{Source: sourceID, Err: err}}
	})

	go func() {
		if err := collector.Visit(feedURL); err != nil {
			select {
			case done <- fetchResult{err: &sources.SourceError{Source: sourceID, Err: err}}:
			default:
			}
		}
	}()

	select {
	case r := <-done:
		return r.body, r.err
	case <-ctx.Done():
		return nil, &sources.SourceError{Source: sourceID, Err: ctx.Err()}
	}
}

// ChannelIDFromURL extracts a UC... channel ID from a channel URL or returns s if it already is one.
func ChannelIDFromURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "UC") && !strings.Contains(s, "/") {
		return s, true
	}
	if i := strings.Index(s, "/channel/"); i >= 0 {
		id := s[i+len("/channel/"):]
		if j := strings.IndexAny(id, "/?#"); j >= 0 {
			id = id[:j]
		}
		if strings.HasPrefix(id, "UC") {
			return id, true
		}
	}
	return "", false
}

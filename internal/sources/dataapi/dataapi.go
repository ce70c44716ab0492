// Package dataapi serves trending and video lookups from the YouTube Data API v3.
//
// It is only used when an API key is configured. Callers fall back to innertube otherwise.
package dataapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
	"ytdeck/internal/parsing"
	"ytdeck/internal/sources"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const sourceID = "dataapi"

var (
	// ErrNoAPIKey is returned by New without a key.
	ErrNoAPIKey = errors.New("youtube data api key required")
	// ErrQuotaExceeded is returned once the daily quota has run out.
	ErrQuotaExceeded = errors.New("youtube data api quota exceeded")
)

var videoParts = []string{"snippet", "contentDetails", "statistics"}

// Option configures a Client.
type Option func(*config)

type config struct {
	region     string
	maxResults int64
	endpoint   string
	httpClient *http.Client
}

// WithRegion sets the chart region code.
func WithRegion(code string) Option {
	return func(c *config) {
		if code != "" {
			c.region = strings.ToUpper(code)
		}
	}
}

// WithMaxResults caps the trending page size (1-50).
func WithMaxResults(n int64) Option {
	return func(c *config) {
		if n > 0 && n <= 50 {
			c.maxResults = n
		}
	}
}

// WithEndpoint points the service at another base URL, mostly for tests.
func WithEndpoint(u string) Option {
	return func(c *config) {
		c.endpoint = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *config) {
		c.httpClient = h
	}
}

// Client wraps the generated youtube service.
type Client struct {
	svc        *youtube.Service
	region     string
	maxResults int64
}

// New builds a client for apiKey.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	cfg := config{region: consts.DefaultRegion, maxResults: 50}
	for _, opt := range opts {
		opt(&cfg)
	}

	svcOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.endpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(cfg.endpoint))
	}
	if cfg.httpClient != nil {
		svcOpts = append(svcOpts, option.WithHTTPClient(cfg.httpClient))
	}

	svc, err := youtube.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc, region: cfg.region, maxResults: cfg.maxResults}, nil
}

// Trending returns the most popular chart for the configured region.
func (c *Client) Trending(ctx context.Context) (feed.Page, error) {
	call := c.svc.Videos.List(videoParts).
		Chart("mostPopular").
		RegionCode(c.region).
		MaxResults(c.maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return feed.Page{}, wrapErr(err)
	}

	items := make([]models.ContentItem, 0, len(resp.Items))
	for _, v := range resp.Items {
		if item, ok := fromVideo(v); ok {
			items = append(items, item)
		}
	}
	logger.Pl.D(2, "Data API returned %d trending videos for region %s", len(items), c.region)
	return feed.Page{Items: items}, nil
}

// Video looks up a single video by ID.
func (c *Client) Video(ctx context.Context, videoID string) (models.ContentItem, error) {
	resp, err := c.svc.Videos.List(videoParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return models.ContentItem{}, wrapErr(err)
	}
	for _, v := range resp.Items {
		if item, ok := fromVideo(v); ok {
			return item, nil
		}
	}
	return models.ContentItem{}, &sources.SourceError{
		Source: sourceID,
		Err:    fmt.Errorf("%w: video %q not found", sources.ErrMalformedResponse, videoID),
	}
}

// TrendingSource wraps Trending for the aggregator.
func (c *Client) TrendingSource() feed.Source {
	return feed.NewSource(consts.SourceTrending, c.Trending)
}

// fromVideo maps an API video. Live and upcoming broadcasts have no meaningful length.
func fromVideo(v *youtube.Video) (models.ContentItem, bool) {
	if v == nil || strings.TrimSpace(v.Id) == "" {
		return models.ContentItem{}, false
	}

	item := models.ContentItem{
		ID:       v.Id,
		Duration: models.UnknownDuration,
		Kind:     v.Kind,
	}

	if s := v.Snippet; s != nil {
		item.Title = s.Title
		item.Description = s.Description
		item.Channel = models.ChannelRef{ID: s.ChannelId, Name: s.ChannelTitle}
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			item.PublishedAt = t
			item.PublishedText = s.PublishedAt
		}
		item.Thumbnails = thumbnails(s.Thumbnails)
		switch s.LiveBroadcastContent {
		case "live", "upcoming":
			item.Live = true
		}
	}

	if cd := v.ContentDetails; cd != nil && !item.Live {
		item.Duration = parsing.ParseDuration(cd.Duration)
	}

	if st := v.Statistics; st != nil {
		item.ViewCount = int64(st.ViewCount)
		item.ViewCountText = fmt.Sprintf("%d views", st.ViewCount)
	}
	return item, true
}

// thumbnails orders the API's fixed sizes largest first.
func thumbnails(td *youtube.ThumbnailDetails) []models.Thumbnail {
	if td == nil {
		return nil
	}
	var out []models.Thumbnail
	for _, t := range []*youtube.Thumbnail{td.Maxres, td.Standard, td.High, td.Medium, td.Default} {
		if t == nil || t.Url == "" {
			continue
		}
		out = append(out, models.Thumbnail{URL: t.Url, Width: int(t.Width), Height: int(t.Height)})
	}
	return out
}

// wrapErr converts googleapi errors into source errors.
func wrapErr(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &sources.SourceError{Source: sourceID, Err: err}
	}
	for _, e := range gerr.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" {
			return &sources.SourceError{Source: sourceID, StatusCode: gerr.Code, Err: ErrQuotaExceeded}
		}
	}
	return sources.StatusError(sourceID, gerr.Code)
}

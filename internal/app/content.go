// Package app composes sources, aggregation and filtering into the content operations served to users.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"ytdeck/internal/classify"
	"ytdeck/internal/contracts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
)

var (
	// ErrNoSubscriptions is returned by SubscriptionFeed when nothing is followed.
	ErrNoSubscriptions = errors.New("no subscriptions")
	// ErrEmptyQuery is returned for blank searches.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrEmptyID is returned for blank video or channel IDs.
	ErrEmptyID = errors.New("empty id")
)

// Lister is the general-purpose content source.
type Lister interface {
	SearchSource(query, continuation string) feed.Source
	TrendingSource() feed.Source
	ChannelSource(channelID, continuation string) feed.Source
	ChannelShortsSource(channelID string) feed.Source
	RelatedSource(videoID string) feed.Source
	Video(ctx context.Context, videoID string) (models.ContentItem, error)
}

// FeedReader builds one source per subscription.
type FeedReader interface {
	Source(sub models.Subscription) feed.Source
}

// TrendingProvider is an alternative trending source tried before the Lister.
type TrendingProvider interface {
	TrendingSource() feed.Source
}

// VideoCache holds single-video metadata.
type VideoCache interface {
	Get(videoID string) (models.ContentItem, bool)
	Put(item models.ContentItem) error
}

// ResultFilter removes blocked content from a merged result.
type ResultFilter interface {
	ApplyResult(ctx context.Context, res feed.Result) feed.Result
	Apply(ctx context.Context, items []models.ContentItem) []models.ContentItem
}

// Deps are the collaborators of Content. Trending and Cache are optional.
type Deps struct {
	Lister        Lister
	Feeds         FeedReader
	Trending      TrendingProvider
	Cache         VideoCache
	Aggregator    *feed.Aggregator
	Filter        ResultFilter
	Subscriptions contracts.SubscriptionStore
	History       contracts.HistoryStore
}

// Content serves every content listing.
//
// Each listing passes through the block filter exactly once, after merging.
type Content struct {
	lister   Lister
	feeds    FeedReader
	trending TrendingProvider
	cache    VideoCache
	agg      *feed.Aggregator
	filter   ResultFilter
	subs     contracts.SubscriptionStore
	history  contracts.HistoryStore
}

// NewContent returns a content service.
func NewContent(d Deps) *Content {
	agg := d.Aggregator
	if agg == nil {
		agg = feed.New()
	}
	return &Content{
		lister:   d.Lister,
		feeds:    d.Feeds,
		trending: d.Trending,
		cache:    d.Cache,
		agg:      agg,
		filter:   d.Filter,
		subs:     d.Subscriptions,
		history:  d.History,
	}
}

// Search runs a query, or continues a previous one.
func (c *Content) Search(ctx context.Context, query, continuation string) (feed.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" && continuation == "" {
		return feed.Result{}, ErrEmptyQuery
	}
	return c.list(ctx, c.lister.SearchSource(query, continuation))
}

// Trending returns trending content, preferring the alternative provider when configured.
func (c *Content) Trending(ctx context.Context) (feed.Result, error) {
	if c.trending != nil {
		res, err := c.agg.Aggregate(ctx, []feed.Source{c.trending.TrendingSource()})
		if err == nil && len(res.Items()) > 0 {
			return c.filter.ApplyResult(ctx, res), nil
		}
		logger.Pl.W("Primary trending source unavailable, falling back: %v", err)
	}
	return c.list(ctx, c.lister.TrendingSource())
}

// SubscriptionFeed merges the recent uploads of every subscription.
func (c *Content) SubscriptionFeed(ctx context.Context) (feed.Result, error) {
	subs, err := c.subs.ListSubscriptions(ctx)
	if err != nil {
		return feed.Result{}, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return feed.Result{}, ErrNoSubscriptions
	}

	sources := make([]feed.Source, 0, len(subs))
	for _, s := range subs {
		sources = append(sources, c.feeds.Source(s))
	}
	logger.Pl.D(1, "Building subscription feed from %d channels", len(sources))
	return c.list(ctx, sources...)
}

// ChannelVideos lists a channel's uploads.
func (c *Content) ChannelVideos(ctx context.Context, channelID, continuation string) (feed.Result, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return feed.Result{}, ErrEmptyID
	}
	return c.list(ctx, c.lister.ChannelSource(channelID, continuation))
}

// ChannelShorts lists a channel's shorts.
func (c *Content) ChannelShorts(ctx context.Context, channelID string) (feed.Result, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return feed.Result{}, ErrEmptyID
	}
	return c.list(ctx, c.lister.ChannelShortsSource(channelID))
}

// Related lists suggestions for a video.
func (c *Content) Related(ctx context.Context, videoID string) (feed.Result, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return feed.Result{}, ErrEmptyID
	}
	return c.list(ctx, c.lister.RelatedSource(videoID))
}

// Video returns metadata for one video, from the cache when fresh.
//
// Looking a video up records nothing in history.
func (c *Content) Video(ctx context.Context, videoID string) (models.ContentItem, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return models.ContentItem{}, ErrEmptyID
	}
	if c.cache != nil {
		if item, ok := c.cache.Get(videoID); ok {
			logger.Pl.D(2, "Metadata cache hit for %q", videoID)
			return item, nil
		}
	}

	item, err := c.lister.Video(ctx, videoID)
	if err != nil {
		return models.ContentItem{}, err
	}
	if !item.Normalize() {
		return models.ContentItem{}, fmt.Errorf("video %q: %w", videoID, ErrEmptyID)
	}
	item.IsShort = classify.IsShort(&item)

	if c.cache != nil {
		if err := c.cache.Put(item); err != nil {
			logger.Pl.D(1, "Failed to cache metadata for %q: %v", videoID, err)
		}
	}
	return item, nil
}

// Watch records that item was watched up to progress seconds.
func (c *Content) Watch(ctx context.Context, item models.ContentItem, progress int) error {
	if !item.Normalize() {
		return ErrEmptyID
	}
	if progress < 0 {
		progress = 0
	}
	if err := c.history.RecordWatch(ctx, models.HistoryEntryFromContent(item, progress)); err != nil {
		return fmt.Errorf("record watch of %q: %w", item.ID, err)
	}
	return nil
}

// list aggregates sources then filters the merged result once.
func (c *Content) list(ctx context.Context, sources ...feed.Source) (feed.Result, error) {
	res, err := c.agg.Aggregate(ctx, sources)
	if err != nil {
		return res, err
	}
	return c.filter.ApplyResult(ctx, res), nil
}

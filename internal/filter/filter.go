// Package filter removes blocked content from listings.
package filter

import (
	"context"
	"strings"
	"ytdeck/internal/blocking"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
)

// Snapshotter provides a point-in-time block list.
type Snapshotter interface {
	Snapshot(ctx context.Context) (blocking.Snapshot, error)
}

// Filter drops items from blocked channels or matching blocked keywords.
type Filter struct {
	blocks Snapshotter
}

// New returns a Filter reading blocks from b.
func New(b Snapshotter) *Filter {
	return &Filter{blocks: b}
}

// Apply filters items against one block list snapshot, preserving order.
//
// If the block list cannot be read the items are returned unfiltered.
func (f *Filter) Apply(ctx context.Context, items []models.ContentItem) []models.ContentItem {
	snap, ok := f.snapshot(ctx)
	if !ok {
		return items
	}
	return Keep(snap, items)
}

// ApplyResult filters both lists of a merged result against a single snapshot.
func (f *Filter) ApplyResult(ctx context.Context, res feed.Result) feed.Result {
	snap, ok := f.snapshot(ctx)
	if !ok {
		return res
	}
	res.Videos = Keep(snap, res.Videos)
	res.Shorts = Keep(snap, res.Shorts)
	return res
}

// Keep returns the items snap does not block.
//
// Items with no channel ID pass the channel rule but are still checked for keywords.
func Keep(snap blocking.Snapshot, items []models.ContentItem) []models.ContentItem {
	if snap.Empty() {
		return items
	}
	out := make([]models.ContentItem, 0, len(items))
	for _, it := range items {
		if Blocked(snap, &it) {
			logger.Pl.D(3, "Filtered blocked item %q (channel %q)", it.ID, it.Channel.ID)
			continue
		}
		out = append(out, it)
	}
	return out
}

// Blocked reports whether snap blocks the item.
//
// Items without a channel ID are never blocked, keyword matches included.
func Blocked(snap blocking.Snapshot, it *models.ContentItem) bool {
	if strings.TrimSpace(it.Channel.ID) == "" {
		return false
	}
	if snap.ChannelBlocked(it.Channel.ID) {
		return true
	}
	return snap.KeywordBlocked(it.Title) || snap.KeywordBlocked(it.Description)
}

// snapshot reads the block list, failing open.
func (f *Filter) snapshot(ctx context.Context) (blocking.Snapshot, bool) {
	snap, err := f.blocks.Snapshot(ctx)
	if err != nil {
		logger.Pl.W("BLOCK LIST UNAVAILABLE, returning unfiltered content: %v", err)
		return blocking.Snapshot{}, false
	}
	return snap, true
}

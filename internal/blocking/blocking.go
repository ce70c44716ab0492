// Package blocking holds the user's blocked channels and keywords.
package blocking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"ytdeck/internal/contracts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"
)

var (
	// ErrEmptyKeyword is returned when blocking a blank keyword.
	ErrEmptyKeyword = errors.New("keyword cannot be empty")
	// ErrEmptyChannelID is returned when blocking a blank channel ID.
	ErrEmptyChannelID = errors.New("channel ID cannot be empty")
)

// BlockList reads and mutates the persisted block list.
//
// Nothing is cached: every read goes to the store.
type BlockList struct {
	store contracts.BlockStore
}

// New returns a BlockList backed by store.
func New(store contracts.BlockStore) *BlockList {
	return &BlockList{store: store}
}

// Snapshot reads the current block list once.
func (b *BlockList) Snapshot(ctx context.Context) (Snapshot, error) {
	chans, err := b.store.ListBlockedChannels(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list blocked channels: %w", err)
	}
	kws, err := b.store.ListBlockedKeywords(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list blocked keywords: %w", err)
	}

	ids := make([]string, 0, len(chans))
	for _, c := range chans {
		ids = append(ids, c.ChannelID)
	}
	words := make([]string, 0, len(kws))
	for _, k := range kws {
		words = append(words, k.Keyword)
	}
	return NewSnapshot(ids, words), nil
}

// IsChannelBlocked reports whether channelID is blocked.
func (b *BlockList) IsChannelBlocked(ctx context.Context, channelID string) (bool, error) {
	snap, err := b.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return snap.ChannelBlocked(channelID), nil
}

// IsKeywordBlocked reports whether title contains any blocked keyword.
func (b *BlockList) IsKeywordBlocked(ctx context.Context, title string) (bool, error) {
	snap, err := b.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return snap.KeywordBlocked(title), nil
}

// Channels lists blocked channels.
func (b *BlockList) Channels(ctx context.Context) ([]models.BlockedChannel, error) {
	return b.store.ListBlockedChannels(ctx)
}

// Keywords lists blocked keywords.
func (b *BlockList) Keywords(ctx context.Context) ([]models.BlockedKeyword, error) {
	return b.store.ListBlockedKeywords(ctx)
}

// BlockChannel blocks a channel. Blocking twice is not an error.
func (b *BlockList) BlockChannel(ctx context.Context, channelID, name string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return ErrEmptyChannelID
	}
	if err := b.store.AddBlockedChannel(ctx, channelID, strings.TrimSpace(name)); err != nil {
		return err
	}
	logger.Pl.S("Blocked channel %q", channelID)
	return nil
}

// UnblockChannel unblocks a channel. Unblocking a channel that is not blocked is not an error.
func (b *BlockList) UnblockChannel(ctx context.Context, channelID string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return ErrEmptyChannelID
	}
	if err := b.store.RemoveBlockedChannel(ctx, channelID); err != nil {
		return err
	}
	logger.Pl.S("Unblocked channel %q", channelID)
	return nil
}

// BlockKeyword blocks a keyword. Keywords are stored lower-cased.
func (b *BlockList) BlockKeyword(ctx context.Context, keyword string) error {
	kw, err := normalizeKeyword(keyword)
	if err != nil {
		return err
	}
	if err := b.store.AddBlockedKeyword(ctx, kw); err != nil {
		return err
	}
	logger.Pl.S("Blocked keyword %q", kw)
	return nil
}

// UnblockKeyword unblocks a keyword, matching case-insensitively.
func (b *BlockList) UnblockKeyword(ctx context.Context, keyword string) error {
	kw, err := normalizeKeyword(keyword)
	if err != nil {
		return err
	}
	if err := b.store.RemoveBlockedKeyword(ctx, kw); err != nil {
		return err
	}
	logger.Pl.S("Unblocked keyword %q", kw)
	return nil
}

// normalizeKeyword trims and lower-cases a keyword.
func normalizeKeyword(keyword string) (string, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return "", ErrEmptyKeyword
	}
	return kw, nil
}

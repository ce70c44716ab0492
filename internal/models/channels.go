package models

import "time"

// ChannelRef identifies the channel an item belongs to.
//
// ID may be empty when the source does not expose it.
type ChannelRef struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// Subscription is a followed channel.
type Subscription struct {
	ChannelID    string    `json:"channelId" db:"channel_id"`
	Name         string    `json:"name" db:"name"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at"`
}

// BlockedChannel is a hidden channel entry.
type BlockedChannel struct {
	ChannelID string    `json:"channelId" db:"channel_id"`
	Name      string    `json:"name" db:"name"`
	BlockedAt time.Time `json:"blockedAt" db:"blocked_at"`
}

// BlockedKeyword is a hidden title keyword, matched case-insensitively as a substring.
type BlockedKeyword struct {
	Keyword   string    `json:"keyword" db:"keyword"`
	BlockedAt time.Time `json:"blockedAt" db:"blocked_at"`
}

package models

import "time"

// Playlist is a user playlist. At most one playlist is the default.
type Playlist struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IsDefault bool      `json:"isDefault" db:"is_default"`
	ItemCount int       `json:"itemCount" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PlaylistItem is a video saved into a playlist.
type PlaylistItem struct {
	PlaylistID   string    `json:"playlistId" db:"playlist_id"`
	VideoID      string    `json:"videoId" db:"video_id"`
	Title        string    `json:"title" db:"title"`
	ChannelID    string    `json:"channelId,omitempty" db:"channel_id"`
	ChannelName  string    `json:"channelName,omitempty" db:"channel_name"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	Duration     Duration  `json:"durationSeconds" db:"duration_seconds"`
	SortOrder    int       `json:"sortOrder" db:"sort_order"`
	AddedAt      time.Time `json:"addedAt" db:"added_at"`
}

// HistoryEntry is the last watch of a video.
type HistoryEntry struct {
	VideoID         string    `json:"videoId" db:"video_id"`
	Title           string    `json:"title" db:"title"`
	ChannelID       string    `json:"channelId,omitempty" db:"channel_id"`
	ChannelName     string    `json:"channelName,omitempty" db:"channel_name"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	Duration        Duration  `json:"durationSeconds" db:"duration_seconds"`
	ProgressSeconds int       `json:"progressSeconds" db:"progress_seconds"`
	WatchedAt       time.Time `json:"watchedAt" db:"watched_at"`
}

// PlaylistItemFromContent converts a content item into a playlist entry.
func PlaylistItemFromContent(playlistID string, c ContentItem) PlaylistItem {
	return PlaylistItem{
		PlaylistID:   playlistID,
		VideoID:      c.ID,
		Title:        c.Title,
		ChannelID:    c.Channel.ID,
		ChannelName:  c.Channel.Name,
		ThumbnailURL: c.ThumbnailURL(),
		Duration:     c.Duration,
	}
}

// HistoryEntryFromContent converts a content item into a history entry.
func HistoryEntryFromContent(c ContentItem, progress int) HistoryEntry {
	return HistoryEntry{
		VideoID:         c.ID,
		Title:           c.Title,
		ChannelID:       c.Channel.ID,
		ChannelName:     c.Channel.Name,
		ThumbnailURL:    c.ThumbnailURL(),
		Duration:        c.Duration,
		ProgressSeconds: progress,
	}
}

// ContentItem converts a history entry back into a renderable item.
func (h HistoryEntry) ContentItem() ContentItem {
	item := ContentItem{
		ID:       h.VideoID,
		Title:    h.Title,
		Duration: h.Duration,
		Channel:  ChannelRef{ID: h.ChannelID, Name: h.ChannelName},
	}
	if h.ThumbnailURL != "" {
		item.Thumbnails = []Thumbnail{{URL: h.ThumbnailURL}}
	}
	return item
}

// ContentItem converts a playlist entry back into a renderable item.
func (p PlaylistItem) ContentItem() ContentItem {
	item := ContentItem{
		ID:       p.VideoID,
		Title:    p.Title,
		Duration: p.Duration,
		Channel:  ChannelRef{ID: p.ChannelID, Name: p.ChannelName},
	}
	if p.ThumbnailURL != "" {
		item.Thumbnails = []Thumbnail{{URL: p.ThumbnailURL}}
	}
	return item
}

// Package contracts defines interfaces that decouple the application layer from storage implementations.
package contracts

import (
	"context"
	"ytdeck/internal/models"
)

// Store allows access to the main store repo methods.
type Store interface {
	BlockStore() BlockStore
	SubscriptionStore() SubscriptionStore
	PlaylistStore() PlaylistStore
	HistoryStore() HistoryStore
	SettingsStore() SettingsStore
}

// BlockStore persists blocked channels and keywords.
//
// Adds and removes are idempotent.
type BlockStore interface {
	ListBlockedChannels(ctx context.Context) ([]models.BlockedChannel, error)
	ListBlockedKeywords(ctx context.Context) ([]models.BlockedKeyword, error)
	AddBlockedChannel(ctx context.Context, channelID, name string) error
	RemoveBlockedChannel(ctx context.Context, channelID string) error
	AddBlockedKeyword(ctx context.Context, keyword string) error
	RemoveBlockedKeyword(ctx context.Context, keyword string) error
}

// SubscriptionStore persists followed channels.
type SubscriptionStore interface {
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	AddSubscription(ctx context.Context, sub models.Subscription) error
	RemoveSubscription(ctx context.Context, channelID string) error
	IsSubscribed(ctx context.Context, channelID string) (bool, error)
}

// PlaylistStore persists playlists and their items.
type PlaylistStore interface {
	// Playlists.
	CreatePlaylist(ctx context.Context, name string) (models.Playlist, error)
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (models.Playlist, error)
	RenamePlaylist(ctx context.Context, id, name string) error
	DeletePlaylist(ctx context.Context, id string) error
	SetDefaultPlaylist(ctx context.Context, id string) error
	DefaultPlaylist(ctx context.Context) (models.Playlist, error)

	// Items.
	PlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error)
	AddPlaylistItem(ctx context.Context, item models.PlaylistItem) error
	RemovePlaylistItem(ctx context.Context, playlistID, videoID string) error
	ReorderPlaylist(ctx context.Context, playlistID string, videoIDs []string) error
	PlaylistContains(ctx context.Context, playlistID, videoID string) (bool, error)
}

// HistoryStore persists watch history.
type HistoryStore interface {
	RecordWatch(ctx context.Context, entry models.HistoryEntry) error
	ListHistory(ctx context.Context, limit, offset int) ([]models.HistoryEntry, error)
	RemoveHistory(ctx context.Context, videoID string) error
	ClearHistory(ctx context.Context) error
}

// SettingsStore persists user-editable settings.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (value string, found bool, err error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) ([]models.Setting, error)
}

package database

import (
	"database/sql"
	"fmt"
)

// initSubscriptionsTable initializes the followed channels table.
func initSubscriptionsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS subscriptions (
        channel_id TEXT PRIMARY KEY,
        name TEXT NOT NULL DEFAULT '',
        thumbnail_url TEXT NOT NULL DEFAULT '',
        subscribed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_subscriptions_name ON subscriptions(name);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create subscriptions table: %w", err)
	}
	return nil
}

// initPlaylistsTable initializes the playlists table.
//
// The partial unique index allows at most one default playlist.
func initPlaylistsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS playlists (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        is_default INTEGER NOT NULL DEFAULT 0,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE UNIQUE INDEX IF NOT EXISTS idx_playlists_single_default ON playlists(is_default) WHERE is_default = 1;
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create playlists table: %w", err)
	}
	return nil
}

// initPlaylistItemsTable initializes the playlist items table.
func initPlaylistItemsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS playlist_items (
        playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
        video_id TEXT NOT NULL,
        title TEXT NOT NULL DEFAULT '',
        channel_id TEXT NOT NULL DEFAULT '',
        channel_name TEXT NOT NULL DEFAULT '',
        thumbnail_url TEXT NOT NULL DEFAULT '',
        duration_seconds INTEGER,
        sort_order INTEGER NOT NULL DEFAULT 0,
        added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (playlist_id, video_id)
    );
    CREATE INDEX IF NOT EXISTS idx_playlist_items_order ON playlist_items(playlist_id, sort_order);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create playlist_items table: %w", err)
	}
	return nil
}

// initWatchHistoryTable initializes the watch history table.
func initWatchHistoryTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS watch_history (
        video_id TEXT PRIMARY KEY,
        title TEXT NOT NULL DEFAULT '',
        channel_id TEXT NOT NULL DEFAULT '',
        channel_name TEXT NOT NULL DEFAULT '',
        thumbnail_url TEXT NOT NULL DEFAULT '',
        duration_seconds INTEGER,
        progress_seconds INTEGER NOT NULL DEFAULT 0,
        watched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_watch_history_watched_at ON watch_history(watched_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create watch_history table: %w", err)
	}
	return nil
}

// initSettingsTable initializes the key/value settings table.
func initSettingsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS settings (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL DEFAULT ''
    );
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

// initHiddenChannelsTable initializes the blocked channels table.
func initHiddenChannelsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS hidden_channels (
        channel_id TEXT PRIMARY KEY,
        name TEXT NOT NULL DEFAULT '',
        blocked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create hidden_channels table: %w", err)
	}
	return nil
}

// initHiddenKeywordsTable initializes the blocked keywords table.
func initHiddenKeywordsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS hidden_keywords (
        keyword TEXT PRIMARY KEY,
        blocked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create hidden_keywords table: %w", err)
	}
	return nil
}

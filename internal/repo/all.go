// Package repo is used for performing database repository operations.
package repo

import (
	"database/sql"
	"errors"
	"time"
	"ytdeck/internal/contracts"
	"ytdeck/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store holds the database variable and sub-stores like BlockStore etc.
type Store struct {
	db                *sql.DB
	blockStore        *BlockStore
	subscriptionStore *SubscriptionStore
	playlistStore     *PlaylistStore
	historyStore      *HistoryStore
	settingsStore     *SettingsStore
}

// InitStores injects databases into the store methods.
func InitStores(db *sql.DB) *Store {
	return &Store{
		db:                db,
		blockStore:        GetBlockStore(db),
		subscriptionStore: GetSubscriptionStore(db),
		playlistStore:     GetPlaylistStore(db),
		historyStore:      GetHistoryStore(db),
		settingsStore:     GetSettingsStore(db),
	}
}

// BlockStore with pointer receiver.
func (s *Store) BlockStore() contracts.BlockStore {
	return s.blockStore
}

// SubscriptionStore with pointer receiver.
func (s *Store) SubscriptionStore() contracts.SubscriptionStore {
	return s.subscriptionStore
}

// PlaylistStore with pointer receiver.
func (s *Store) PlaylistStore() contracts.PlaylistStore {
	return s.playlistStore
}

// HistoryStore with pointer receiver.
func (s *Store) HistoryStore() contracts.HistoryStore {
	return s.historyStore
}

// SettingsStore with pointer receiver.
func (s *Store) SettingsStore() contracts.SettingsStore {
	return s.settingsStore
}

// ******************************** Private ***************************************************************************************

// durationToNull converts a possibly unknown duration for a nullable column.
func durationToNull(d models.Duration) sql.NullInt64 {
	s, ok := d.NullInt64()
	return sql.NullInt64{Int64: s, Valid: ok}
}

// nullToDuration converts a nullable column back into a duration.
func nullToDuration(n sql.NullInt64) models.Duration {
	if !n.Valid || n.Int64 < 0 {
		return models.UnknownDuration
	}
	return models.KnownDuration(int(n.Int64))
}

// nullTime returns the time or the zero time.
func nullTime(n sql.NullTime) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return n.Time
}

// now returns the timestamp written into rows.
func now() time.Time {
	return time.Now().UTC()
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/models"

	"github.com/Masterminds/squirrel"
)

// HistoryStore holds a pointer to the sql.DB.
type HistoryStore struct {
	DB *sql.DB
}

// GetHistoryStore returns a history store instance with injected database.
func GetHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{
		DB: db,
	}
}

// RecordWatch upserts a history entry. The latest watch replaces any earlier one.
func (hs *HistoryStore) RecordWatch(ctx context.Context, e models.HistoryEntry) error {
	if e.VideoID == "" {
		return errors.New("history entry requires a video ID")
	}
	at := e.WatchedAt
	if at.IsZero() {
		at = now()
	}
	if e.ProgressSeconds < 0 {
		e.ProgressSeconds = 0
	}

	updateCols := []string{
		consts.QHistTitle,
		consts.QHistChannelID,
		consts.QHistChannelName,
		consts.QHistThumbnailURL,
		consts.QHistDuration,
		consts.QHistProgress,
		consts.QHistWatchedAt,
	}
	set := ""
	for i, c := range updateCols {
		if i > 0 {
			set += ", "
		}
		set += c + " = excluded." + c
	}

	query := squirrel.
		Insert(consts.DBWatchHistory).
		Columns(
			consts.QHistVideoID,
			consts.QHistTitle,
			consts.QHistChannelID,
			consts.QHistChannelName,
			consts.QHistThumbnailURL,
			consts.QHistDuration,
			consts.QHistProgress,
			consts.QHistWatchedAt,
		).
		Values(
			e.VideoID,
			e.Title,
			e.ChannelID,
			e.ChannelName,
			e.ThumbnailURL,
			durationToNull(e.Duration),
			e.ProgressSeconds,
			at,
		).
		Suffix(fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", consts.QHistVideoID, set)).
		RunWith(hs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to record watch of %q: %w", e.VideoID, err)
	}
	return nil
}

// ListHistory returns entries newest first.
func (hs *HistoryStore) ListHistory(ctx context.Context, limit, offset int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = consts.DefaultListLimit
	}
	if limit > consts.MaxListLimit {
		limit = consts.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := squirrel.
		Select(
			consts.QHistVideoID,
			consts.QHistTitle,
			consts.QHistChannelID,
			consts.QHistChannelName,
			consts.QHistThumbnailURL,
			consts.QHistDuration,
			consts.QHistProgress,
			consts.QHistWatchedAt,
		).
		From(consts.DBWatchHistory).
		OrderBy(consts.QHistWatchedAt + " DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sqlPlaceholder, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := hs.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	out := []models.HistoryEntry{}
	for rows.Next() {
		var (
			e   models.HistoryEntry
			dur sql.NullInt64
			at  sql.NullTime
		)
		if err := rows.Scan(
			&e.VideoID,
			&e.Title,
			&e.ChannelID,
			&e.ChannelName,
			&e.ThumbnailURL,
			&dur,
			&e.ProgressSeconds,
			&at,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Duration = nullToDuration(dur)
		e.WatchedAt = nullTime(at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// RemoveHistory deletes a single entry. Missing entries are not an error.
func (hs *HistoryStore) RemoveHistory(ctx context.Context, videoID string) error {
	query := squirrel.
		Delete(consts.DBWatchHistory).
		Where(squirrel.Eq{consts.QHistVideoID: videoID}).
		RunWith(hs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to remove history entry %q: %w", videoID, err)
	}
	return nil
}

// ClearHistory deletes all entries.
func (hs *HistoryStore) ClearHistory(ctx context.Context) error {
	if _, err := squirrel.Delete(consts.DBWatchHistory).RunWith(hs.DB).ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// PlaylistStore holds a pointer to the sql.DB.
type PlaylistStore struct {
	DB *sql.DB
}

// GetPlaylistStore returns a playlist store instance with injected database.
func GetPlaylistStore(db *sql.DB) *PlaylistStore {
	return &PlaylistStore{
		DB: db,
	}
}

// CreatePlaylist creates a new, non-default playlist.
func (ps *PlaylistStore) CreatePlaylist(ctx context.Context, name string) (models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Playlist{}, errors.New("playlist name cannot be empty")
	}
	return insertPlaylist(ctx, ps.DB, name, false)
}

// ListPlaylists returns all playlists with their item counts, default first.
func (ps *PlaylistStore) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	sqlPlaceholder, args, err := playlistSelect().
		OrderBy(consts.QPlaylistIsDefault+" DESC", consts.QPlaylistCreatedAt).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := ps.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	out := []models.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlaylist returns a single playlist, or ErrNotFound.
func (ps *PlaylistStore) GetPlaylist(ctx context.Context, id string) (models.Playlist, error) {
	row := playlistSelect().
		Where(squirrel.Eq{consts.QPlaylistID: id}).
		RunWith(ps.DB).
		QueryRowContext(ctx)

	p, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Playlist{}, fmt.Errorf("playlist %q: %w", id, ErrNotFound)
	}
	return p, err
}

// RenamePlaylist renames a playlist.
func (ps *PlaylistStore) RenamePlaylist(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("playlist name cannot be empty")
	}
	res, err := squirrel.
		Update(consts.DBPlaylists).
		Set(consts.QPlaylistName, name).
		Set(consts.QPlaylistUpdatedAt, now()).
		Where(squirrel.Eq{consts.QPlaylistID: id}).
		RunWith(ps.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to rename playlist %q: %w", id, err)
	}
	return requireAffected(res, "playlist "+id)
}

// DeletePlaylist deletes a playlist and its items.
func (ps *PlaylistStore) DeletePlaylist(ctx context.Context, id string) error {
	res, err := squirrel.
		Delete(consts.DBPlaylists).
		Where(squirrel.Eq{consts.QPlaylistID: id}).
		RunWith(ps.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete playlist %q: %w", id, err)
	}
	return requireAffected(res, "playlist "+id)
}

// SetDefaultPlaylist makes id the sole default playlist.
func (ps *PlaylistStore) SetDefaultPlaylist(ctx context.Context, id string) (err error) {
	tx, err := ps.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnErr(tx, &err)

	if _, err = squirrel.
		Update(consts.DBPlaylists).
		Set(consts.QPlaylistIsDefault, 0).
		Where(squirrel.And{
			squirrel.Eq{consts.QPlaylistIsDefault: 1},
			squirrel.NotEq{consts.QPlaylistID: id},
		}).
		RunWith(tx).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to unset previous default playlist: %w", err)
	}

	res, err := squirrel.
		Update(consts.DBPlaylists).
		Set(consts.QPlaylistIsDefault, 1).
		Set(consts.QPlaylistUpdatedAt, now()).
		Where(squirrel.Eq{consts.QPlaylistID: id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set default playlist %q: %w", id, err)
	}
	if err = requireAffected(res, "playlist "+id); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DefaultPlaylist returns the default playlist, creating it on first use.
func (ps *PlaylistStore) DefaultPlaylist(ctx context.Context) (models.Playlist, error) {
	p, err := ps.currentDefault(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Playlist{}, fmt.Errorf("failed to get default playlist: %w", err)
	}

	created, err := insertPlaylist(ctx, ps.DB, consts.DefaultPlaylistName, true)
	if err == nil {
		logger.Pl.I("Created default playlist %q", created.Name)
		return created, nil
	}

	// Lost a creation race, the unique index holds the winner.
	if p, getErr := ps.currentDefault(ctx); getErr == nil {
		return p, nil
	}
	return models.Playlist{}, err
}

// PlaylistItems returns a playlist's items in sort order.
func (ps *PlaylistStore) PlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error) {
	query := squirrel.
		Select(
			consts.QItemPlaylistID,
			consts.QItemVideoID,
			consts.QItemTitle,
			consts.QItemChannelID,
			consts.QItemChannelName,
			consts.QItemThumbnailURL,
			consts.QItemDuration,
			consts.QItemSortOrder,
			consts.QItemAddedAt,
		).
		From(consts.DBPlaylistItems).
		Where(squirrel.Eq{consts.QItemPlaylistID: playlistID}).
		OrderBy(consts.QItemSortOrder, consts.QItemAddedAt)

	sqlPlaceholder, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := ps.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist items: %w", err)
	}
	defer rows.Close()

	out := []models.PlaylistItem{}
	for rows.Next() {
		var (
			it  models.PlaylistItem
			dur sql.NullInt64
			at  sql.NullTime
		)
		if err := rows.Scan(
			&it.PlaylistID,
			&it.VideoID,
			&it.Title,
			&it.ChannelID,
			&it.ChannelName,
			&it.ThumbnailURL,
			&dur,
			&it.SortOrder,
			&at,
		); err != nil {
			return nil, fmt.Errorf("failed to scan playlist item: %w", err)
		}
		it.Duration = nullToDuration(dur)
		it.AddedAt = nullTime(at)
		out = append(out, it)
	}
	return out, rows.Err()
}

// AddPlaylistItem appends an item to the end of a playlist.
//
// Adding a video already present is a no-op.
func (ps *PlaylistStore) AddPlaylistItem(ctx context.Context, item models.PlaylistItem) (err error) {
	if item.PlaylistID == "" || item.VideoID == "" {
		return errors.New("playlist item requires playlist and video IDs")
	}

	tx, err := ps.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnErr(tx, &err)

	var next int
	if err = squirrel.
		Select(fmt.Sprintf("COALESCE(MAX(%s), -1) + 1", consts.QItemSortOrder)).
		From(consts.DBPlaylistItems).
		Where(squirrel.Eq{consts.QItemPlaylistID: item.PlaylistID}).
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&next); err != nil {
		return fmt.Errorf("failed to get next sort order: %w", err)
	}

	if _, err = squirrel.
		Insert(consts.DBPlaylistItems).
		Options("OR IGNORE").
		Columns(
			consts.QItemPlaylistID,
			consts.QItemVideoID,
			consts.QItemTitle,
			consts.QItemChannelID,
			consts.QItemChannelName,
			consts.QItemThumbnailURL,
			consts.QItemDuration,
			consts.QItemSortOrder,
			consts.QItemAddedAt,
		).
		Values(
			item.PlaylistID,
			item.VideoID,
			item.Title,
			item.ChannelID,
			item.ChannelName,
			item.ThumbnailURL,
			durationToNull(item.Duration),
			next,
			now(),
		).
		RunWith(tx).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to add %q to playlist %q: %w", item.VideoID, item.PlaylistID, err)
	}

	if err = touchPlaylist(ctx, tx, item.PlaylistID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemovePlaylistItem removes a video from a playlist. Missing entries are not an error.
func (ps *PlaylistStore) RemovePlaylistItem(ctx context.Context, playlistID, videoID string) error {
	if _, err := squirrel.
		Delete(consts.DBPlaylistItems).
		Where(squirrel.Eq{
			consts.QItemPlaylistID: playlistID,
			consts.QItemVideoID:    videoID,
		}).
		RunWith(ps.DB).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to remove %q from playlist %q: %w", videoID, playlistID, err)
	}
	return touchPlaylist(ctx, ps.DB, playlistID)
}

// ReorderPlaylist places videoIDs first, in the given order.
//
// Items not named keep their relative order after the named ones.
func (ps *PlaylistStore) ReorderPlaylist(ctx context.Context, playlistID string, videoIDs []string) (err error) {
	tx, err := ps.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnErr(tx, &err)

	n := len(videoIDs)
	if n > 0 {
		if _, err = squirrel.
			Update(consts.DBPlaylistItems).
			Set(consts.QItemSortOrder, squirrel.Expr(consts.QItemSortOrder+" + ?", n)).
			Where(squirrel.Eq{consts.QItemPlaylistID: playlistID}).
			Where(squirrel.NotEq{consts.QItemVideoID: videoIDs}).
			RunWith(tx).
			ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to shift unordered items: %w", err)
		}
	}

	for i, vid := range videoIDs {
		if _, err = squirrel.
			Update(consts.DBPlaylistItems).
			Set(consts.QItemSortOrder, i).
			Where(squirrel.Eq{
				consts.QItemPlaylistID: playlistID,
				consts.QItemVideoID:    vid,
			}).
			RunWith(tx).
			ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to reorder %q: %w", vid, err)
		}
	}

	if err = touchPlaylist(ctx, tx, playlistID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PlaylistContains reports whether the video is in the playlist.
func (ps *PlaylistStore) PlaylistContains(ctx context.Context, playlistID, videoID string) (bool, error) {
	var n int
	if err := squirrel.
		Select("COUNT(1)").
		From(consts.DBPlaylistItems).
		Where(squirrel.Eq{
			consts.QItemPlaylistID: playlistID,
			consts.QItemVideoID:    videoID,
		}).
		RunWith(ps.DB).
		QueryRowContext(ctx).
		Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check playlist membership: %w", err)
	}
	return n > 0, nil
}

// ******************************** Private ***************************************************************************************

// currentDefault returns the default playlist or sql.ErrNoRows.
func (ps *PlaylistStore) currentDefault(ctx context.Context) (models.Playlist, error) {
	row := playlistSelect().
		Where(squirrel.Eq{consts.QPlaylistIsDefault: 1}).
		RunWith(ps.DB).
		QueryRowContext(ctx)
	return scanPlaylist(row)
}

// playlistSelect selects playlist columns plus the item count.
func playlistSelect() squirrel.SelectBuilder {
	return squirrel.
		Select(
			consts.QPlaylistID,
			consts.QPlaylistName,
			consts.QPlaylistIsDefault,
			consts.QPlaylistCreatedAt,
			consts.QPlaylistUpdatedAt,
			fmt.Sprintf("(SELECT COUNT(1) FROM %s WHERE %s.%s = %s.%s)",
				consts.DBPlaylistItems,
				consts.DBPlaylistItems, consts.QItemPlaylistID,
				consts.DBPlaylists, consts.QPlaylistID),
		).
		From(consts.DBPlaylists)
}

// scanPlaylist scans a row produced by playlistSelect.
func scanPlaylist(row squirrel.RowScanner) (models.Playlist, error) {
	var (
		p         models.Playlist
		isDefault int
		created   sql.NullTime
		updated   sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Name, &isDefault, &created, &updated, &p.ItemCount); err != nil {
		return models.Playlist{}, err
	}
	p.IsDefault = isDefault == 1
	p.CreatedAt = nullTime(created)
	p.UpdatedAt = nullTime(updated)
	return p, nil
}

// insertPlaylist inserts a playlist with a fresh UUID.
func insertPlaylist(ctx context.Context, db squirrel.BaseRunner, name string, isDefault bool) (models.Playlist, error) {
	ts := now()
	p := models.Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		IsDefault: isDefault,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	def := 0
	if isDefault {
		def = 1
	}

	if _, err := squirrel.
		Insert(consts.DBPlaylists).
		Columns(
			consts.QPlaylistID,
			consts.QPlaylistName,
			consts.QPlaylistIsDefault,
			consts.QPlaylistCreatedAt,
			consts.QPlaylistUpdatedAt,
		).
		Values(p.ID, p.Name, def, ts, ts).
		RunWith(db).
		ExecContext(ctx); err != nil {
		return models.Playlist{}, fmt.Errorf("failed to create playlist %q: %w", name, err)
	}
	return p, nil
}

// touchPlaylist bumps a playlist's updated_at.
func touchPlaylist(ctx context.Context, db squirrel.BaseRunner, playlistID string) error {
	if _, err := squirrel.
		Update(consts.DBPlaylists).
		Set(consts.QPlaylistUpdatedAt, now()).
		Where(squirrel.Eq{consts.QPlaylistID: playlistID}).
		RunWith(db).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to update playlist %q timestamp: %w", playlistID, err)
	}
	return nil
}

// requireAffected returns ErrNotFound when no row was changed.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// rollbackOnErr rolls back tx if *err is set when the function returns.
func rollbackOnErr(tx *sql.Tx, err *error) {
	if p := recover(); p != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Pl.E("Panic rollback failed: %v", rbErr)
		}
		panic(p)
	}
	if *err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Pl.E("transaction rollback failed after original error %v: %v", *err, rbErr)
		}
	}
}

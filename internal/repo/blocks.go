package repo

import (
	"context"
	"database/sql"
	"fmt"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/models"

	"github.com/Masterminds/squirrel"
)

// BlockStore holds a pointer to the sql.DB.
type BlockStore struct {
	DB *sql.DB
}

// GetBlockStore returns a block store instance with injected database.
func GetBlockStore(db *sql.DB) *BlockStore {
	return &BlockStore{
		DB: db,
	}
}

// ListBlockedChannels returns blocked channels, most recent first.
func (bs *BlockStore) ListBlockedChannels(ctx context.Context) ([]models.BlockedChannel, error) {
	query := squirrel.
		Select(consts.QBlockedChannelID, consts.QBlockedName, consts.QBlockedAt).
		From(consts.DBHiddenChannels).
		OrderBy(consts.QBlockedAt + " DESC")

	sqlPlaceholder, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := bs.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked channels: %w", err)
	}
	defer rows.Close()

	out := []models.BlockedChannel{}
	for rows.Next() {
		var (
			c  models.BlockedChannel
			at sql.NullTime
		)
		if err := rows.Scan(&c.ChannelID, &c.Name, &at); err != nil {
			return nil, fmt.Errorf("failed to scan blocked channel: %w", err)
		}
		c.BlockedAt = nullTime(at)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListBlockedKeywords returns blocked keywords, most recent first.
func (bs *BlockStore) ListBlockedKeywords(ctx context.Context) ([]models.BlockedKeyword, error) {
	query := squirrel.
		Select(consts.QBlockedKeyword, consts.QBlockedAt).
		From(consts.DBHiddenKeywords).
		OrderBy(consts.QBlockedAt + " DESC")

	sqlPlaceholder, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := bs.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked keywords: %w", err)
	}
	defer rows.Close()

	out := []models.BlockedKeyword{}
	for rows.Next() {
		var (
			k  models.BlockedKeyword
			at sql.NullTime
		)
		if err := rows.Scan(&k.Keyword, &at); err != nil {
			return nil, fmt.Errorf("failed to scan blocked keyword: %w", err)
		}
		k.BlockedAt = nullTime(at)
		out = append(out, k)
	}
	return out, rows.Err()
}

// AddBlockedChannel blocks a channel. Re-adding keeps the original entry.
func (bs *BlockStore) AddBlockedChannel(ctx context.Context, channelID, name string) error {
	query := squirrel.
		Insert(consts.DBHiddenChannels).
		Options("OR IGNORE").
		Columns(consts.QBlockedChannelID, consts.QBlockedName, consts.QBlockedAt).
		Values(channelID, name, now()).
		RunWith(bs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to block channel %q: %w", channelID, err)
	}
	return nil
}

// RemoveBlockedChannel unblocks a channel. Missing entries are not an error.
func (bs *BlockStore) RemoveBlockedChannel(ctx context.Context, channelID string) error {
	query := squirrel.
		Delete(consts.DBHiddenChannels).
		Where(squirrel.Eq{consts.QBlockedChannelID: channelID}).
		RunWith(bs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to unblock channel %q: %w", channelID, err)
	}
	return nil
}

// AddBlockedKeyword blocks a keyword. Re-adding keeps the original entry.
func (bs *BlockStore) AddBlockedKeyword(ctx context.Context, keyword string) error {
	query := squirrel.
		Insert(consts.DBHiddenKeywords).
		Options("OR IGNORE").
		Columns(consts.QBlockedKeyword, consts.QBlockedAt).
		Values(keyword, now()).
		RunWith(bs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to block keyword %q: %w", keyword, err)
	}
	return nil
}

// RemoveBlockedKeyword unblocks a keyword. Missing entries are not an error.
func (bs *BlockStore) RemoveBlockedKeyword(ctx context.Context, keyword string) error {
	query := squirrel.
		Delete(consts.DBHiddenKeywords).
		Where(squirrel.Eq{consts.QBlockedKeyword: keyword}).
		RunWith(bs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to unblock keyword %q: %w", keyword, err)
	}
	return nil
}

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

// SubscriptionStore holds a pointer to the sql.DB.
type SubscriptionStore struct {
	DB *sql.DB
}

// GetSubscriptionStore returns a subscription store instance with injected database.
func GetSubscriptionStore(db *sql.DB) *SubscriptionStore {
	return &SubscriptionStore{
		DB: db,
	}
}

// ListSubscriptions returns all subscriptions ordered by name.
func (ss *SubscriptionStore) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	query := squirrel.
		Select(consts.QSubChannelID, consts.QSubName, consts.QSubThumbnailURL, consts.QSubSubscribedAt).
		From(consts.DBSubscriptions).
		OrderBy(consts.QSubName+" COLLATE NOCASE", consts.QSubChannelID)

	sqlPlaceholder, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := ss.DB.QueryContext(ctx, sqlPlaceholder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var (
			s  models.Subscription
			at sql.NullTime
		)
		if err := rows.Scan(&s.ChannelID, &s.Name, &s.ThumbnailURL, &at); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		s.SubscribedAt = nullTime(at)
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// AddSubscription subscribes to a channel.
//
// Subscribing again refreshes the stored name and thumbnail but keeps the original date.
func (ss *SubscriptionStore) AddSubscription(ctx context.Context, sub models.Subscription) error {
	if sub.ChannelID == "" {
		return errors.New("subscription requires a channel ID")
	}
	at := sub.SubscribedAt
	if at.IsZero() {
		at = now()
	}

	query := squirrel.
		Insert(consts.DBSubscriptions).
		Columns(consts.QSubChannelID, consts.QSubName, consts.QSubThumbnailURL, consts.QSubSubscribedAt).
		Values(sub.ChannelID, sub.Name, sub.ThumbnailURL, at).
		Suffix(fmt.Sprintf(
			"ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s",
			consts.QSubChannelID,
			consts.QSubName, consts.QSubName,
			consts.QSubThumbnailURL, consts.QSubThumbnailURL,
		)).
		RunWith(ss.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to add subscription %q: %w", sub.ChannelID, err)
	}
	return nil
}

// RemoveSubscription unsubscribes from a channel. Missing entries are not an error.
func (ss *SubscriptionStore) RemoveSubscription(ctx context.Context, channelID string) error {
	query := squirrel.
		Delete(consts.DBSubscriptions).
		Where(squirrel.Eq{consts.QSubChannelID: channelID}).
		RunWith(ss.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to remove subscription %q: %w", channelID, err)
	}
	return nil
}

// IsSubscribed reports whether the channel is followed.
func (ss *SubscriptionStore) IsSubscribed(ctx context.Context, channelID string) (bool, error) {
	var n int
	query := squirrel.
		Select("COUNT(1)").
		From(consts.DBSubscriptions).
		Where(squirrel.Eq{consts.QSubChannelID: channelID}).
		RunWith(ss.DB)

	if err := query.QueryRowContext(ctx).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check subscription %q: %w", channelID, err)
	}
	return n > 0, nil
}

package search

import (
	"context"
	"testing"
	"ytdeck/internal/blocking"
	"ytdeck/internal/filter"
	"ytdeck/internal/models"

	"github.com/stretchr/testify/require"
)

type histStore struct{ entries []models.HistoryEntry }

func (h histStore) RecordWatch(context.Context, models.HistoryEntry) error { return nil }
func (h histStore) ListHistory(context.Context, int, int) ([]models.HistoryEntry, error) {
	return h.entries, nil
}
func (h histStore) RemoveHistory(context.Context, string) error { return nil }
func (h histStore) ClearHistory(context.Context) error { return nil }

type subStore struct{ subs []models.Subscription }

func (s subStore) ListSubscriptions(context.Context) ([]models.Subscription, error) {
	return s.subs, nil
}
func (s subStore) AddSubscription(context.Context, models.Subscription) error { return nil }
func (s subStore) RemoveSubscription(context.Context, string) error { return nil }
func (s subStore) IsSubscribed(context.Context, string) (bool, error) { return false, nil }

type snap blocking.Snapshot

func (s snap) Snapshot(context.Context) (blocking.Snapshot, error) { return blocking.Snapshot(s), nil }

func TestLibrarySearch(t *testing.T) {
	t.Parallel()

	hist := histStore{entries: []models.HistoryEntry{
		{VideoID: "v1", Title: "Writing a Go compiler", ChannelID: "UCa"},
		{VideoID: "v2", Title: "Gardening basics", ChannelID: "UCb"},
		{VideoID: "v3", Title: "Go concurrency patterns", ChannelID: "UCblocked"},
	}}
	subs := subStore{subs: []models.Subscription{
		{ChannelID: "UCa", Name: "Compiler Corner"},
		{ChannelID: "UCb", Name: "Green Thumb"},
	}}
	f := filter.New(snap(blocking.NewSnapshot([]string{"UCblocked"}, nil)))

	lib := New(hist, subs, f)
	res, err := lib.Search(context.Background(), "compiler")
	require.NoError(t, err)
	require.Len(t, res.History, 1)
	require.Equal(t, "v1", res.History[0].ID)
	require.Len(t, res.Subscriptions, 1)
	require.Equal(t, "UCa", res.Subscriptions[0].ChannelID)

	res, err = lib.Search(context.Background(), "go")
	require.NoError(t, err)
	for _, it := range res.History {
		require.NotEqual(t, "v3", it.ID, "blocked channel leaked into library search")
	}

	res, err = lib.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, res.History)
	require.Empty(t, res.Subscriptions)
}

package repo

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
	"ytdeck/internal/database"
	"ytdeck/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := database.InitDB(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return InitStores(d.DB)
}

func TestBlockStoreIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bs := newTestStore(t).BlockStore()

	require.NoError(t, bs.AddBlockedChannel(ctx, "UC1", "First"))
	require.NoError(t, bs.AddBlockedChannel(ctx, "UC1", "First again"))
	require.NoError(t, bs.AddBlockedKeyword(ctx, "spoiler"))
	require.NoError(t, bs.AddBlockedKeyword(ctx, "spoiler"))

	chans, err := bs.ListBlockedChannels(ctx)
	require.NoError(t, err)
	require.Len(t, chans, 1)
	require.Equal(t, "First", chans[0].Name)

	kws, err := bs.ListBlockedKeywords(ctx)
	require.NoError(t, err)
	require.Len(t, kws, 1)

	require.NoError(t, bs.RemoveBlockedChannel(ctx, "UC1"))
	require.NoError(t, bs.RemoveBlockedChannel(ctx, "UC1"))
	require.NoError(t, bs.RemoveBlockedKeyword(ctx, "missing"))

	chans, err = bs.ListBlockedChannels(ctx)
	require.NoError(t, err)
	require.Empty(t, chans)
}

func TestSubscriptionStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ss := newTestStore(t).SubscriptionStore()

	require.NoError(t, ss.AddSubscription(ctx, models.Subscription{ChannelID: "UCb", Name: "Bravo"}))
	require.NoError(t, ss.AddSubscription(ctx, models.Subscription{ChannelID: "UCa", Name: "alpha"}))
	require.NoError(t, ss.AddSubscription(ctx, models.Subscription{ChannelID: "UCb", Name: "Bravo Renamed"}))

	subs, err := ss.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "UCa", subs[0].ChannelID)
	require.Equal(t, "Bravo Renamed", subs[1].Name)

	ok, err := ss.IsSubscribed(ctx, "UCa")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ss.RemoveSubscription(ctx, "UCa"))
	ok, err = ss.IsSubscribed(ctx, "UCa")
	require.NoError(t, err)
	require.False(t, ok)

	require.Error(t, ss.AddSubscription(ctx, models.Subscription{}))
}

func TestDefaultPlaylistCreatedOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ps := newTestStore(t).PlaylistStore()

	var (
		wg  sync.WaitGroup
		ids = make([]string, 8)
	)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := ps.DefaultPlaylist(ctx)
			if err == nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	all, err := ps.ListPlaylists(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].IsDefault)
	require.Equal(t, "Watch later", all[0].Name)
	for _, id := range ids {
		if id != "" {
			require.Equal(t, all[0].ID, id)
		}
	}
}

func TestSetDefaultPlaylistMovesFlag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ps := newTestStore(t).PlaylistStore()

	def, err := ps.DefaultPlaylist(ctx)
	require.NoError(t, err)
	other, err := ps.CreatePlaylist(ctx, "Music")
	require.NoError(t, err)

	require.NoError(t, ps.SetDefaultPlaylist(ctx, other.ID))

	got, err := ps.DefaultPlaylist(ctx)
	require.NoError(t, err)
	require.Equal(t, other.ID, got.ID)

	old, err := ps.GetPlaylist(ctx, def.ID)
	require.NoError(t, err)
	require.False(t, old.IsDefault)

	require.ErrorIs(t, ps.SetDefaultPlaylist(ctx, "missing"), ErrNotFound)
	got, err = ps.DefaultPlaylist(ctx)
	require.NoError(t, err)
	require.Equal(t, other.ID, got.ID, "failed SetDefault must not clear the current default")
}

func TestPlaylistItemsAddTwiceLeavesOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ps := newTestStore(t).PlaylistStore()

	p, err := ps.DefaultPlaylist(ctx)
	require.NoError(t, err)

	item := models.PlaylistItem{PlaylistID: p.ID, VideoID: "v1", Title: "One", Duration: models.KnownDuration(90)}
	require.NoError(t, ps.AddPlaylistItem(ctx, item))
	require.NoError(t, ps.AddPlaylistItem(ctx, item))
	require.NoError(t, ps.AddPlaylistItem(ctx, models.PlaylistItem{PlaylistID: p.ID, VideoID: "v2", Title: "Two"}))

	items, err := ps.PlaylistItems(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "v1", items[0].VideoID)
	require.Equal(t, models.KnownDuration(90), items[0].Duration)
	require.False(t, items[1].Duration.Known)

	ok, err := ps.PlaylistContains(ctx, p.ID, "v2")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ps.ReorderPlaylist(ctx, p.ID, []string{"v2"}))
	items, err = ps.PlaylistItems(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"v2", "v1"}, []string{items[0].VideoID, items[1].VideoID})

	require.NoError(t, ps.RemovePlaylistItem(ctx, p.ID, "v2"))
	require.NoError(t, ps.RemovePlaylistItem(ctx, p.ID, "v2"))
	ok, err = ps.PlaylistContains(ctx, p.ID, "v2")
	require.NoError(t, err)
	require.False(t, ok)

	got, err := ps.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.ItemCount)
}

func TestDeletePlaylistCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ps := newTestStore(t).PlaylistStore()

	p, err := ps.CreatePlaylist(ctx, "Temp")
	require.NoError(t, err)
	require.NoError(t, ps.AddPlaylistItem(ctx, models.PlaylistItem{PlaylistID: p.ID, VideoID: "v1"}))
	require.NoError(t, ps.DeletePlaylist(ctx, p.ID))

	items, err := ps.PlaylistItems(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	_, err = ps.GetPlaylist(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, ps.RenamePlaylist(ctx, p.ID, "x"), ErrNotFound)
}

func TestHistoryLastWatchedWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hs := newTestStore(t).HistoryStore()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, hs.RecordWatch(ctx, models.HistoryEntry{VideoID: "a", Title: "A", WatchedAt: base}))
	require.NoError(t, hs.RecordWatch(ctx, models.HistoryEntry{VideoID: "b", Title: "B", WatchedAt: base.Add(time.Minute)}))
	require.NoError(t, hs.RecordWatch(ctx, models.HistoryEntry{VideoID: "a", Title: "A2", ProgressSeconds: 30, WatchedAt: base.Add(2 * time.Minute)}))

	entries, err := hs.ListHistory(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].VideoID)
	require.Equal(t, "A2", entries[0].Title)
	require.Equal(t, 30, entries[0].ProgressSeconds)
	require.Equal(t, "b", entries[1].VideoID)

	require.NoError(t, hs.RemoveHistory(ctx, "b"))
	entries, err = hs.ListHistory(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, hs.ClearHistory(ctx))
	entries, err = hs.ListHistory(ctx, 10, 0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSettingsStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ss := newTestStore(t).SettingsStore()

	_, found, err := ss.GetSetting(ctx, "region")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, ss.SetSetting(ctx, "region", "US"))
	require.NoError(t, ss.SetSetting(ctx, "region", "GB"))

	v, found, err := ss.GetSetting(ctx, "region")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "GB", v)

	all, err := ss.AllSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.Setting{{Key: "region", Value: "GB"}}, all)
}

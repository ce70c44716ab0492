package filter

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"
	"ytdeck/internal/blocking"
	"ytdeck/internal/database"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"
	"ytdeck/internal/repo"

	"github.com/stretchr/testify/require"
)

type fixedSnap struct {
	snap blocking.Snapshot
	err  error
}

func (f fixedSnap) Snapshot(context.Context) (blocking.Snapshot, error) {
	return f.snap, f.err
}

func ids(items []models.ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestApplyFailOpenOnMissingChannel(t *testing.T) {
	t.Parallel()

	f := New(fixedSnap{snap: blocking.NewSnapshot([]string{"UC1", "UC2"}, []string{"spoiler"})})
	item := models.ContentItem{ID: "v", Title: "Harmless"}

	got := f.Apply(context.Background(), []models.ContentItem{item})
	if !slices.Equal(ids(got), []string{"v"}) {
		t.Fatalf("Apply() = %v, want item without channel kept", ids(got))
	}
}

func TestApplyKeepsChannelessItemMatchingKeyword(t *testing.T) {
	t.Parallel()

	f := New(fixedSnap{snap: blocking.NewSnapshot([]string{"UC1"}, []string{"spoiler"})})
	items := []models.ContentItem{
		{ID: "nochan", Title: "Spoiler without channel"},
		{ID: "blank", Title: "spoiler again", Channel: models.ChannelRef{ID: "  ", Name: "Someone"}},
		{ID: "withchan", Title: "spoiler with channel", Channel: models.ChannelRef{ID: "UC9"}},
	}

	got := f.Apply(context.Background(), items)
	if want := []string{"nochan", "blank"}; !slices.Equal(ids(got), want) {
		t.Fatalf("Apply() = %v, want %v", ids(got), want)
	}
}

func TestApplyRemovesBlockedChannelPreservingOrder(t *testing.T) {
	t.Parallel()

	f := New(fixedSnap{snap: blocking.NewSnapshot([]string{"C"}, nil)})
	items := []models.ContentItem{
		{ID: "1", Channel: models.ChannelRef{ID: "A"}},
		{ID: "2", Channel: models.ChannelRef{ID: "C"}},
		{ID: "3", Channel: models.ChannelRef{ID: "B"}},
		{ID: "4", Channel: models.ChannelRef{ID: "C"}},
		{ID: "5", Channel: models.ChannelRef{ID: "A"}},
	}

	got := f.Apply(context.Background(), items)
	if want := []string{"1", "3", "5"}; !slices.Equal(ids(got), want) {
		t.Fatalf("Apply() = %v, want %v", ids(got), want)
	}
}

func TestApplyKeywordsMatchTitleAndDescription(t *testing.T) {
	t.Parallel()

	f := New(fixedSnap{snap: blocking.NewSnapshot(nil, []string{"Spoiler"})})
	items := []models.ContentItem{
		{ID: "title", Title: "Huge SPOILERS inside", Channel: models.ChannelRef{ID: "A"}},
		{ID: "desc", Title: "Episode 4", Description: "contains spoilers", Channel: models.ChannelRef{ID: "A"}},
		{ID: "clean", Title: "Episode 5", Channel: models.ChannelRef{ID: "A"}},
	}

	got := f.Apply(context.Background(), items)
	if !slices.Equal(ids(got), []string{"clean"}) {
		t.Fatalf("Apply() = %v, want [clean]", ids(got))
	}
}

func TestApplySnapshotErrorReturnsInput(t *testing.T) {
	t.Parallel()

	f := New(fixedSnap{err: errors.New("db locked")})
	items := []models.ContentItem{{ID: "1", Channel: models.ChannelRef{ID: "C"}}}

	got := f.Apply(context.Background(), items)
	if !slices.Equal(ids(got), []string{"1"}) {
		t.Fatalf("Apply() = %v, want unfiltered input", ids(got))
	}
}

// End to end: three subscribed channels, X blocked; v1 from X, v2 a short, v3 a video.
func TestBlockedChannelShortAndVideoEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d, err := database.InitDB(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	store := repo.InitStores(d.DB)

	bl := blocking.New(store.BlockStore())
	require.NoError(t, bl.BlockChannel(ctx, "X", "Channel X"))

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	src := func(id string, item models.ContentItem) feed.Source {
		return feed.NewSource(id, func(context.Context) (feed.Page, error) {
			return feed.Page{Items: []models.ContentItem{item}}, nil
		})
	}
	sources := []feed.Source{
		src("rss:X", models.ContentItem{
			ID: "v1", Title: "Long one", Duration: models.KnownDuration(600),
			Channel: models.ChannelRef{ID: "X"}, PublishedAt: now.Add(-3 * time.Hour),
		}),
		src("rss:Y", models.ContentItem{
			ID: "v2", Title: "Quick", Duration: models.KnownDuration(30),
			Channel:     models.ChannelRef{ID: "Y"},
			Thumbnails:  []models.Thumbnail{{URL: "y.jpg", Width: 405, Height: 720}},
			PublishedAt: now.Add(-2 * time.Hour),
		}),
		src("rss:Z", models.ContentItem{
			ID: "v3", Title: "Trip recap", Channel: models.ChannelRef{ID: "Z"},
			PublishedAt: now.Add(-time.Hour),
		}),
	}

	res, err := feed.New().Aggregate(ctx, sources)
	require.NoError(t, err)
	res = New(bl).ApplyResult(ctx, res)

	require.Equal(t, []string{"v3"}, ids(res.Videos))
	require.Equal(t, []string{"v2"}, ids(res.Shorts))
}

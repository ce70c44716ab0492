package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	"ytdeck/internal/blocking"
	"ytdeck/internal/feed"
	"ytdeck/internal/filter"
	"ytdeck/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	pages     map[string]feed.Page
	videos    map[string]models.ContentItem
	videoHits atomic.Int32
}

func (f *fakeLister) source(id string) feed.Source {
	return feed.NewSource(id, func(context.Context) (feed.Page, error) {
		p, ok := f.pages[id]
		if !ok {
			return feed.Page{}, errors.New("boom")
		}
		return p, nil
	})
}

func (f *fakeLister) SearchSource(q, _ string) feed.Source { return f.source("search:" + q) }
func (f *fakeLister) TrendingSource() feed.Source { return f.source("trending") }
func (f *fakeLister) ChannelSource(id, _ string) feed.Source { return f.source("channel:" + id) }
func (f *fakeLister) ChannelShortsSource(id string) feed.Source { return f.source("shorts:" + id) }
func (f *fakeLister) RelatedSource(id string) feed.Source { return f.source("related:" + id) }
func (f *fakeLister) Video(_ context.Context, id string) (models.ContentItem, error) {
	f.videoHits.Add(1)
	v, ok := f.videos[id]
	if !ok {
		return models.ContentItem{}, errors.New("not found")
	}
	return v, nil
}

type fakeFeeds struct{ pages map[string]feed.Page }

func (f fakeFeeds) Source(sub models.Subscription) feed.Source {
	return feed.NewSource("rss:"+sub.ChannelID, func(context.Context) (feed.Page, error) {
		p, ok := f.pages[sub.ChannelID]
		if !ok {
			return feed.Page{}, errors.New("feed down")
		}
		return p, nil
	})
}

type fakeSubs struct{ subs []models.Subscription }

func (f *fakeSubs) ListSubscriptions(context.Context) ([]models.Subscription, error) { return f.subs, nil }
func (f *fakeSubs) AddSubscription(_ context.Context, s models.Subscription) error {
	f.subs = append(f.subs, s)
	return nil
}
func (f *fakeSubs) RemoveSubscription(context.Context, string) error { return nil }
func (f *fakeSubs) IsSubscribed(context.Context, string) (bool, error) { return false, nil }

type fakeHistory struct{ entries []models.HistoryEntry }

func (f *fakeHistory) RecordWatch(_ context.Context, e models.HistoryEntry) error {
	f.entries = append(f.entries, e)
	return nil
}
func (f *fakeHistory) ListHistory(context.Context, int, int) ([]models.HistoryEntry, error) {
	return f.entries, nil
}
func (f *fakeHistory) RemoveHistory(context.Context, string) error { return nil }
func (f *fakeHistory) ClearHistory(context.Context) error { return nil }

type staticBlocks struct {
	snap  blocking.Snapshot
	calls atomic.Int32
}

func (s *staticBlocks) Snapshot(context.Context) (blocking.Snapshot, error) {
	s.calls.Add(1)
	return s.snap, nil
}

type mapCache map[string]models.ContentItem

func (m mapCache) Get(id string) (models.ContentItem, bool) {
	it, ok := m[id]
	return it, ok
}

func (m mapCache) Put(it models.ContentItem) error {
	m[it.ID] = it
	return nil
}

func item(id, channel string, dur int, published time.Time) models.ContentItem {
	return models.ContentItem{
		ID:          id,
		Title:       "title " + id,
		Channel:     models.ChannelRef{ID: channel},
		Duration:    models.KnownDuration(dur),
		PublishedAt: published,
	}
}

func newTestContent(lister *fakeLister, feeds fakeFeeds, subs *fakeSubs, blocks *staticBlocks) (*Content, *fakeHistory) {
	hist := &fakeHistory{}
	return NewContent(Deps{
		Lister:        lister,
		Feeds:         feeds,
		Aggregator:    feed.New(feed.WithTimeout(time.Second)),
		Filter:        filter.New(blocks),
		Subscriptions: subs,
		History:       hist,
	}), hist
}

func TestSubscriptionFeedFiltersOnceAndSplits(t *testing.T) {
	t.Parallel()

	now := time.Now()
	feeds := fakeFeeds{pages: map[string]feed.Page{
		"UCa": {Items: []models.ContentItem{item("a1", "UCa", 600, now.Add(-time.Hour)), item("a2", "UCa", 30, now)}},
		"UCx": {Items: []models.ContentItem{item("x1", "UCx", 600, now)}},
	}}
	subs := &fakeSubs{subs: []models.Subscription{{ChannelID: "UCa"}, {ChannelID: "UCx"}, {ChannelID: "UCdown"}}}
	blocks := &staticBlocks{snap: blocking.NewSnapshot([]string{"UCx"}, nil)}

	c, _ := newTestContent(&fakeLister{}, feeds, subs, blocks)

	res, err := c.SubscriptionFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Videos, 1)
	require.Equal(t, "a1", res.Videos[0].ID)
	require.Len(t, res.Shorts, 1)
	require.Equal(t, "a2", res.Shorts[0].ID)
	require.Equal(t, []string{"rss:UCdown"}, res.Failed)
	require.Equal(t, int32(1), blocks.calls.Load())
}

func TestSubscriptionFeedWithoutSubscriptions(t *testing.T) {
	t.Parallel()

	c, _ := newTestContent(&fakeLister{}, fakeFeeds{}, &fakeSubs{}, &staticBlocks{})
	_, err := c.SubscriptionFeed(context.Background())
	require.ErrorIs(t, err, ErrNoSubscriptions)
}

func TestSearchAndContinuation(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{pages: map[string]feed.Page{
		"search:go": {Items: []models.ContentItem{item("g1", "UCg", 900, time.Time{})}, Continuation: "tok"},
	}}
	c, _ := newTestContent(lister, fakeFeeds{}, &fakeSubs{}, &staticBlocks{})

	res, err := c.Search(context.Background(), "  go ", "")
	require.NoError(t, err)
	require.Equal(t, "tok", res.Continuation)
	require.Len(t, res.Videos, 1)

	_, err = c.Search(context.Background(), " ", "")
	require.ErrorIs(t, err, ErrEmptyQuery)

	_, err = c.Search(context.Background(), "nothing", "")
	require.ErrorIs(t, err, feed.ErrAllSourcesFailed)
}

type fixedTrending struct{ src feed.Source }

func (f fixedTrending) TrendingSource() feed.Source { return f.src }

func TestTrendingFallsBack(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{pages: map[string]feed.Page{
		"trending": {Items: []models.ContentItem{item("t1", "UCt", 300, time.Time{})}},
	}}
	c, _ := newTestContent(lister, fakeFeeds{}, &fakeSubs{}, &staticBlocks{})
	c.trending = fixedTrending{src: feed.NewSource("dataapi", func(context.Context) (feed.Page, error) {
		return feed.Page{}, errors.New("quota")
	})}

	res, err := c.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Videos, 1)
	require.Equal(t, "t1", res.Videos[0].ID)

	c.trending = fixedTrending{src: feed.NewSource("dataapi", func(context.Context) (feed.Page, error) {
		return feed.Page{Items: []models.ContentItem{item("d1", "UCd", 300, time.Time{})}}, nil
	})}
	res, err = c.Trending(context.Background())
	require.NoError(t, err)
	require.Equal(t, "d1", res.Videos[0].ID)
}

func TestVideoUsesCacheAndWatchRecords(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{videos: map[string]models.ContentItem{
		"v1": item("v1", "UCv", 45, time.Time{}),
	}}
	c, hist := newTestContent(lister, fakeFeeds{}, &fakeSubs{}, &staticBlocks{})
	c.cache = mapCache{}

	v, err := c.Video(context.Background(), "v1")
	require.NoError(t, err)
	require.True(t, v.IsShort)

	_, err = c.Video(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, int32(1), lister.videoHits.Load())
	require.Empty(t, hist.entries)

	require.NoError(t, c.Watch(context.Background(), v, 12))
	require.Len(t, hist.entries, 1)
	require.Equal(t, 12, hist.entries[0].ProgressSeconds)

	require.ErrorIs(t, c.Watch(context.Background(), models.ContentItem{ID: " "}, 0), ErrEmptyID)
}

func TestRelatedAndChannel(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{pages: map[string]feed.Page{
		"related:v1":  {Items: []models.ContentItem{item("r1", "UCr", 200, time.Time{})}},
		"channel:UCc": {Items: []models.ContentItem{item("c1", "UCc", 200, time.Time{})}, Continuation: "more"},
		"shorts:UCc":  {Items: []models.ContentItem{item("s1", "UCc", 20, time.Time{})}},
	}}
	blocks := &staticBlocks{snap: blocking.NewSnapshot(nil, []string{"nothing matches"})}
	c, _ := newTestContent(lister, fakeFeeds{}, &fakeSubs{}, blocks)

	res, err := c.Related(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, res.Videos, 1)

	res, err = c.ChannelVideos(context.Background(), "UCc", "")
	require.NoError(t, err)
	require.Equal(t, "more", res.Continuation)

	res, err = c.ChannelShorts(context.Background(), "UCc")
	require.NoError(t, err)
	require.Len(t, res.Shorts, 1)

	_, err = c.ChannelVideos(context.Background(), "", "")
	require.ErrorIs(t, err, ErrEmptyID)
}

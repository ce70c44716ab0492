package dataapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"ytdeck/internal/sources"

	"google.golang.org/api/youtube/v3"
)

func TestFromVideo(t *testing.T) {
	t.Parallel()

	item, ok := fromVideo(&youtube.Video{
		Id: "abc",
		Snippet: &youtube.VideoSnippet{
			Title:        "Title",
			ChannelId:    "UCx",
			ChannelTitle: "X",
			PublishedAt:  "2026-04-01T10:00:00Z",
			Thumbnails: &youtube.ThumbnailDetails{
				Default: &youtube.Thumbnail{Url: "d.jpg", Width: 120, Height: 90},
				High:    &youtube.Thumbnail{Url: "h.jpg", Width: 480, Height: 360},
			},
		},
		ContentDetails: &youtube.VideoContentDetails{Duration: "PT1M5S"},
		Statistics:     &youtube.VideoStatistics{ViewCount: 99},
	})
	if !ok {
		t.Fatal("expected item")
	}
	if item.Duration.Seconds != 65 || !item.Duration.Known {
		t.Errorf("duration = %+v", item.Duration)
	}
	if item.ThumbnailURL() != "h.jpg" {
		t.Errorf("thumbnail = %q", item.ThumbnailURL())
	}
	if item.ViewCount != 99 || item.Channel.Name != "X" || item.PublishedAt.IsZero() {
		t.Errorf("item = %+v", item)
	}

	live, _ := fromVideo(&youtube.Video{
		Id:             "live",
		Snippet:        &youtube.VideoSnippet{Title: "Live", LiveBroadcastContent: "live"},
		ContentDetails: &youtube.VideoContentDetails{Duration: "P0D"},
	})
	if !live.Live || live.Duration.Known {
		t.Errorf("live item = %+v", live)
	}

	if _, ok := fromVideo(&youtube.Video{}); ok {
		t.Error("expected missing id to be rejected")
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("chart") != "mostPopular" || r.URL.Query().Get("regionCode") != "GB" {
			http.Error(w, `{"error":{"code":400,"message":"bad"}}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"v1","snippet":{"title":"One"},"contentDetails":{"duration":"PT30S"}}]}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), "key", WithEndpoint(srv.URL+"/"), WithHTTPClient(srv.Client()), WithRegion("gb"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	page, err := c.Trending(context.Background())
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Duration.Seconds != 30 {
		t.Errorf("page = %+v", page.Items)
	}
}

func TestQuotaError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota","errors":[{"reason":"quotaExceeded"}]}}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), "key", WithEndpoint(srv.URL+"/"), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = c.Trending(context.Background())
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("err = %v, want quota exceeded", err)
	}
	var se *sources.SourceError
	if !errors.As(err, &se) || se.StatusCode != http.StatusForbidden {
		t.Errorf("err = %#v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), "  "); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v", err)
	}
}

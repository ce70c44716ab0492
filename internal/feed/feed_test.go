package feed

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
	"ytdeck/internal/models"
)

func ids(items []models.ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func staticSource(id string, delay time.Duration, items ...models.ContentItem) Source {
	return NewSource(id, func(ctx context.Context) (Page, error) {
		select {
		case <-time.After(delay):
			return Page{Items: items}, nil
		case <-ctx.Done():
			return Page{}, ctx.Err()
		}
	})
}

func TestMergeDedupKeepsFirstSource(t *testing.T) {
	t.Parallel()

	a := Page{Items: []models.ContentItem{{ID: "dup", Title: "from A", Duration: models.KnownDuration(300)}}}
	b := Page{Items: []models.ContentItem{{ID: "dup", Title: "from B", Duration: models.KnownDuration(300)}}}

	res := Merge(a, b)
	if len(res.Videos) != 1 {
		t.Fatalf("Merge() videos = %v, want one item", ids(res.Videos))
	}
	if res.Videos[0].Title != "from A" {
		t.Fatalf("kept copy %q, want the one from the first source", res.Videos[0].Title)
	}
}

func TestMergeDropsMissingIDAndFillsTitle(t *testing.T) {
	t.Parallel()

	res := Merge(Page{Items: []models.ContentItem{
		{ID: "", Title: "no id"},
		{ID: "ok", Duration: models.KnownDuration(120)},
	}})
	if got := ids(res.Videos); !slices.Equal(got, []string{"ok"}) {
		t.Fatalf("Merge() videos = %v, want [ok]", got)
	}
	if res.Videos[0].Title != "Untitled" {
		t.Fatalf("title = %q, want placeholder", res.Videos[0].Title)
	}
}

func TestMergeSortsNewestFirstUnknownLast(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	long := models.KnownDuration(600)
	res := Merge(Page{Items: []models.ContentItem{
		{ID: "u1", Duration: long},
		{ID: "old", Duration: long, PublishedAt: base},
		{ID: "u2", Duration: long},
		{ID: "new", Duration: long, PublishedAt: base.Add(time.Hour)},
	}})

	want := []string{"new", "old", "u1", "u2"}
	if got := ids(res.Videos); !slices.Equal(got, want) {
		t.Fatalf("Merge() order = %v, want %v", got, want)
	}
}

func TestMergeSplitsShorts(t *testing.T) {
	t.Parallel()

	res := Merge(Page{
		Items: []models.ContentItem{
			{ID: "s", Duration: models.KnownDuration(30)},
			{ID: "v", Duration: models.KnownDuration(300)},
		},
		Continuation: "next",
	})
	if !slices.Equal(ids(res.Shorts), []string{"s"}) || !slices.Equal(ids(res.Videos), []string{"v"}) {
		t.Fatalf("Merge() = videos %v shorts %v", ids(res.Videos), ids(res.Shorts))
	}
	if !res.Shorts[0].IsShort || res.Videos[0].IsShort {
		t.Fatal("IsShort not set from classification")
	}
	if res.Continuation != "next" {
		t.Fatalf("single-page continuation = %q, want next", res.Continuation)
	}
	if multi := Merge(Page{Continuation: "a"}, Page{Continuation: "b"}); multi.Continuation != "" {
		t.Fatalf("multi-page continuation = %q, want empty", multi.Continuation)
	}
}

func TestAggregatePartialFailure(t *testing.T) {
	t.Parallel()

	healthy := staticSource("healthy", 0, models.ContentItem{ID: "v1", Duration: models.KnownDuration(300)})
	broken := NewSource("broken", func(context.Context) (Page, error) {
		return Page{}, errors.New("boom")
	})

	res, err := New().Aggregate(context.Background(), []Source{broken, healthy})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	if !slices.Equal(ids(res.Videos), []string{"v1"}) {
		t.Fatalf("Aggregate() videos = %v, want [v1]", ids(res.Videos))
	}
	if !slices.Equal(res.Failed, []string{"broken"}) {
		t.Fatalf("Failed = %v, want [broken]", res.Failed)
	}
}

func TestAggregateOrderIsSourceOrderNotCompletionOrder(t *testing.T) {
	t.Parallel()

	slow := staticSource("slow", 50*time.Millisecond, models.ContentItem{ID: "dup", Title: "slow", Duration: models.KnownDuration(300)})
	fast := staticSource("fast", 0, models.ContentItem{ID: "dup", Title: "fast", Duration: models.KnownDuration(300)})

	res, err := New().Aggregate(context.Background(), []Source{slow, fast})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	if len(res.Videos) != 1 || res.Videos[0].Title != "slow" {
		t.Fatalf("Aggregate() kept %+v, want the first-listed source's copy", res.Videos)
	}
}

func TestAggregateTimeoutIsSourceFailure(t *testing.T) {
	t.Parallel()

	hung := NewSource("hung", func(ctx context.Context) (Page, error) {
		<-ctx.Done()
		return Page{}, ctx.Err()
	})
	ok := staticSource("ok", 0, models.ContentItem{ID: "v", Duration: models.KnownDuration(100)})

	start := time.Now()
	res, err := New(WithTimeout(30*time.Millisecond)).Aggregate(context.Background(), []Source{hung, ok})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("Aggregate() did not honour the per-source timeout")
	}
	if !slices.Equal(res.Failed, []string{"hung"}) || len(res.Videos) != 1 {
		t.Fatalf("Aggregate() = %+v", res)
	}
}

func TestAggregatePanicIsSourceFailure(t *testing.T) {
	t.Parallel()

	bad := NewSource("panics", func(context.Context) (Page, error) {
		panic("unexpected shape")
	})
	ok := staticSource("ok", 0, models.ContentItem{ID: "v", Duration: models.KnownDuration(100)})

	res, err := New().Aggregate(context.Background(), []Source{bad, ok})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	if !slices.Equal(res.Failed, []string{"panics"}) {
		t.Fatalf("Failed = %v, want [panics]", res.Failed)
	}
}

func TestAggregateAllFailedAndNoSources(t *testing.T) {
	t.Parallel()

	if _, err := New().Aggregate(context.Background(), nil); !errors.Is(err, ErrNoSources) {
		t.Fatalf("Aggregate(nil) err = %v, want ErrNoSources", err)
	}

	broken := NewSource("broken", func(context.Context) (Page, error) {
		return Page{}, errors.New("down")
	})
	res, err := New().Aggregate(context.Background(), []Source{broken})
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Fatalf("Aggregate() err = %v, want ErrAllSourcesFailed", err)
	}
	if len(res.Videos) != 0 || len(res.Shorts) != 0 {
		t.Fatalf("Aggregate() returned items despite total failure: %+v", res)
	}
}

func TestAggregateRespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var (
		inFlight = make(chan struct{}, 10)
		maxSeen  = make(chan int, 10)
	)
	srcs := make([]Source, 6)
	for i := range srcs {
		srcs[i] = NewSource(string(rune('a'+i)), func(context.Context) (Page, error) {
			inFlight <- struct{}{}
			maxSeen <- len(inFlight)
			time.Sleep(10 * time.Millisecond)
			<-inFlight
			return Page{}, nil
		})
	}

	if _, err := New(WithConcurrency(2)).Aggregate(context.Background(), srcs); err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	close(maxSeen)
	for n := range maxSeen {
		if n > 2 {
			t.Fatalf("observed %d concurrent fetches, limit is 2", n)
		}
	}
}

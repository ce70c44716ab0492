package feed

import (
	"context"
	"fmt"
	"sync"
	"time"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/logger"
)

// Aggregator fetches sources concurrently and merges their pages.
type Aggregator struct {
	timeout     time.Duration
	concurrency int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTimeout bounds each source fetch. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithConcurrency bounds the number of fetches in flight. Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// New returns an Aggregator with defaults overridden by opts.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		timeout:     consts.DefaultSourceTimeout,
		concurrency: consts.DefaultFeedConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fetchResult is one source's outcome, stored by source index.
type fetchResult struct {
	page Page
	err  error
}

// Aggregate fetches every source and merges the pages in supplied order.
//
// A failed or timed-out source contributes nothing and is listed in Failed.
// An error is returned only when there are no sources or all of them failed.
func (a *Aggregator) Aggregate(ctx context.Context, sources []Source) (Result, error) {
	if len(sources) == 0 {
		return Merge(), ErrNoSources
	}

	var (
		results = make([]fetchResult, len(sources))
		sem     = make(chan struct{}, a.concurrency)
		wg      sync.WaitGroup
	)

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = fetchResult{err: ctx.Err()}
				return
			}
			defer func() {
				<-sem
			}()

			results[i] = a.fetchOne(ctx, src)
		}(i, src)
	}
	wg.Wait()

	pages := make([]Page, 0, len(sources))
	var failed []string
	for i, r := range results {
		if r.err != nil {
			logger.Pl.W("Source %q failed, continuing without it: %v", sources[i].ID(), r.err)
			failed = append(failed, sources[i].ID())
			continue
		}
		pages = append(pages, r.page)
	}

	res := Merge(pages...)
	if len(sources) > 1 {
		// No cross-source continuation.
		res.Continuation = ""
	}
	res.Failed = failed

	if len(failed) == len(sources) {
		return res, fmt.Errorf("%w (%d sources)", ErrAllSourcesFailed, len(sources))
	}
	return res, nil
}

// fetchOne runs a single fetch under the per-source timeout.
//
// Sources ignoring their context are abandoned once the timeout passes.
func (a *Aggregator) fetchOne(ctx context.Context, src Source) fetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fetchResult{err: fmt.Errorf("panic fetching source %q: %v", src.ID(), p)}
			}
		}()
		page, err := src.Fetch(fetchCtx)
		done <- fetchResult{page: page, err: err}
	}()

	select {
	case r := <-done:
		return r
	case <-fetchCtx.Done():
		return fetchResult{err: fmt.Errorf("source %q: %w", src.ID(), fetchCtx.Err())}
	}
}

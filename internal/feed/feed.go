// Package feed merges content from one or more sources into a single ordered,
// deduplicated listing split into videos and shorts.
package feed

import (
	"context"
	"errors"
	"ytdeck/internal/models"
)

var (
	// ErrNoSources is returned when Aggregate is called with no sources.
	ErrNoSources = errors.New("no sources to aggregate")
	// ErrAllSourcesFailed is returned when not a single source produced a page.
	ErrAllSourcesFailed = errors.New("all sources failed")
)

// Page is one fetch worth of items from a single source.
//
// Continuation is opaque and only meaningful to the source that produced it.
type Page struct {
	Items        []models.ContentItem
	Continuation string
}

// Source fetches one page of content.
type Source interface {
	ID() string
	Fetch(ctx context.Context) (Page, error)
}

// Result is a merged listing.
type Result struct {
	Videos       []models.ContentItem `json:"videos"`
	Shorts       []models.ContentItem `json:"shorts"`
	Continuation string               `json:"continuation,omitempty"`
	Failed       []string             `json:"failed,omitempty"`
}

// Items returns videos followed by shorts.
func (r Result) Items() []models.ContentItem {
	out := make([]models.ContentItem, 0, len(r.Videos)+len(r.Shorts))
	out = append(out, r.Videos...)
	return append(out, r.Shorts...)
}

// funcSource adapts a function to Source.
type funcSource struct {
	id    string
	fetch func(ctx context.Context) (Page, error)
}

// NewSource returns a Source backed by fetch.
func NewSource(id string, fetch func(ctx context.Context) (Page, error)) Source {
	return &funcSource{id: id, fetch: fetch}
}

func (s *funcSource) ID() string { return s.id }

func (s *funcSource) Fetch(ctx context.Context) (Page, error) {
	return s.fetch(ctx)
}

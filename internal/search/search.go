// Package search ranks the local library (watch history and subscriptions) against a fuzzy query.
package search

import (
	"context"
	"fmt"
	"strings"
	"ytdeck/internal/contracts"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/models"

	"github.com/sahilm/fuzzy"
)

// ItemFilter removes blocked content.
type ItemFilter interface {
	Apply(ctx context.Context, items []models.ContentItem) []models.ContentItem
}

// Results holds ranked matches, best first.
type Results struct {
	History       []models.ContentItem  `json:"history"`
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// index implements fuzzy.Source over pre-lowered strings.
type index []string

func (x index) String(i int) string { return x[i] }
func (x index) Len() int { return len(x) }

// Library searches locally stored content.
type Library struct {
	history contracts.HistoryStore
	subs    contracts.SubscriptionStore
	filter  ItemFilter
}

// New returns a library searcher.
func New(history contracts.HistoryStore, subs contracts.SubscriptionStore, filter ItemFilter) *Library {
	return &Library{history: history, subs: subs, filter: filter}
}

// Search ranks recent history titles and subscription names against query.
//
// History hits are block-filtered like any other listing.
func (l *Library) Search(ctx context.Context, query string) (Results, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Results{}, nil
	}

	entries, err := l.history.ListHistory(ctx, consts.LibrarySearchWindow, 0)
	if err != nil {
		return Results{}, fmt.Errorf("list history: %w", err)
	}
	subs, err := l.subs.ListSubscriptions(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("list subscriptions: %w", err)
	}

	items := make([]models.ContentItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.ContentItem())
	}
	if l.filter != nil {
		items = l.filter.Apply(ctx, items)
	}

	titles := make(index, len(items))
	for i, it := range items {
		titles[i] = strings.ToLower(it.Title + " " + it.Channel.Name)
	}
	names := make(index, len(subs))
	for i, s := range subs {
		names[i] = strings.ToLower(s.Name)
	}

	var res Results
	for _, m := range fuzzy.FindFrom(q, titles) {
		res.History = append(res.History, items[m.Index])
	}
	for _, m := range fuzzy.FindFrom(q, names) {
		res.Subscriptions = append(res.Subscriptions, subs[m.Index])
	}
	return res, nil
}

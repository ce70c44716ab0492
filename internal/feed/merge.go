package feed

import (
	"slices"
	"ytdeck/internal/classify"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"
)

// Merge flattens pages in order, dedupes, classifies and sorts.
//
// Items without an ID are dropped. The first occurrence of an ID wins. Both
// lists are stably sorted newest first, items without a timestamp last. The
// continuation token is kept only for a single page.
func Merge(pages ...Page) Result {
	res := Result{
		Videos: []models.ContentItem{},
		Shorts: []models.ContentItem{},
	}
	if len(pages) == 1 {
		res.Continuation = pages[0].Continuation
	}

	seen := make(map[string]struct{})
	for _, p := range pages {
		for _, item := range p.Items {
			if !item.Normalize() {
				logger.Pl.D(2, "Dropping item without ID (title %q)", item.Title)
				continue
			}
			if _, dup := seen[item.ID]; dup {
				logger.Pl.D(3, "Dropping duplicate item %q", item.ID)
				continue
			}
			seen[item.ID] = struct{}{}

			item.IsShort = classify.IsShort(&item)
			if item.IsShort {
				res.Shorts = append(res.Shorts, item)
			} else {
				res.Videos = append(res.Videos, item)
			}
		}
	}

	sortNewestFirst(res.Videos)
	sortNewestFirst(res.Shorts)
	return res
}

// sortNewestFirst stable-sorts by PublishedAt descending, unknown timestamps last.
func sortNewestFirst(items []models.ContentItem) {
	slices.SortStableFunc(items, func(a, b models.ContentItem) int {
		aKnown, bKnown := a.HasTimestamp(), b.HasTimestamp()
		switch {
		case aKnown && bKnown:
			return b.PublishedAt.Compare(a.PublishedAt)
		case aKnown:
			return -1
		case bKnown:
			return 1
		default:
			return 0
		}
	})
}

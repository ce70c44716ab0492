package classify

import (
	"testing"
	"ytdeck/internal/models"
	"ytdeck/internal/parsing"
)

func boolPtr(b bool) *bool { return &b }

func TestDecide(t *testing.T) {
	t.Parallel()

	portrait := []models.Thumbnail{{URL: "p.jpg", Width: 405, Height: 720}}
	landscape := []models.Thumbnail{{URL: "l.jpg", Width: 480, Height: 360}}

	tests := []struct {
		name      string
		item      models.ContentItem
		wantShort bool
		wantRule  Rule
	}{
		{
			name:      "reel renderer kind",
			item:      models.ContentItem{ID: "a", Kind: "reelItemRenderer", Duration: models.KnownDuration(600)},
			wantShort: true, wantRule: RuleExplicit,
		},
		{
			name:      "negative known duration is not within the limit",
			item:      models.ContentItem{ID: "a", Title: "Long lecture", Duration: models.Duration{Seconds: -8, Known: true}},
			wantShort: false, wantRule: RuleDefault,
		},
		{
			name:      "oversized duration parses to unknown",
			item:      models.ContentItem{ID: "a", Title: "Long lecture", Duration: parsing.ParseDuration("9999999999999999:00:00")},
			wantShort: false, wantRule: RuleDefault,
		},
		{
			name:      "explicit flag",
			item:      models.ContentItem{ID: "a", ShortFlag: boolPtr(true)},
			wantShort: true, wantRule: RuleExplicit,
		},
		{
			name:      "explicit false is not a veto",
			item:      models.ContentItem{ID: "a", ShortFlag: boolPtr(false), Duration: models.KnownDuration(30)},
			wantShort: true, wantRule: RuleDuration,
		},
		{
			name:      "relative shorts path",
			item:      models.ContentItem{ID: "a", EndpointHint: "/shorts/abc", Duration: models.KnownDuration(300)},
			wantShort: true, wantRule: RulePath,
		},
		{
			name:      "absolute youtube shorts url",
			item:      models.ContentItem{ID: "a", SourceURL: "https://m.youtube.com/shorts/abc"},
			wantShort: true, wantRule: RulePath,
		},
		{
			name:      "foreign domain shorts url ignored",
			item:      models.ContentItem{ID: "a", SourceURL: "https://example.com/shorts/abc", Thumbnails: landscape},
			wantShort: false, wantRule: RuleDefault,
		},
		{
			name:      "60 seconds is short",
			item:      models.ContentItem{ID: "a", Duration: models.KnownDuration(60), Thumbnails: landscape},
			wantShort: true, wantRule: RuleDuration,
		},
		{
			name:      "61 seconds is not short",
			item:      models.ContentItem{ID: "a", Duration: models.KnownDuration(61), Thumbnails: landscape},
			wantShort: false, wantRule: RuleDefault,
		},
		{
			name:      "explicit zero is short",
			item:      models.ContentItem{ID: "a", Duration: models.KnownDuration(0)},
			wantShort: true, wantRule: RuleDuration,
		},
		{
			name:      "unknown duration landscape not short",
			item:      models.ContentItem{ID: "a", Title: "Trip recap", Thumbnails: landscape},
			wantShort: false, wantRule: RuleDefault,
		},
		{
			name:      "portrait unknown duration",
			item:      models.ContentItem{ID: "a", Thumbnails: portrait},
			wantShort: true, wantRule: RulePortrait,
		},
		{
			name:      "portrait long video not short",
			item:      models.ContentItem{ID: "a", Duration: models.KnownDuration(900), Thumbnails: portrait},
			wantShort: false, wantRule: RuleDefault,
		},
		{
			name:      "keyword",
			item:      models.ContentItem{ID: "a", Title: "Funny cat #Shorts", Thumbnails: landscape},
			wantShort: true, wantRule: RuleKeyword,
		},
		{
			name:      "keyword applies to long videos",
			item:      models.ContentItem{ID: "a", Title: "Why this went VIRAL", Duration: models.KnownDuration(1200)},
			wantShort: true, wantRule: RuleKeyword,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Decide(&tt.item)
			if got.Short != tt.wantShort || got.Rule != tt.wantRule {
				t.Errorf("Decide() = %+v, want short=%v rule=%v", got, tt.wantShort, tt.wantRule)
			}
		})
	}
}

func TestDecideDeterministic(t *testing.T) {
	t.Parallel()

	item := models.ContentItem{
		ID:         "x",
		Title:      "meme compilation",
		Thumbnails: []models.Thumbnail{{Width: 100, Height: 200}},
	}
	first := Decide(&item)
	for range 100 {
		if got := Decide(&item); got != first {
			t.Fatalf("Decide() = %+v, earlier %+v", got, first)
		}
	}
}

func TestDecideNil(t *testing.T) {
	t.Parallel()

	if IsShort(nil) {
		t.Fatal("IsShort(nil) = true")
	}
}

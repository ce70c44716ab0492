// Package consts holds various global, unchanging values.
package consts

// ShortMaxSeconds is the longest known duration still treated as a short.
const ShortMaxSeconds = 60

// UntitledPlaceholder replaces absent titles so no card is rendered without one.
const UntitledPlaceholder = "Untitled"

// DefaultPlaylistName is the name given to the default playlist when it is first created.
const DefaultPlaylistName = "Watch later"

// ShortTitleKeywords are title fragments hinting at short-form content.
//
// Weakest classification signal, only consulted when nothing stronger decided.
var ShortTitleKeywords = [...]string{"#shorts", "#short", "shorts", "tiktok", "viral", "meme"}

// ShortKinds are source renderer kinds which explicitly mark an item as a short.
var ShortKinds = map[string]struct{}{
	"reelitemrenderer":      {},
	"shortslockupviewmodel": {},
	"reelwatchendpoint":     {},
	"reel":                  {},
	"short":                 {},
	"shorts":                {},
}

// YouTubeDomains are the registrable domains whose URLs are trusted for path hints.
var YouTubeDomains = map[string]struct{}{
	"youtube.com": {},
	"youtu.be":    {},
}

// Source identifiers used in logs and partial-failure reports.
const (
	SourceSearch    = "search"
	SourceTrending  = "trending"
	SourceRelated   = "related"
	SourceChannel   = "channel"
	SourceRSSPrefix = "rss:"
)

// Limits.
const (
	DefaultListLimit    = 50
	MaxListLimit        = 500
	LibrarySearchWindow = 500
)

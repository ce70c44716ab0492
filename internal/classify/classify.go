// Package classify decides whether a content item is a short-form video.
package classify

import (
	"net/url"
	"strings"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/models"

	"golang.org/x/net/publicsuffix"
)

// Rule names the classification rule which decided an item.
type Rule string

// Rules, strongest first.
const (
	RuleExplicit Rule = "explicit"
	RulePath     Rule = "path"
	RuleDuration Rule = "duration"
	RulePortrait Rule = "portrait"
	RuleKeyword  Rule = "keyword"
	RuleDefault  Rule = "default"
)

// Decision is a classification result plus the rule that produced it.
type Decision struct {
	Short bool
	Rule  Rule
}

// IsShort reports whether the item is a short.
func IsShort(item *models.ContentItem) bool {
	return Decide(item).Short
}

// Decide classifies an item. The first rule to fire wins.
//
// Explicit zero durations count as known. A portrait thumbnail only counts
// when the duration is unknown or within the short limit.
func Decide(item *models.ContentItem) Decision {
	if item == nil {
		return Decision{Rule: RuleDefault}
	}

	if explicitShort(item) {
		return Decision{Short: true, Rule: RuleExplicit}
	}

	if hasShortsPath(item.SourceURL) || hasShortsPath(item.EndpointHint) {
		return Decision{Short: true, Rule: RulePath}
	}

	withinLimit := item.Duration.Known && item.Duration.Seconds >= 0 && item.Duration.Seconds <= consts.ShortMaxSeconds
	if withinLimit {
		return Decision{Short: true, Rule: RuleDuration}
	}

	if t, ok := item.PrimaryThumbnail(); ok && t.Portrait() && !item.Duration.Known {
		return Decision{Short: true, Rule: RulePortrait}
	}

	if titleHintsShort(item.Title) {
		return Decision{Short: true, Rule: RuleKeyword}
	}

	return Decision{Short: false, Rule: RuleDefault}
}

// explicitShort checks the source's own discriminators.
//
// An explicit false flag is not a veto.
func explicitShort(item *models.ContentItem) bool {
	if item.ShortFlag != nil && *item.ShortFlag {
		return true
	}
	if item.Kind == "" {
		return false
	}
	_, ok := consts.ShortKinds[strings.ToLower(item.Kind)]
	return ok
}

// hasShortsPath reports whether raw contains a /shorts/ path segment.
//
// Relative paths are trusted. Absolute URLs must point at a YouTube domain.
func hasShortsPath(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Host != "" && !isYouTubeHost(u.Hostname()) {
		return false
	}
	return strings.HasPrefix(u.Path, "/shorts/") || strings.Contains(u.Path, "/shorts/")
}

// isYouTubeHost checks the host's registrable domain.
func isYouTubeHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if _, ok := consts.YouTubeDomains[host]; ok {
		return true
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return false
	}
	_, ok := consts.YouTubeDomains[etld1]
	return ok
}

// titleHintsShort is the weakest signal and misfires on long videos titled "viral" or "meme".
func titleHintsShort(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range consts.ShortTitleKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

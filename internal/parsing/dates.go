package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var relativeTimeRx = regexp.MustCompile(`^(\d+)\s+(second|minute|hour|day|week|month|year)s?\s+ago$`)

// Prefixes YouTube puts before relative publish times.
var publishedPrefixes = []string{
	"streamed live ",
	"streamed ",
	"premiered ",
	"premieres ",
}

// ParsePublished converts publish text into a timestamp.
//
// Relative phrases ("3 days ago", "Streamed 2 hours ago") are anchored at now.
// Absolute dates are parsed with dateparse. Returns false when nothing fits.
func ParsePublished(text string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range publishedPrefixes {
		s = strings.TrimPrefix(s, p)
	}

	if t, ok := parseRelative(s, now); ok {
		return t, true
	}

	t, err := dateparse.ParseAny(strings.TrimSpace(text))
	if err != nil {
		// Retry without the "Premiered" style prefix.
		if t, err = dateparse.ParseAny(s); err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// parseRelative parses "<n> <unit>(s) ago".
func parseRelative(s string, now time.Time) (time.Time, bool) {
	m := relativeTimeRx.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	var unit time.Duration
	switch m[2] {
	case "second":
		unit = time.Second
	case "minute":
		unit = time.Minute
	case "hour":
		unit = time.Hour
	case "day":
		unit = 24 * time.Hour
	case "week":
		unit = 7 * 24 * time.Hour
	case "month":
		unit = 30 * 24 * time.Hour
	case "year":
		unit = 365 * 24 * time.Hour
	}
	return now.Add(-time.Duration(n) * unit), true
}

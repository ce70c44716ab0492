package parsing

import (
	"strconv"
	"strings"
)

// ParseViewCount converts view text like "1,234 views" or "1.2M views" to a count.
func ParseViewCount(text string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "no view") {
		return 0, true
	}
	for _, suffix := range []string{" watching now", " watching", " views", " view"} {
		s = strings.TrimSuffix(s, suffix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'k':
		mult = 1e3
	case 'm':
		mult = 1e6
	case 'b':
		mult = 1e9
	}
	if mult != 1 {
		s = strings.TrimSpace(s[:len(s)-1])
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int64(f * mult), true
}

// Package parsing converts loosely-typed source values into model values.
package parsing

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"ytdeck/internal/models"
)

// maxDurationSeconds bounds accepted durations; larger values are treated as garbage.
const maxDurationSeconds = math.MaxInt32

var isoDurationRx = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// Keys checked, in order, on structured duration objects.
var (
	durationSecondsKeys = []string{"seconds", "lengthSeconds", "totalSeconds"}
	durationTextKeys    = []string{"simpleText", "text", "label"}
)

// ParseDuration converts any source duration representation into a Duration.
//
// Accepts numbers (seconds), numeric strings, colon strings (H:MM:SS, M:SS, SS),
// ISO-8601 durations (PT1M5S) and objects exposing a seconds or text field.
// Anything unparseable, negative or above maxDurationSeconds is Unknown, never zero.
func ParseDuration(v any) models.Duration {
	switch t := v.(type) {
	case nil:
		return models.UnknownDuration
	case models.Duration:
		return t
	case int:
		return fromSeconds(float64(t))
	case int32:
		return fromSeconds(float64(t))
	case int64:
		return fromSeconds(float64(t))
	case uint:
		return fromSeconds(float64(t))
	case uint32:
		return fromSeconds(float64(t))
	case uint64:
		return fromSeconds(float64(t))
	case float32:
		return fromSeconds(float64(t))
	case float64:
		return fromSeconds(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return models.UnknownDuration
		}
		return fromSeconds(f)
	case string:
		return parseDurationString(t)
	case map[string]any:
		for _, k := range durationSecondsKeys {
			if val, ok := t[k]; ok {
				if d := ParseDuration(val); d.Known {
					return d
				}
			}
		}
		for _, k := range durationTextKeys {
			if val, ok := t[k]; ok {
				if d := ParseDuration(val); d.Known {
					return d
				}
			}
		}
	}
	return models.UnknownDuration
}

// fromSeconds rounds f to whole seconds.
func fromSeconds(f float64) models.Duration {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return models.UnknownDuration
	}
	f = math.Round(f)
	if f > maxDurationSeconds {
		return models.UnknownDuration
	}
	return models.KnownDuration(int(f))
}

// parseDurationString handles numeric, colon and ISO-8601 strings.
func parseDurationString(s string) models.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.UnknownDuration
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSeconds(f)
	}

	if strings.HasPrefix(s, "P") {
		return parseISODuration(s)
	}

	if strings.Contains(s, ":") {
		return parseColonDuration(s)
	}
	return models.UnknownDuration
}

// parseColonDuration parses "H:MM:SS", "M:SS" or "SS".
//
// Minutes and seconds below a higher part must be under 60.
func parseColonDuration(s string) models.Duration {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return models.UnknownDuration
	}

	total := 0
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return models.UnknownDuration
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > maxDurationSeconds {
			return models.UnknownDuration
		}
		if i > 0 && n >= 60 {
			return models.UnknownDuration
		}
		total = total*60 + n
		if total > maxDurationSeconds {
			return models.UnknownDuration
		}
	}
	return models.KnownDuration(total)
}

// parseISODuration parses the ISO-8601 subset used by the Data API (e.g. "PT1H2M3S", "P1DT2H").
func parseISODuration(s string) models.Duration {
	if s == "P" || s == "PT" || strings.HasSuffix(s, "T") {
		return models.UnknownDuration
	}
	m := isoDurationRx.FindStringSubmatch(s)
	if m == nil {
		return models.UnknownDuration
	}

	var total float64
	mult := []float64{86400, 3600, 60, 1}
	for i, group := range m[1:] {
		if group == "" {
			continue
		}
		f, err := strconv.ParseFloat(group, 64)
		if err != nil {
			return models.UnknownDuration
		}
		total += f * mult[i]
	}
	return fromSeconds(total)
}

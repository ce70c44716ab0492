package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Duration is a length in seconds which may be unknown.
//
// Unknown is distinct from zero: a zero duration is a known (if degenerate) value.
type Duration struct {
	Seconds int
	Known   bool
}

// UnknownDuration is the zero value, representing absent duration information.
var UnknownDuration = Duration{}

// KnownDuration returns a known duration of s seconds.
func KnownDuration(s int) Duration {
	return Duration{Seconds: s, Known: true}
}

// String formats the duration as H:MM:SS or M:SS, empty when unknown.
func (d Duration) String() string {
	if !d.Known {
		return ""
	}
	h := d.Seconds / 3600
	m := (d.Seconds % 3600) / 60
	s := d.Seconds % 60
	if h > 0 {
		return strconv.Itoa(h) + ":" + pad2(m) + ":" + pad2(s)
	}
	return strconv.Itoa(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// MarshalJSON encodes unknown durations as null.
func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.Known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(d.Seconds)), nil
}

// UnmarshalJSON accepts null or a non-negative integer.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = UnknownDuration
		return nil
	}
	var s int
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s < 0 {
		*d = UnknownDuration
		return nil
	}
	*d = KnownDuration(s)
	return nil
}

// NullInt64 returns the value for nullable database columns.
func (d Duration) NullInt64() (int64, bool) {
	return int64(d.Seconds), d.Known
}

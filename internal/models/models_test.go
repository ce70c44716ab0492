package models

import (
	"encoding/json"
	"testing"
)

func TestDurationJSONDistinguishesUnknownFromZero(t *testing.T) {
	t.Parallel()

	unknown, err := json.Marshal(UnknownDuration)
	if err != nil {
		t.Fatalf("Marshal(unknown) unexpected error: %v", err)
	}
	if string(unknown) != "null" {
		t.Fatalf("unknown duration encoded as %s, want null", unknown)
	}

	zero, err := json.Marshal(KnownDuration(0))
	if err != nil {
		t.Fatalf("Marshal(zero) unexpected error: %v", err)
	}
	if string(zero) != "0" {
		t.Fatalf("zero duration encoded as %s, want 0", zero)
	}

	var d Duration
	if err := json.Unmarshal([]byte("null"), &d); err != nil || d.Known {
		t.Fatalf("Unmarshal(null) = %+v, %v; want unknown", d, err)
	}
	if err := json.Unmarshal([]byte("42"), &d); err != nil || !d.Known || d.Seconds != 42 {
		t.Fatalf("Unmarshal(42) = %+v, %v; want known 42", d, err)
	}
}

func TestDurationString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Duration
		want string
	}{
		{UnknownDuration, ""},
		{KnownDuration(0), "0:00"},
		{KnownDuration(59), "0:59"},
		{KnownDuration(61), "1:01"},
		{KnownDuration(3725), "1:02:05"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	item := ContentItem{ID: "  abc  ", Title: "   "}
	if !item.Normalize() {
		t.Fatal("Normalize() = false for item with ID")
	}
	if item.ID != "abc" || item.Title != "Untitled" || item.Thumbnails == nil {
		t.Fatalf("Normalize() produced %+v", item)
	}

	empty := ContentItem{ID: " ", Title: "x"}
	if empty.Normalize() {
		t.Fatal("Normalize() = true for item without ID")
	}
}

func TestThumbnailPortrait(t *testing.T) {
	t.Parallel()

	if !(Thumbnail{Width: 405, Height: 720}).Portrait() {
		t.Error("405x720 should be portrait")
	}
	if (Thumbnail{Width: 480, Height: 360}).Portrait() {
		t.Error("480x360 should not be portrait")
	}
	if (Thumbnail{}).Portrait() {
		t.Error("dimensionless thumbnail should not be portrait")
	}
}

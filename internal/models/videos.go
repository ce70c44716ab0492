package models

import (
	"strings"
	"time"
	"ytdeck/internal/domain/consts"
)

// ContentItem is a video-like item produced by an external source.
//
// ID is the sole identity key for dedupe and block filtering.
type ContentItem struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Duration      Duration    `json:"durationSeconds"`
	Live          bool        `json:"live"`
	Channel       ChannelRef  `json:"channel"`
	PublishedAt   time.Time   `json:"publishedAt,omitzero"`
	PublishedText string      `json:"publishedText,omitempty"`
	ViewCount     int64       `json:"viewCount,omitempty"`
	ViewCountText string      `json:"viewCountText,omitempty"`
	Thumbnails    []Thumbnail `json:"thumbnails"`
	SourceURL     string      `json:"url,omitempty"`
	EndpointHint  string      `json:"-"`
	Kind          string      `json:"-"` // Source node tag, e.g. "videoRenderer".
	ShortFlag     *bool       `json:"-"` // Explicit source discriminator, nil when absent.
	IsShort       bool        `json:"isShort"`
}

// Thumbnail is one image rendition of an item.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Portrait reports whether the thumbnail is taller than it is wide.
//
// Thumbnails without dimensions are never portrait.
func (t Thumbnail) Portrait() bool {
	return t.Width > 0 && t.Height > t.Width
}

// PrimaryThumbnail returns the first thumbnail, if any.
func (c *ContentItem) PrimaryThumbnail() (Thumbnail, bool) {
	if len(c.Thumbnails) == 0 {
		return Thumbnail{}, false
	}
	return c.Thumbnails[0], true
}

// ThumbnailURL returns the primary thumbnail URL or an empty string.
func (c *ContentItem) ThumbnailURL() string {
	if t, ok := c.PrimaryThumbnail(); ok {
		return t.URL
	}
	return ""
}

// HasTimestamp reports whether PublishedAt is known.
func (c *ContentItem) HasTimestamp() bool {
	return !c.PublishedAt.IsZero()
}

// Normalize trims identity fields and fills placeholders.
//
// Returns false if the item has no usable ID.
func (c *ContentItem) Normalize() bool {
	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return false
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		c.Title = consts.UntitledPlaceholder
	}
	c.Channel.ID = strings.TrimSpace(c.Channel.ID)
	if c.Thumbnails == nil {
		c.Thumbnails = []Thumbnail{}
	}
	return true
}

// WatchURL returns the canonical page for the item.
func (c *ContentItem) WatchURL() string {
	if c.SourceURL != "" {
		return c.SourceURL
	}
	if c.IsShort {
		return "https://www.youtube.com/shorts/" + c.ID
	}
	return "https://www.youtube.com/watch?v=" + c.ID
}

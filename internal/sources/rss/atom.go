package rss

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"ytdeck/internal/models"

	"github.com/araddon/dateparse"
)

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Author  atomAuthor  `xml:"author"`
	Entries []atomEntry `xml:"entry"`
}

type atomAuthor struct {
	Name string `xml:"name"`
	URI  string `xml:"uri"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

type atomEntry struct {
	ID          string        `xml:"id"`
	VideoID     string        `xml:"http://www.youtube.com/xml/schemas/2015 videoId"`
	ChannelID   string        `xml:"http://www.youtube.com/xml/schemas/2015 channelId"`
	Title       string        `xml:"title"`
	Links       []atomLink    `xml:"link"`
	Author      atomAuthor    `xml:"author"`
	Published   string        `xml:"published"`
	Updated     string        `xml:"updated"`
	Description string        `xml:"group>description"`
	Thumbnail   atomThumbnail `xml:"group>thumbnail"`
	Community   atomCommunity `xml:"group>community"`
}

type atomThumbnail struct {
	URL    string `xml:"url,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

type atomCommunity struct {
	Views atomViews `xml:"statistics"`
}

type atomViews struct {
	Views string `xml:"views,attr"`
}

// parseAtomFeed parses raw XML from the feed.
func parseAtomFeed(data []byte) (*atomFeed, error) {
	var f atomFeed
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}
	return &f, nil
}

// feedToItems converts feed entries to content items. Feeds carry no duration.
func feedToItems(f *atomFeed, channelID string) []models.ContentItem {
	items := make([]models.ContentItem, 0, len(f.Entries))
	for _, e := range f.Entries {
		id := strings.TrimSpace(e.VideoID)
		if id == "" {
			id = strings.TrimPrefix(strings.TrimSpace(e.ID), "yt:video:")
		}

		chID := e.ChannelID
		if chID == "" {
			chID = channelID
		}
		chName := e.Author.Name
		if chName == "" {
			chName = f.Author.Name
		}

		item := models.ContentItem{
			ID:          id,
			Title:       strings.TrimSpace(e.Title),
			Description: strings.TrimSpace(e.Description),
			Duration:    models.UnknownDuration,
			Channel:     models.ChannelRef{ID: chID, Name: chName},
			SourceURL:   alternateLink(e.Links),
			Thumbnails:  []models.Thumbnail{},
		}

		published := e.Published
		if published == "" {
			published = e.Updated
		}
		if published != "" {
			if t, err := dateparse.ParseAny(published); err == nil {
				item.PublishedAt = t.UTC()
			}
		}

		if e.Thumbnail.URL != "" {
			item.Thumbnails = append(item.Thumbnails, models.Thumbnail{
				URL:    e.Thumbnail.URL,
				Width:  e.Thumbnail.Width,
				Height: e.Thumbnail.Height,
			})
		}

		if v, err := strconv.ParseInt(e.Community.Views.Views, 10, 64); err == nil {
			item.ViewCount = v
			item.ViewCountText = strconv.FormatInt(v, 10) + " views"
		}

		items = append(items, item)
	}
	return items
}

// alternateLink returns the entry's watch or shorts URL.
func alternateLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" || l.Rel == "" {
			return l.Href
		}
	}
	return ""
}

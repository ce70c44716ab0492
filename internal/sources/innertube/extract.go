package innertube

import (
	"strings"
	"time"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"
	"ytdeck/internal/parsing"
)

// Renderer kinds that carry a single video.
const (
	kindVideo        = "videoRenderer"
	kindCompactVideo = "compactVideoRenderer"
	kindGridVideo    = "gridVideoRenderer"
	kindReelItem     = "reelItemRenderer"
	kindShortsLockup = "shortsLockupViewModel"
	kindLockup       = "lockupViewModel"
	kindContinuation = "continuationItemRenderer"
)

// extraction is what a response yields.
type extraction struct {
	items        []models.ContentItem
	continuation string
}

// extractItems collects every recognised video renderer in resp, plus the first continuation token.
//
// Unrecognised shapes are skipped. Renderer nodes are not descended into.
func extractItems(resp node, now time.Time) extraction {
	var out extraction
	walk(resp, func(m map[string]any) bool {
		for _, kind := range []string{kindVideo, kindCompactVideo, kindGridVideo, kindReelItem, kindShortsLockup, kindLockup} {
			r := object(m[kind])
			if r == nil {
				continue
			}
			item, ok := parseRenderer(kind, r, now)
			if ok {
				out.items = append(out.items, item)
			} else {
				logger.Pl.D(3, "Skipping %s without a video ID", kind)
			}
			return false
		}
		if c := object(m[kindContinuation]); c != nil {
			if out.continuation == "" {
				out.continuation = continuationToken(c)
			}
			return false
		}
		if out.continuation == "" {
			if tok := str(get(m, "nextContinuationData", "continuation")); tok != "" {
				out.continuation = tok
			}
		}
		return true
	})
	return out
}

// parseRenderer dispatches on the renderer kind.
func parseRenderer(kind string, r map[string]any, now time.Time) (models.ContentItem, bool) {
	var item models.ContentItem
	switch kind {
	case kindReelItem:
		item = parseReelItem(r)
	case kindShortsLockup:
		item = parseShortsLockup(r)
	case kindLockup:
		item = parseLockup(r, now)
	default:
		item = parseVideoRenderer(r, now)
	}
	item.Kind = kind
	item.ID = strings.TrimSpace(item.ID)
	return item, item.ID != ""
}

// parseVideoRenderer handles videoRenderer, compactVideoRenderer and gridVideoRenderer.
func parseVideoRenderer(r map[string]any, now time.Time) models.ContentItem {
	item := models.ContentItem{
		ID:            str(r["videoId"]),
		Title:         extractTitle(r),
		Duration:      extractDuration(r),
		Channel:       extractChannel(r),
		Thumbnails:    extractThumbnails(get(r, "thumbnail", "thumbnails")),
		Description:   firstText(r["descriptionSnippet"], get(r, "detailedMetadataSnippets", 0, "snippetText")),
		PublishedText: firstText(r["publishedTimeText"]),
		ViewCountText: firstText(r["viewCountText"], r["shortViewCountText"]),
		EndpointHint:  str(get(r, "navigationEndpoint", "commandMetadata", "webCommandMetadata", "url")),
		Live:          isLive(r),
	}
	if get(r, "navigationEndpoint", "reelWatchEndpoint") != nil {
		short := true
		item.ShortFlag = &short
	}
	if overlayStyle(r) == "SHORTS" {
		short := true
		item.ShortFlag = &short
	}
	fillPublished(&item, now)
	fillViews(&item)
	if item.Live {
		// Live streams report elapsed or zero time, not a length.
		item.Duration = models.UnknownDuration
	}
	return item
}

// parseReelItem handles reelItemRenderer, the classic shorts shelf item.
func parseReelItem(r map[string]any) models.ContentItem {
	item := models.ContentItem{
		ID:            firstNonEmpty(str(r["videoId"]), str(get(r, "navigationEndpoint", "reelWatchEndpoint", "videoId"))),
		Title:         firstText(r["headline"], get(r, "accessibility", "accessibilityData", "label")),
		Duration:      models.UnknownDuration,
		Thumbnails:    extractThumbnails(get(r, "thumbnail", "thumbnails")),
		ViewCountText: firstText(r["viewCountText"]),
		EndpointHint:  str(get(r, "navigationEndpoint", "commandMetadata", "webCommandMetadata", "url")),
	}
	fillViews(&item)
	return item
}

// parseShortsLockup handles shortsLockupViewModel.
func parseShortsLockup(r map[string]any) models.ContentItem {
	id := str(get(r, "onTap", "innertubeCommand", "reelWatchEndpoint", "videoId"))
	if id == "" {
		id = strings.TrimPrefix(str(r["entityId"]), "shorts-shelf-item-")
	}
	item := models.ContentItem{
		ID:            id,
		Title:         firstText(get(r, "overlayMetadata", "primaryText"), r["accessibilityText"]),
		Duration:      models.UnknownDuration,
		Thumbnails:    extractThumbnails(get(r, "thumbnail", "sources")),
		ViewCountText: firstText(get(r, "overlayMetadata", "secondaryText")),
		EndpointHint:  str(get(r, "onTap", "innertubeCommand", "commandMetadata", "webCommandMetadata", "url")),
	}
	fillViews(&item)
	return item
}

// parseLockup handles lockupViewModel, skipping non-video lockups such as playlists.
func parseLockup(r map[string]any, now time.Time) models.ContentItem {
	if ct := str(r["contentType"]); ct != "" && ct != "LOCKUP_CONTENT_TYPE_VIDEO" {
		return models.ContentItem{}
	}
	meta := get(r, "metadata", "lockupMetadataViewModel")
	rows := list(get(meta, "metadata", "contentMetadataViewModel", "metadataRows"))

	item := models.ContentItem{
		ID:         str(r["contentId"]),
		Title:      firstText(get(meta, "title")),
		Duration:   models.UnknownDuration,
		Thumbnails: extractThumbnails(get(r, "contentImage", "thumbnailViewModel", "image", "sources")),
	}
	if len(rows) > 0 {
		item.Channel.Name = firstText(get(rows[0], "metadataParts", 0, "text"))
	}
	if len(rows) > 1 {
		item.ViewCountText = firstText(get(rows[1], "metadataParts", 0, "text"))
		item.PublishedText = firstText(get(rows[1], "metadataParts", 1, "text"))
	}
	item.Channel.ID = str(get(meta, "image", "decoratedAvatarViewModel", "rendererContext", "commandContext", "onTap", "innertubeCommand", "browseEndpoint", "browseId"))
	item.EndpointHint = str(get(r, "rendererContext", "commandContext", "onTap", "innertubeCommand", "commandMetadata", "webCommandMetadata", "url"))

	// Duration sits in a thumbnail badge somewhere under contentImage.
	walk(r["contentImage"], func(m map[string]any) bool {
		if badge := object(m["thumbnailBadgeViewModel"]); badge != nil {
			t := str(badge["text"])
			if d := parsing.ParseDuration(t); d.Known && !item.Duration.Known {
				item.Duration = d
			}
			if strings.EqualFold(t, "LIVE") {
				item.Live = true
			}
			return false
		}
		return true
	})

	fillPublished(&item, now)
	fillViews(&item)
	return item
}

// extractTitle tries title runs, title simpleText, headline, then the accessibility label.
func extractTitle(r map[string]any) string {
	return firstText(
		r["title"],
		r["headline"],
		get(r, "title", "accessibility", "accessibilityData", "label"),
	)
}

// extractDuration tries lengthText, the time-status overlay, then lengthSeconds.
func extractDuration(r map[string]any) models.Duration {
	if d := parsing.ParseDuration(r["lengthText"]); d.Known {
		return d
	}
	for _, ov := range list(r["thumbnailOverlays"]) {
		if ts := object(get(ov, "thumbnailOverlayTimeStatusRenderer")); ts != nil {
			if d := parsing.ParseDuration(text(ts["text"])); d.Known {
				return d
			}
		}
	}
	return parsing.ParseDuration(r["lengthSeconds"])
}

// extractChannel tries ownerText, longBylineText, then shortBylineText.
func extractChannel(r map[string]any) models.ChannelRef {
	var ch models.ChannelRef
	for _, key := range []string{"ownerText", "longBylineText", "shortBylineText"} {
		run := get(r, key, "runs", 0)
		if run == nil {
			continue
		}
		ch.Name = str(get(run, "text"))
		ch.ID = str(get(run, "navigationEndpoint", "browseEndpoint", "browseId"))
		if ch.Name != "" || ch.ID != "" {
			break
		}
	}
	if ch.ID == "" {
		ch.ID = str(get(r, "channelThumbnailSupportedRenderers", "channelThumbnailWithLinkRenderer", "navigationEndpoint", "browseEndpoint", "browseId"))
	}
	for _, b := range list(r["ownerBadges"]) {
		if strings.Contains(str(get(b, "metadataBadgeRenderer", "style")), "VERIFIED") {
			ch.Verified = true
		}
	}
	return ch
}

// extractThumbnails reads [{url,width,height}] and puts the largest first.
func extractThumbnails(v node) []models.Thumbnail {
	arr := list(v)
	out := make([]models.Thumbnail, 0, len(arr))
	best := -1
	for _, t := range arr {
		u := str(get(t, "url"))
		if u == "" {
			continue
		}
		th := models.Thumbnail{
			URL:    u,
			Width:  toInt(get(t, "width")),
			Height: toInt(get(t, "height")),
		}
		out = append(out, th)
		if best < 0 || th.Width*th.Height > out[best].Width*out[best].Height {
			best = len(out) - 1
		}
	}
	if best > 0 {
		out[0], out[best] = out[best], out[0]
	}
	return out
}

// isLive checks badges and overlays for a live marker.
func isLive(r map[string]any) bool {
	for _, b := range list(r["badges"]) {
		if str(get(b, "metadataBadgeRenderer", "style")) == "BADGE_STYLE_TYPE_LIVE_NOW" {
			return true
		}
	}
	return overlayStyle(r) == "LIVE"
}

// overlayStyle returns the time-status overlay style, e.g. "DEFAULT", "LIVE" or "SHORTS".
func overlayStyle(r map[string]any) string {
	for _, ov := range list(r["thumbnailOverlays"]) {
		if s := str(get(ov, "thumbnailOverlayTimeStatusRenderer", "style")); s != "" {
			return s
		}
	}
	return ""
}

// continuationToken reads continuationItemRenderer's token.
func continuationToken(c map[string]any) string {
	if tok := str(get(c, "continuationEndpoint", "continuationCommand", "token")); tok != "" {
		return tok
	}
	return str(get(c, "button", "buttonRenderer", "command", "continuationCommand", "token"))
}

// fillPublished anchors relative publish text at now.
func fillPublished(item *models.ContentItem, now time.Time) {
	if item.PublishedText == "" {
		return
	}
	if t, ok := parsing.ParsePublished(item.PublishedText, now); ok {
		item.PublishedAt = t
	}
}

// fillViews parses the view count text.
func fillViews(item *models.ContentItem) {
	if n, ok := parsing.ParseViewCount(item.ViewCountText); ok {
		item.ViewCount = n
	}
}

func toInt(v node) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// videoFromPlayer builds an item from a /player response.
func videoFromPlayer(resp node) (models.ContentItem, bool) {
	vd := object(get(resp, "videoDetails"))
	if vd == nil {
		return models.ContentItem{}, false
	}
	mf := get(resp, "microformat", "playerMicroformatRenderer")

	item := models.ContentItem{
		ID:          str(vd["videoId"]),
		Title:       str(vd["title"]),
		Description: str(vd["shortDescription"]),
		Duration:    parsing.ParseDuration(vd["lengthSeconds"]),
		Channel: models.ChannelRef{
			ID:   str(vd["channelId"]),
			Name: str(vd["author"]),
		},
		Thumbnails: extractThumbnails(get(vd, "thumbnail", "thumbnails")),
		Kind:       "videoDetails",
	}
	if live, _ := vd["isLive"].(bool); live {
		item.Live = true
		item.Duration = models.UnknownDuration
	}
	if n, ok := parsing.ParseViewCount(str(vd["viewCount"])); ok {
		item.ViewCount = n
		item.ViewCountText = str(vd["viewCount"]) + " views"
	}
	for _, key := range []string{"publishDate", "uploadDate"} {
		if s := str(get(mf, key)); s != "" {
			if t, ok := parsing.ParsePublished(s, time.Now()); ok {
				item.PublishedAt = t
				item.PublishedText = s
				break
			}
		}
	}
	if item.ID == "" {
		return models.ContentItem{}, false
	}
	return item, true
}

package consts

// Tables
const (
	DBSubscriptions  = "subscriptions"
	DBPlaylists      = "playlists"
	DBPlaylistItems  = "playlist_items"
	DBWatchHistory   = "watch_history"
	DBSettings       = "settings"
	DBHiddenChannels = "hidden_channels"
	DBHiddenKeywords = "hidden_keywords"
)

// Subscriptions
const (
	QSubChannelID    = "channel_id"
	QSubName         = "name"
	QSubThumbnailURL = "thumbnail_url"
	QSubSubscribedAt = "subscribed_at"
)

// Playlists
const (
	QPlaylistID        = "id"
	QPlaylistName      = "name"
	QPlaylistIsDefault = "is_default"
	QPlaylistCreatedAt = "created_at"
	QPlaylistUpdatedAt = "updated_at"
)

// Playlist items
const (
	QItemPlaylistID   = "playlist_id"
	QItemVideoID      = "video_id"
	QItemTitle        = "title"
	QItemChannelID    = "channel_id"
	QItemChannelName  = "channel_name"
	QItemThumbnailURL = "thumbnail_url"
	QItemDuration     = "duration_seconds"
	QItemSortOrder    = "sort_order"
	QItemAddedAt      = "added_at"
)

// Watch history
const (
	QHistVideoID      = "video_id"
	QHistTitle        = "title"
	QHistChannelID    = "channel_id"
	QHistChannelName  = "channel_name"
	QHistThumbnailURL = "thumbnail_url"
	QHistDuration     = "duration_seconds"
	QHistProgress     = "progress_seconds"
	QHistWatchedAt    = "watched_at"
)

// Settings
const (
	QSettingKey   = "key"
	QSettingValue = "value"
)

// Hidden (blocked) channels and keywords
const (
	QBlockedChannelID = "channel_id"
	QBlockedName      = "name"
	QBlockedKeyword   = "keyword"
	QBlockedAt        = "blocked_at"
)

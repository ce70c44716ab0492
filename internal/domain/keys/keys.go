// Package keys holds the Viper keys used throughout ytdeck.
package keys

// Program
const (
	DebugLevel = "debug"
	ConfigFile = "config-file"
	DBPath     = "db-path"
)

// Server
const (
	Host      = "host"
	Port      = "port"
	ServerURL = "server"
)

// Feed aggregation
const (
	SourceTimeout   = "feed.source-timeout"
	FeedConcurrency = "feed.concurrency"
)

// Retrieval
const (
	InnertubeRPS       = "innertube.rps"
	Region             = "region"
	Language           = "language"
	CookiesFromBrowser = "cookies-from-browser"
	YouTubeAPIKey      = "youtube-api-key"
	MetadataCacheTTL   = "metadata-cache-ttl"
)

// Settings table keys (runtime-editable via the API).
const (
	SettingRegion   = "region"
	SettingLanguage = "language"
)

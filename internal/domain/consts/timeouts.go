package consts

import "time"

// Network timeouts
const (
	HTTPClientTimeout     = 15 * time.Second
	DefaultSourceTimeout  = 10 * time.Second
	ServerShutdownTimeout = 10 * time.Second
	ServerRequestTimeout  = 60 * time.Second
	DatabaseBusyTimeoutMS = 5000
)

// Concurrency and rate defaults
const (
	DefaultFeedConcurrency = 8
	DefaultInnertubeRPS    = 2.5
)

// Cache
const (
	DefaultMetadataCacheTTL = 6 * time.Hour
)

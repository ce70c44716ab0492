package consts

// Program identity.
const (
	ProgramName    = "ytdeck"
	ProgramDirName = ".ytdeck"
	EnvPrefix      = "YTDECK"
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 8828
)

// Request headers sent to YouTube.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultLanguage  = "en"
	DefaultRegion    = "US"
)

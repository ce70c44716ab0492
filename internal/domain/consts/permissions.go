package consts

// Recommended permissions for files and directories ytdeck creates.
const (
	PermsHomeProgDir = 0o755
	PermsGenericDir  = 0o755

	// Private
	PermsCacheFile = 0o600
)

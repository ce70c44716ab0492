package cfg

import (
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags registers root-level flags and binds them to viper.
func initProgramFlags(rootCmd *cobra.Command) error {
	pf := rootCmd.PersistentFlags()

	pf.Int(keys.DebugLevel, 0, "Debug level (0-5)")
	pf.String(keys.Host, consts.DefaultHost, "Address to listen on")
	pf.Int(keys.Port, consts.DefaultPort, "Port to listen on")
	pf.String(keys.ServerURL, "", "Base URL of a running ytdeck server (save command)")

	pf.Duration(keys.SourceTimeout, consts.DefaultSourceTimeout, "Per-source fetch timeout")
	pf.Int(keys.FeedConcurrency, consts.DefaultFeedConcurrency, "Maximum sources fetched at once")
	pf.Float64(keys.InnertubeRPS, consts.DefaultInnertubeRPS, "Innertube requests per second (0 disables limiting)")

	pf.String(keys.Region, consts.DefaultRegion, "Content region code, e.g. US")
	pf.String(keys.Language, consts.DefaultLanguage, "Interface language, e.g. en")
	pf.Bool(keys.CookiesFromBrowser, false, "Send cookies from installed browsers with YouTube requests")
	pf.String(keys.YouTubeAPIKey, "", "YouTube Data API key for trending (optional)")

	for _, k := range []string{
		keys.DebugLevel,
		keys.Host,
		keys.Port,
		keys.ServerURL,
		keys.SourceTimeout,
		keys.FeedConcurrency,
		keys.InnertubeRPS,
		keys.Region,
		keys.Language,
		keys.CookiesFromBrowser,
		keys.YouTubeAPIKey,
	} {
		if err := viper.BindPFlag(k, pf.Lookup(k)); err != nil {
			return err
		}
	}
	return nil
}

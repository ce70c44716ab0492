package cfg

import (
	"ytdeck/internal/domain/keys"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/net"
	"ytdeck/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initServeCmd starts the HTTP API.
func initServeCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the JSON API used by ytdeck front ends until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := BuildServices(ctx, rt)

			if rt.Cache.Enabled() {
				if n, err := rt.Cache.Purge(); err != nil {
					logger.Pl.W("Could not purge metadata cache: %v", err)
				} else if n > 0 {
					logger.Pl.D(1, "Purged %d expired metadata entries", n)
				}
			}

			host := viper.GetString(keys.Host)
			if !net.IsPrivateNetwork(host) {
				logger.Pl.W("Listening on non-private address %q. The API has no authentication.", host)
			}

			h := server.New(rt.Store, svc.Content, svc.Blocks, svc.Library).NewRouter()
			return server.StartServer(ctx, host, viper.GetInt(keys.Port), h)
		},
	}
}

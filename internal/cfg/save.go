package cfg

import (
	"fmt"
	"ytdeck/internal/domain/keys"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/membership"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initSaveCmd toggles a video in the default playlist of a running server.
func initSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <video-id>",
		Short: "Add or remove a video from the default playlist",
		Long:  "Toggle membership of a video in the default playlist through the API at --server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := membership.NewHTTPClient(viper.GetString(keys.ServerURL))

			item, err := client.Video(ctx, args[0])
			if err != nil {
				return fmt.Errorf("could not look up video %q: %w", args[0], err)
			}

			c := membership.New(client)
			c.EnsureLoaded(ctx)
			if c.State() != membership.Loaded {
				return fmt.Errorf("could not load the default playlist from %s", viper.GetString(keys.ServerURL))
			}

			added, err := c.Toggle(ctx, item)
			if err != nil {
				return err
			}
			if added {
				logger.Pl.S("Saved %q", item.Title)
			} else {
				logger.Pl.S("Removed %q", item.Title)
			}
			return nil
		},
	}
}

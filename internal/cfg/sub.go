package cfg

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/models"
	"ytdeck/internal/sources/rss"

	"github.com/spf13/cobra"
)

// initSubCmds is the entrypoint for subscription commands.
func initSubCmds(rt *Runtime) *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "sub",
		Short: "Subscription commands",
		Long:  "Follow channels whose uploads make up the subscription feed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	ss := rt.Store.SubscriptionStore()

	subCmd.AddCommand(
		&cobra.Command{
			Use:   "add <channel-id|url> [name]",
			Short: "Subscribe to a channel",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, ok := rss.ChannelIDFromURL(args[0])
				if !ok {
					return fmt.Errorf("not a channel ID or /channel/ URL: %q", args[0])
				}
				name := id
				if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
					name = args[1]
				}
				sub := models.Subscription{ChannelID: id, Name: name, SubscribedAt: time.Now().UTC()}
				if err := ss.AddSubscription(cmd.Context(), sub); err != nil {
					return err
				}
				logger.Pl.S("Subscribed to %q", name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <channel-id|url>",
			Short: "Unsubscribe from a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, ok := rss.ChannelIDFromURL(args[0])
				if !ok {
					return fmt.Errorf("not a channel ID or /channel/ URL: %q", args[0])
				}
				if err := ss.RemoveSubscription(cmd.Context(), id); err != nil {
					return err
				}
				logger.Pl.S("Unsubscribed from %q", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List subscriptions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				subs, err := ss.ListSubscriptions(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range subs {
					logger.Pl.P("%s  %s", s.ChannelID, s.Name)
				}
				return nil
			},
		},
	)
	return subCmd
}

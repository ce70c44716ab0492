package cfg

import (
	"errors"
	"strings"
	"ytdeck/internal/blocking"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/sources/rss"

	"github.com/spf13/cobra"
)

// initBlockCmds is the entrypoint for block list commands.
func initBlockCmds(rt *Runtime) *cobra.Command {
	blockCmd := &cobra.Command{
		Use:   "block",
		Short: "Block list commands",
		Long:  "Hide channels or title keywords from every listing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("please specify a subcommand. Use --help to see available subcommands")
		},
	}

	chanCmd := &cobra.Command{
		Use:   "channel",
		Short: "Blocked channels",
		RunE:  blockCmd.RunE,
	}
	kwCmd := &cobra.Command{
		Use:   "keyword",
		Short: "Blocked keywords",
		RunE:  blockCmd.RunE,
	}

	bl := func() *blocking.BlockList { return blocking.New(rt.Store.BlockStore()) }

	chanCmd.AddCommand(
		&cobra.Command{
			Use:   "add <channel-id|url> [name]",
			Short: "Block a channel",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := channelArg(args[0])
				if err != nil {
					return err
				}
				name := ""
				if len(args) > 1 {
					name = args[1]
				}
				if err := bl().BlockChannel(cmd.Context(), id, name); err != nil {
					return err
				}
				logger.Pl.S("Blocked channel %q", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <channel-id|url>",
			Short: "Unblock a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := channelArg(args[0])
				if err != nil {
					return err
				}
				if err := bl().UnblockChannel(cmd.Context(), id); err != nil {
					return err
				}
				logger.Pl.S("Unblocked channel %q", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List blocked channels",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := bl().Channels(cmd.Context())
				if err != nil {
					return err
				}
				for _, c := range list {
					logger.Pl.P("%s  %s", c.ChannelID, c.Name)
				}
				return nil
			},
		},
	)

	kwCmd.AddCommand(
		&cobra.Command{
			Use:   "add <keyword>",
			Short: "Block a title keyword",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kw := strings.Join(args, " ")
				if err := bl().BlockKeyword(cmd.Context(), kw); err != nil {
					return err
				}
				logger.Pl.S("Blocked keyword %q", kw)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <keyword>",
			Short: "Unblock a title keyword",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kw := strings.Join(args, " ")
				if err := bl().UnblockKeyword(cmd.Context(), kw); err != nil {
					return err
				}
				logger.Pl.S("Unblocked keyword %q", kw)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List blocked keywords",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := bl().Keywords(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range list {
					logger.Pl.P("%s", k.Keyword)
				}
				return nil
			},
		},
	)

	blockCmd.AddCommand(chanCmd, kwCmd)
	return blockCmd
}

// channelArg accepts a bare channel ID or a /channel/ URL.
func channelArg(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("channel ID is empty")
	}
	if !strings.Contains(s, "/") {
		return s, nil
	}
	id, ok := rss.ChannelIDFromURL(s)
	if !ok {
		return "", errors.New("could not find a channel ID in " + s)
	}
	return id, nil
}

package cfg

import (
	"errors"
	"strings"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/models"

	"github.com/spf13/cobra"
)

// initFeedCmd prints the subscription feed.
func initFeedCmd(rt *Runtime) *cobra.Command {
	var shorts bool

	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the subscription feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := BuildServices(cmd.Context(), rt)
			res, err := svc.Content.SubscriptionFeed(cmd.Context())
			if err != nil {
				return err
			}
			printResult(res, shorts)
			return nil
		},
	}
	feedCmd.Flags().BoolVar(&shorts, "shorts", false, "Include shorts in the listing")
	return feedCmd
}

// initSearchCmd prints remote search results, or library matches with --library.
func initSearchCmd(rt *Runtime) *cobra.Command {
	var (
		library, shorts bool
		continuation    string
	)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search YouTube or the local library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q := strings.TrimSpace(strings.Join(args, " "))
			if q == "" {
				return errors.New("search query is empty")
			}
			svc := BuildServices(ctx, rt)

			if library {
				found, err := svc.Library.Search(ctx, q)
				if err != nil {
					return err
				}
				for _, s := range found.Subscriptions {
					logger.Pl.P("channel  %s  %s", s.ChannelID, s.Name)
				}
				for _, it := range found.History {
					printItem(it)
				}
				return nil
			}

			res, err := svc.Content.Search(ctx, q, continuation)
			if err != nil {
				return err
			}
			printResult(res, shorts)
			return nil
		},
	}
	searchCmd.Flags().BoolVar(&library, "library", false, "Search watch history and subscriptions instead")
	searchCmd.Flags().BoolVar(&shorts, "shorts", false, "Include shorts in the listing")
	searchCmd.Flags().StringVar(&continuation, "continuation", "", "Continuation token from a previous page")
	return searchCmd
}

func printResult(res feed.Result, shorts bool) {
	for _, it := range res.Videos {
		printItem(it)
	}
	if shorts {
		for _, it := range res.Shorts {
			printItem(it)
		}
	}
	for _, id := range res.Failed {
		logger.Pl.W("Source %q failed", id)
	}
	if res.Continuation != "" {
		logger.Pl.P("continuation: %s", res.Continuation)
	}
}

func printItem(it models.ContentItem) {
	kind := "video"
	switch {
	case it.Live:
		kind = "live"
	case it.IsShort:
		kind = "short"
	}
	logger.Pl.P("%-5s  %s  %-8s  %s  (%s)", kind, it.ID, it.Duration, it.Title, it.Channel.Name)
}

// Package cfg provides configuration and command-line interface setup for ytdeck.
package cfg

import (
	"context"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/keys"
	"ytdeck/internal/domain/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           consts.ProgramName,
	Short:         "ytdeck is a self-hosted YouTube front end with subscriptions, block lists and playlists.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Pl.SetLevel(viper.GetInt(keys.DebugLevel))
	},
}

// InitCommands initializes all commands and their flags.
func InitCommands(rt *Runtime) error {
	if err := initProgramFlags(rootCmd); err != nil {
		return err
	}

	rootCmd.AddCommand(
		initServeCmd(rt),
		initFeedCmd(rt),
		initSearchCmd(rt),
		initBlockCmds(rt),
		initSubCmds(rt),
		initSaveCmd(),
	)
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

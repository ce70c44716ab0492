// Package main is the entrypoint of ytdeck.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"ytdeck/internal/cfg"
	"ytdeck/internal/domain/consts"
	"ytdeck/internal/domain/keys"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/domain/paths"
	"ytdeck/internal/utils/logging"

	"github.com/spf13/viper"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	startTime := time.Now()

	if err := paths.InitProgFilesDirs(os.Getenv(consts.EnvPrefix + "_HOME")); err != nil {
		fmt.Fprintf(os.Stderr, "%s exiting with error: %v\n", consts.ProgramName, err)
		return 1
	}

	if err := cfg.LoadEnvironment(paths.HomeProgDir); err != nil {
		fmt.Fprintf(os.Stderr, "%s exiting with error: %v\n", consts.ProgramName, err)
		return 1
	}

	pl, err := logging.SetupLogging(logging.LoggingConfig{
		LogFilePath: paths.LogFilePath,
		MaxSizeMB:   1,
		MaxBackups:  3,
		Console:     os.Stderr,
		Program:     consts.ProgramName,
		Level:       viper.GetInt(keys.DebugLevel),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s exiting with error: %v\n", consts.ProgramName, err)
		return 1
	}
	logger.Pl = pl

	app, err := initializeApplication()
	if err != nil {
		logger.Pl.E("Error initializing %s: %v", consts.ProgramName, err)
		return 1
	}
	defer app.cleanup(startTime)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer cancel()

	if err := cfg.InitCommands(app.runtime); err != nil {
		logger.Pl.E("Error: %v", err)
		return 1
	}
	if err := cfg.Execute(ctx); err != nil {
		logger.Pl.E("Error: %v", err)
		return 1
	}
	return 0
}

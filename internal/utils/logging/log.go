// Package logging sets up the program logger on top of zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
	"ytdeck/internal/domain/consts"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggingConfig holds the setup options for a ProgramLogger.
type LoggingConfig struct {
	LogFilePath string
	MaxSizeMB   int
	MaxBackups  int
	Console     io.Writer
	Program     string
	Level       int
}

// ProgramLogger is a printf-style logger writing to console and (optionally) a rotating file.
type ProgramLogger struct {
	zl      zerolog.Logger
	console io.Writer
	level   atomic.Int32
}

// NewProgramLogger returns a console-only logger.
func NewProgramLogger(console io.Writer) *ProgramLogger {
	if console == nil {
		console = os.Stderr
	}
	pl := &ProgramLogger{console: console}
	pl.zl = zerolog.New(consoleWriter(console)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return pl
}

// SetupLogging creates the log file directory and returns a logger writing to console and file.
func SetupLogging(cfg LoggingConfig) (*ProgramLogger, error) {
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 1
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}

	writers := []io.Writer{consoleWriter(cfg.Console)}
	if cfg.LogFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), consts.PermsGenericDir); err != nil {
			return nil, fmt.Errorf("failed to create log directory for %q: %w", cfg.LogFilePath, err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	}

	pl := &ProgramLogger{console: cfg.Console}
	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp()
	if cfg.Program != "" {
		ctx = ctx.Str("program", cfg.Program)
	}
	pl.zl = ctx.Logger()
	pl.SetLevel(cfg.Level)

	pl.zl.Info().Msgf("=========== %v ===========", time.Now().Format(time.RFC1123Z))
	return pl, nil
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

// I logs an info message.
func (pl *ProgramLogger) I(format string, args ...any) {
	pl.zl.Info().Msgf(format, args...)
}

// S logs a success message.
func (pl *ProgramLogger) S(format string, args ...any) {
	pl.zl.Info().Bool("ok", true).Msgf(format, args...)
}

// W logs a warning.
func (pl *ProgramLogger) W(format string, args ...any) {
	pl.zl.Warn().Msgf(format, args...)
}

// E logs an error.
func (pl *ProgramLogger) E(format string, args ...any) {
	pl.zl.Error().Msgf(format, args...)
}

// P prints a plain line to the console without log decoration.
func (pl *ProgramLogger) P(format string, args ...any) {
	fmt.Fprintf(pl.console, format+"\n", args...)
}

// Zerolog exposes the underlying logger for structured call sites.
func (pl *ProgramLogger) Zerolog() *zerolog.Logger {
	return &pl.zl
}

// Package logger holds the program logger.
package logger

import (
	"os"
	"ytdeck/internal/utils/logging"
)

// Pl holds the global *ProgramLogger variable.
//
// Writes to stderr until replaced by the result of logging.SetupLogging.
var Pl = logging.NewProgramLogger(os.Stderr)

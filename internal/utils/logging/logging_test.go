package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugLevelGating(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pl := NewProgramLogger(&buf)
	pl.SetLevel(1)

	pl.D(2, "hidden %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("level 2 debug message should be dropped at level 1, got %q", buf.String())
	}

	pl.D(1, "shown %d", 1)
	if !strings.Contains(buf.String(), "shown 1") {
		t.Fatalf("level 1 debug message should be written, got %q", buf.String())
	}
}

func TestSetLevelClampsNegative(t *testing.T) {
	t.Parallel()

	pl := NewProgramLogger(&bytes.Buffer{})
	pl.SetLevel(-4)
	if got := pl.Level(); got != 0 {
		t.Fatalf("Level() = %d, want 0", got)
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	t.Parallel()

	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "ytdeck.log")
	pl, err := SetupLogging(LoggingConfig{LogFilePath: path, Console: &console, Program: "ytdeck"})
	if err != nil {
		t.Fatalf("SetupLogging() unexpected error: %v", err)
	}

	pl.W("block list unavailable")
	if !strings.Contains(console.String(), "block list unavailable") {
		t.Fatalf("console output missing warning, got %q", console.String())
	}
}

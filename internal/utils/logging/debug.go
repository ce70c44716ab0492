package logging

// SetLevel sets the debug level; D messages above it are dropped.
func (pl *ProgramLogger) SetLevel(l int) {
	pl.level.Store(int32(max(l, 0)))
}

// Level returns the current debug level.
func (pl *ProgramLogger) Level() int {
	return int(pl.level.Load())
}

// D logs a debug message if l is within the configured debug level (0-5).
func (pl *ProgramLogger) D(l int, format string, args ...any) {
	if l > pl.Level() {
		return
	}
	pl.zl.Debug().Int("lvl", l).Msgf(format, args...)
}

package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const logFileName = "coffee-range.log"

// setupLogging opens the debug log file and returns a logger writing to
// it. With debug off it returns a disabled logger and a nil file. The
// terminal belongs to the game, so nothing ever logs to stdout.
func setupLogging(dir, level string, debug bool) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.Nop(), nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(f).Level(lvl).With().Timestamp().Logger(), f
}

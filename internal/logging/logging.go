// Package logging configures structured logging with zerolog.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Setup builds the CLI's logger: console output on w at the given level.
// Unknown levels fall back to info.
func Setup(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(parseLevel(level)).
		With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Package logging builds the zerolog loggers handed to the resolver,
// transaction and installer. Nothing in usl logs through a global; callers
// construct a logger here and pass it down explicitly.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config/flag value to a zerolog level. Unknown values
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger writing to w at the given level. Timestamps
// are dropped because the output is read by a person at a terminal.
func New(w io.Writer, level string, noColor bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      noColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(ParseLevel(level))
}

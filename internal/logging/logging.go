// Package logging builds component-scoped zerolog loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DebugLogPath is the file the TUI writes to when debug logging is enabled.
const DebugLogPath = "timetable-debug.log"

// New returns a logger writing to w at the given level. Every entry carries
// a timestamp and the component name.
func New(w io.Writer, level, format, component string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	if strings.ToLower(format) == FormatConsole {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr && w != os.Stdout}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("component", component).
		Logger(), nil
}

// Component derives a child logger for a sub-component.
func Component(parent zerolog.Logger, component string) zerolog.Logger {
	return parent.With().Str("component", component).Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a config level name to a zerolog level. Empty means warn.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// OpenDebugFile creates (truncating) the debug log file and returns a JSON
// logger on it along with a close function.
func OpenDebugFile(path, component string) (zerolog.Logger, func() error, error) {
	if path == "" {
		path = DebugLogPath
	}
	f, err := os.Create(path)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating debug log: %w", err)
	}
	logger, err := New(f, "debug", FormatJSON, component)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), nil, err
	}
	logger.Info().Str("log_file", path).Msg("debug logging started")
	return logger, f.Close, nil
}

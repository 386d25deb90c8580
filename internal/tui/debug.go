package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/timetable/internal/logging"
)

// OpenDebugLog opens the debug log file when enabled. The TUI owns the
// terminal, so this file is the only log sink while it runs; pass the
// logger to every component. The returned close function is always safe
// to call.
func OpenDebugLog(enabled bool) (zerolog.Logger, func() error, error) {
	if !enabled {
		return logging.Nop(), func() error { return nil }, nil
	}
	logger, closeLog, err := logging.OpenDebugFile(logging.DebugLogPath, "timetable")
	if err != nil {
		return logging.Nop(), func() error { return nil }, err
	}
	return logger, closeLog, nil
}

func logKeyPress(l zerolog.Logger, msg tea.KeyMsg, mode Mode) {
	l.Debug().Str("key", msg.String()).Stringer("mode", mode).Msg("key press")
}

func logMouse(l zerolog.Logger, msg tea.MouseMsg) {
	l.Debug().
		Int("x", msg.X).
		Int("y", msg.Y).
		Str("event", tea.MouseEvent(msg).String()).
		Msg("mouse")
}

func logModeChange(l zerolog.Logger, from, to Mode, reason string) {
	l.Debug().Stringer("from", from).Stringer("to", to).Str("reason", reason).Msg("mode change")
}

func logCursorMove(l zerolog.Logger, pos Position, reason string) {
	l.Debug().Int("day", pos.Day).Int("period", pos.Period).Str("reason", reason).Msg("cursor move")
}

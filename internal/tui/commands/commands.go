// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// CatalogLoader loads the full lecture catalog.
type CatalogLoader interface {
	FetchAll(ctx context.Context) ([]lecture.Lecture, error)
}

// CatalogLoadedMsg is sent when the catalog is available.
type CatalogLoadedMsg struct {
	Lectures []lecture.Lecture
}

// CatalogErrMsg is sent when loading the catalog fails. The load can be
// retried.
type CatalogErrMsg struct {
	Err error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// CopiedMsg is sent after text was written to the clipboard.
type CopiedMsg struct {
	Lines int
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// LoadCatalog fetches every catalog partition. The fetch has no timeout;
// the cache keeps running it even if the result is no longer wanted.
func LoadCatalog(loader CatalogLoader) tea.Cmd {
	return func() tea.Msg {
		lectures, err := loader.FetchAll(context.Background())
		if err != nil {
			return CatalogErrMsg{Err: fmt.Errorf("loading catalog: %w", err)}
		}
		return CatalogLoadedMsg{Lectures: lectures}
	}
}

// Status shows a temporary status message.
func Status(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// Copy writes text to the system clipboard.
func Copy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Lines: strings.Count(strings.TrimRight(text, "\n"), "\n") + 1}
	}
}

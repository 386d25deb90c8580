// Package view provides view composition helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewState contains pre-rendered sections and an optional dialog.
type ViewState struct {
	Width       int
	Height      int
	Sections    []string // stacked top to bottom, footer last
	Dialog      string   // rendered box drawn centered over the sections
	DialogBg    lipgloss.Color
	Bg          lipgloss.Color
	Placeholder string
}

// Render composes the final view output. The footer (last section) is
// pinned to the bottom row.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.Placeholder != "" {
			return state.Placeholder
		}
		return "Loading..."
	}

	var base string
	if n := len(state.Sections); n > 0 {
		footer := state.Sections[n-1]
		bodyH := max(0, state.Height-lipgloss.Height(footer))
		body := PlaceBox(state.Width, bodyH, lipgloss.Top, strings.Join(state.Sections[:n-1], "\n"), state.Bg)
		base = body + "\n" + footer
		if bodyH == 0 {
			base = footer
		}
	}

	if state.Dialog != "" {
		return Composite(base, state.Width, state.Height, state.Dialog, state.DialogBg)
	}
	return base
}

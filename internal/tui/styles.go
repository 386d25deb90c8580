package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorCurrent     lipgloss.Color
	colorWarning     lipgloss.Color

	// Tabs
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style

	// Grid headers
	DayHeaderStyle  lipgloss.Style
	TimeColumnStyle lipgloss.Style
	SeparatorStyle  lipgloss.Style

	// Cells
	EmptyCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style
	PreviewStyle   lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Search dialog
	ModalStyle            lipgloss.Style
	ModalBgColor          lipgloss.Color
	ModalTitleStyle       lipgloss.Style
	ModalMetaStyle        lipgloss.Style
	ModalInputTextStyle   lipgloss.Style
	ModalInputCursorStyle lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style
	ModalRowStyle         lipgloss.Style
	ModalRowActiveStyle   lipgloss.Style
	ModalFacetStyle       lipgloss.Style
	ModalFacetActiveStyle lipgloss.Style
	ModalHintStyle        lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t, grid.Palette...)
	s.palette = palette

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorCurrent = palette.Current
	s.colorWarning = palette.Warning

	s.TabStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Padding(0, 1)

	s.TabActiveStyle = s.TabStyle.
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.colorBgHighlight).
		Background(s.colorBg)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorBgHighlight).
		Background(s.colorBg)

	// Cursor uses the selection color for high visibility
	s.CursorStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	s.PreviewStyle = lipgloss.NewStyle().
		Background(s.colorCurrent).
		Foreground(palette.TextOnCurrent).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	modal := palette.Modal
	s.ModalBgColor = modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		BorderBackground(modal.Bg).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(0, 1)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Border).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalRowStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalRowActiveStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Bold(true)

	s.ModalFacetStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Panel).
		Padding(0, 1)

	s.ModalFacetActiveStyle = s.ModalFacetStyle.
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg).
		Italic(true)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	return s
}

// BlockStyle returns the style for a block drawn with a grid palette color.
func (s *Styles) BlockStyle(hex string, selected bool) lipgloss.Style {
	c := s.palette.Block(hex)
	bg := c.Bg
	if selected {
		bg = c.Alt
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(c.Text).
		Bold(selected)
}

// GhostStyle marks the origin cells of a block being dragged.
func (s *Styles) GhostStyle(hex string) lipgloss.Style {
	c := s.palette.Block(hex)
	return lipgloss.NewStyle().
		Background(c.Ghost).
		Foreground(s.colorFgMuted).
		Italic(true)
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = line
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// Fit truncates s to width cells and pads it with spaces to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Center places s in the middle of width cells, truncating if needed.
func Center(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// ApplyModalBackgroundResets reapplies modal background after ANSI resets.
func ApplyModalBackgroundResets(line string, modalBg lipgloss.Color) string {
	bgSeq := ModalBackgroundSeq(modalBg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// ModalBackgroundSeq returns the background escape sequence for the modal color.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}

// Composite draws box centered over a width x height base. Box lines are
// clipped to the screen and keep the modal background across resets.
func Composite(base string, width, height int, box string, modalBg lipgloss.Color) string {
	if width <= 0 || height <= 0 || box == "" {
		return base
	}
	boxLines := strings.Split(box, "\n")
	boxW := min(lipgloss.Width(box), width)
	boxH := min(len(boxLines), height)
	top := (height - boxH) / 2
	left := (width - boxW) / 2

	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	bgSeq := ModalBackgroundSeq(modalBg)
	for i := top; i < top+boxH; i++ {
		line := lines[i]
		if w := lipgloss.Width(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		row := Fit(ansi.Truncate(boxLines[i-top], boxW, ""), boxW)
		row = bgSeq + ApplyModalBackgroundResets(row, modalBg) + ansi.ResetStyle
		lines[i] = ansi.Cut(line, 0, left) + row + ansi.Cut(line, left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// Color definitions for consistent styling across the UI.
var (
	// Lecture ids: bold cyan
	colorID = color.New(color.FgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Counts and confirmations: green
	colorStats = color.New(color.FgGreen)

	// Warnings: yellow to make it pop
	colorWarn = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 100 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatID(s string) string {
	return colorID.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// displayMajor renders the raw major hierarchy as a path.
func displayMajor(l *lecture.Lecture) string {
	return strings.Join(l.MajorPath(), " / ")
}

// displaySchedule renders the raw schedule with one space between segments.
func displaySchedule(l *lecture.Lecture) string {
	return strings.ReplaceAll(l.Schedule, lecture.PathSeparator, " ")
}

package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/schedule"
)

// ErrLectureNotFound is returned when a requested id is not in the catalog.
var ErrLectureNotFound = errors.New("lecture not found")

const (
	showCellWidth  = 12
	showLabelWidth = 9
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func (a *App) showCmd() *cobra.Command {
	var (
		ids         []string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a timetable for a set of lectures",
		Long: `Place the given lectures on a fresh table and print the weekly grid
followed by a plain listing of every block.

Example:
  timetable show -l CS101 -l MA201
  timetable show -l CS101,MA201 --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(ids) == 0 {
				return errors.New("at least one --lecture is required")
			}
			cache, err := a.openCache()
			if err != nil {
				return err
			}
			lectures, err := cache.FetchAll(cmd.Context())
			if err != nil {
				return err
			}

			byID := make(map[string]*lecture.Lecture, len(lectures))
			for i := range lectures {
				if _, ok := byID[lectures[i].ID]; !ok {
					byID[lectures[i].ID] = &lectures[i]
				}
			}

			out := cmd.OutOrStdout()
			store := schedule.NewStore(nil, schedule.WithLogger(a.logger))
			callbacks := schedule.NewCallbacks(store, nil)
			for _, id := range ids {
				l, ok := byID[id]
				if !ok {
					return fmt.Errorf("%w: %s", ErrLectureNotFound, id)
				}
				if callbacks.OnAddLecture(schedule.DefaultTableID, l) == 0 {
					fmt.Fprintf(out, "%s %s has no schedule to place\n", formatWarn("warning:"), l.ID)
				}
			}

			blocks, _ := store.Table(schedule.DefaultTableID)
			renderTimetable(out, blocks, !color.NoColor)
			listing := grid.Listing(blocks)
			fmt.Fprintf(out, "\n%s", listing)

			if toClipboard {
				if err := writeClipboard(listing); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatStats("Copied to clipboard"))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&ids, "lecture", "l", nil, "Lecture id (repeatable)")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "Copy the listing to the clipboard")
	return cmd
}

// renderTimetable prints the day/period grid for the periods spanned by
// blocks. Every block of a lecture shares one palette color.
func renderTimetable(w io.Writer, blocks []lecture.Block, colored bool) {
	if len(blocks) == 0 {
		fmt.Fprintln(w, "No blocks placed.")
		return
	}

	first, last := grid.DefaultPeriods, 1
	for _, b := range blocks {
		first = min(first, b.Start())
		last = max(last, b.End())
	}
	colors := grid.Colors(blocks)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", showLabelWidth))
	for _, day := range lecture.Days {
		header.WriteString("│" + padCell(fmt.Sprintf("%s %s", day, day.English())))
	}
	fmt.Fprintln(w, formatHeader(header.String()))

	for p := first; p <= last; p++ {
		var row strings.Builder
		row.WriteString(padTo(fmt.Sprintf("%2d %s", p, grid.PeriodStart(p)), showLabelWidth))
		for _, day := range lecture.Days {
			row.WriteString("│")
			idx := blockIndexAt(blocks, day, p)
			if idx < 0 {
				row.WriteString(strings.Repeat(" ", showCellWidth))
				continue
			}
			text := ""
			if blocks[idx].Start() == p {
				text = blocks[idx].LectureID()
			}
			cell := padCell(text)
			if colored {
				cell = lipgloss.NewStyle().
					Background(lipgloss.Color(colors[idx])).
					Foreground(lipgloss.Color("#000000")).
					Render(cell)
			}
			row.WriteString(cell)
		}
		fmt.Fprintln(w, row.String())
	}
}

// blockIndexAt returns the last block covering the slot, or -1.
func blockIndexAt(blocks []lecture.Block, day lecture.Day, period int) int {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].Contains(day, period) {
			return i
		}
	}
	return -1
}

func padCell(s string) string {
	return padTo(s, showCellWidth)
}

func padTo(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

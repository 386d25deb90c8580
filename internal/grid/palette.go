package grid

import (
	"fmt"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// Palette holds the block background colors, assigned cyclically.
var Palette = []string{"#ffdddd", "#ffffdd", "#ddffff", "#ddddff", "#ffddff", "#ddffdd"}

// Colors returns one palette color per block. Distinct lecture ids are
// numbered in first-seen order and colored by that number, so every block
// of a lecture shares a color within one table. Nothing is cached.
func Colors(blocks []lecture.Block) []string {
	order := LectureOrder(blocks)
	colors := make([]string, len(blocks))
	for i, b := range blocks {
		colors[i] = Palette[order[b.LectureID()]%len(Palette)]
	}
	return colors
}

// LectureOrder numbers distinct lecture ids in first-seen order.
func LectureOrder(blocks []lecture.Block) map[string]int {
	order := make(map[string]int)
	for _, b := range blocks {
		id := b.LectureID()
		if _, seen := order[id]; !seen {
			order[id] = len(order)
		}
	}
	return order
}

// PeriodLabel returns the clock range of a period, e.g. "09:00~09:30".
// Periods 1-18 are 30-minute day slots from 09:00; periods 19-24 are
// 50-minute evening slots every 55 minutes from 18:00.
func PeriodLabel(period int) string {
	var start, length int
	switch {
	case period >= 1 && period <= 18:
		start = 9*60 + (period-1)*30
		length = 30
	case period >= 19 && period <= DefaultPeriods:
		start = 18*60 + (period-19)*55
		length = 50
	default:
		return ""
	}
	return clock(start) + "~" + clock(start+length)
}

// PeriodStart returns just the starting clock of a period.
func PeriodStart(period int) string {
	label := PeriodLabel(period)
	if label == "" {
		return ""
	}
	return label[:5]
}

func clock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

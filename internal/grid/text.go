package grid

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// RangeLabel returns the clock span from the start of first to the end of
// last, e.g. "09:00~10:30". Periods without a label yield "".
func RangeLabel(first, last int) string {
	from, to := PeriodLabel(first), PeriodLabel(last)
	if from == "" || to == "" {
		return ""
	}
	return from[:5] + "~" + to[6:]
}

// Listing renders blocks as plain text, one line per block, ordered by day
// then first period:
//
//	월 1-3  09:00~10:30  CS101 Algorithms (Room1)
func Listing(blocks []lecture.Block) string {
	sorted := slices.Clone(blocks)
	slices.SortStableFunc(sorted, func(a, b lecture.Block) int {
		return cmp.Or(
			cmp.Compare(a.Day.Index(), b.Day.Index()),
			cmp.Compare(a.Start(), b.Start()),
		)
	})

	var sb strings.Builder
	for _, b := range sorted {
		periods := fmt.Sprint(b.Start())
		if b.End() != b.Start() {
			periods = fmt.Sprintf("%d-%d", b.Start(), b.End())
		}
		fmt.Fprintf(&sb, "%s %-5s  %-11s  %s", b.Day, periods, RangeLabel(b.Start(), b.End()), b.LectureID())
		if b.Lecture != nil && b.Lecture.Title != "" {
			sb.WriteString(" " + b.Lecture.Title)
		}
		if b.Room != "" {
			sb.WriteString(" (" + b.Room + ")")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

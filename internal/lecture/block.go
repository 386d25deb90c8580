package lecture

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Block is one contiguous day/period placement of a lecture on the grid.
// Range is non-empty and strictly increasing by 1.
type Block struct {
	Lecture *Lecture
	Day     Day
	Range   []int
	Room    string
}

// Start returns the first period of the block.
func (b Block) Start() int {
	if len(b.Range) == 0 {
		return 0
	}
	return b.Range[0]
}

// End returns the last period of the block.
func (b Block) End() int {
	if len(b.Range) == 0 {
		return 0
	}
	return b.Range[len(b.Range)-1]
}

// Contains returns true if the block occupies the given day and period.
func (b Block) Contains(day Day, period int) bool {
	return b.Day == day && slices.Contains(b.Range, period)
}

// Shift returns a copy of the block placed on dayIndex with every period
// moved by periodDelta. The receiver's range is never modified.
func (b Block) Shift(dayIndex, periodDelta int) Block {
	day, ok := DayAt(dayIndex)
	if !ok {
		return b
	}
	shifted := make([]int, len(b.Range))
	for i, p := range b.Range {
		shifted[i] = p + periodDelta
	}
	return Block{Lecture: b.Lecture, Day: day, Range: shifted, Room: b.Room}
}

// LectureID returns the id of the placed lecture, or "" for an empty block.
func (b Block) LectureID() string {
	if b.Lecture == nil {
		return ""
	}
	return b.Lecture.ID
}

// Segment is one parsed piece of a raw schedule string.
type Segment struct {
	Day   Day
	Range []int
	Room  string
}

// Longest catalog runs are a full night block; anything beyond is garbage.
const maxSegmentPeriods = 24

var segmentPattern = regexp.MustCompile(`^(\p{Hangul})(\d+)(?:~(\d+))?(.*)$`)

// ParseSchedule splits a raw schedule string such as
// "월16~18(상경415)<p>수10~12" into segments. Segments that cannot be parsed
// are skipped, so malformed input yields a shorter or empty result.
func ParseSchedule(raw string) []Segment {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var segments []Segment
	for _, part := range strings.Split(raw, PathSeparator) {
		if s, ok := parseSegment(strings.TrimSpace(part)); ok {
			segments = append(segments, s)
		}
	}
	return segments
}

func parseSegment(s string) (Segment, bool) {
	m := segmentPattern.FindStringSubmatch(s)
	if m == nil {
		return Segment{}, false
	}

	day := Day(m[1])
	if !day.Valid() {
		return Segment{}, false
	}

	start, err := strconv.Atoi(m[2])
	if err != nil || start < 1 {
		return Segment{}, false
	}
	end := start
	if m[3] != "" {
		end, err = strconv.Atoi(m[3])
		if err != nil || end < start || end-start >= maxSegmentPeriods {
			return Segment{}, false
		}
	}

	periods := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		periods = append(periods, p)
	}

	room := strings.NewReplacer("(", "", ")", "").Replace(m[4])
	return Segment{Day: day, Range: periods, Room: strings.TrimSpace(room)}, true
}

// Package lecture defines the core domain types for timetable.
package lecture

import (
	"strconv"
	"strings"
)

// PathSeparator separates hierarchy levels in the raw major field and
// segments in the raw schedule field.
const PathSeparator = "<p>"

// Lecture is a single catalog entry. Lectures are immutable once loaded and
// are shared by pointer between tables.
type Lecture struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Credits  string `json:"credits"`  // e.g. "3(0)"
	Major    string `json:"major"`    // may embed "<p>"-separated hierarchy
	Schedule string `json:"schedule"` // e.g. "월16~18(상경415)<p>수10~12"
	Grade    int    `json:"grade"`
}

// MajorPath returns the major hierarchy, top level first.
func (l *Lecture) MajorPath() []string {
	if l.Major == "" {
		return nil
	}
	parts := strings.Split(l.Major, PathSeparator)
	result := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// CreditValue returns the leading integer of the credits string.
func (l *Lecture) CreditValue() (int, bool) {
	end := 0
	for end < len(l.Credits) && l.Credits[end] >= '0' && l.Credits[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(l.Credits[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Blocks converts the lecture's schedule string into grid blocks, one per
// parsed segment. A lecture without a parseable schedule has no blocks.
func (l *Lecture) Blocks() []Block {
	segments := ParseSchedule(l.Schedule)
	if len(segments) == 0 {
		return nil
	}
	blocks := make([]Block, 0, len(segments))
	for _, s := range segments {
		blocks = append(blocks, Block{
			Lecture: l,
			Day:     s.Day,
			Range:   s.Range,
			Room:    s.Room,
		})
	}
	return blocks
}

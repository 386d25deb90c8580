// Package search filters the lecture catalog and windows the result for
// display.
package search

import (
	"slices"
	"strings"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// Options holds the search facets. The zero value constrains nothing: an
// empty query, empty sets and a nil Credits all pass every lecture.
type Options struct {
	Query   string
	Grades  []int
	Days    []lecture.Day
	Times   []int
	Majors  []string
	Credits *int
}

// IsZero reports whether no facet is constrained.
func (o Options) IsZero() bool {
	return strings.TrimSpace(o.Query) == "" &&
		len(o.Grades) == 0 &&
		len(o.Days) == 0 &&
		len(o.Times) == 0 &&
		len(o.Majors) == 0 &&
		o.Credits == nil
}

// Equal reports whether two option sets select the same facets. Set order
// matters; callers that build sets incrementally keep a stable order.
func (o Options) Equal(other Options) bool {
	if o.matchQuery() != other.matchQuery() {
		return false
	}
	if !slices.Equal(o.Grades, other.Grades) ||
		!slices.Equal(o.Days, other.Days) ||
		!slices.Equal(o.Times, other.Times) ||
		!slices.Equal(o.Majors, other.Majors) {
		return false
	}
	switch {
	case o.Credits == nil && other.Credits == nil:
		return true
	case o.Credits == nil || other.Credits == nil:
		return false
	default:
		return *o.Credits == *other.Credits
	}
}

// Clone returns a deep copy so the caller can keep editing its own sets.
func (o Options) Clone() Options {
	c := Options{
		Query:  o.Query,
		Grades: slices.Clone(o.Grades),
		Days:   slices.Clone(o.Days),
		Times:  slices.Clone(o.Times),
		Majors: slices.Clone(o.Majors),
	}
	if o.Credits != nil {
		n := *o.Credits
		c.Credits = &n
	}
	return c
}

// Credits returns a pointer suitable for Options.Credits.
func Credits(n int) *int {
	return &n
}

// matchQuery is the query as matched: lowercased, or empty when blank.
func (o Options) matchQuery() string {
	if strings.TrimSpace(o.Query) == "" {
		return ""
	}
	return strings.ToLower(o.Query)
}

package search

import (
	"slices"
	"strconv"
	"strings"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// Predicate decides whether a lecture belongs in the result.
type Predicate func(l *lecture.Lecture) bool

// Chain combines predicates with logical AND, evaluated in order.
func Chain(preds ...Predicate) Predicate {
	return func(l *lecture.Lecture) bool {
		for _, p := range preds {
			if !p(l) {
				return false
			}
		}
		return true
	}
}

// Pipeline returns the predicates for the constrained facets of opts,
// cheapest first. Unconstrained facets contribute nothing.
func Pipeline(opts Options) []Predicate {
	var preds []Predicate
	if q := opts.matchQuery(); q != "" {
		preds = append(preds, queryPredicate(q))
	}
	if len(opts.Grades) > 0 {
		preds = append(preds, gradePredicate(opts.Grades))
	}
	if len(opts.Majors) > 0 {
		preds = append(preds, majorPredicate(opts.Majors))
	}
	if opts.Credits != nil {
		preds = append(preds, creditsPredicate(*opts.Credits))
	}
	if len(opts.Days) > 0 || len(opts.Times) > 0 {
		preds = append(preds, schedulePredicate(opts.Days, opts.Times))
	}
	return preds
}

// Filter returns the lectures matching every constrained facet, in input
// order. With no facet constrained it returns lectures itself.
func Filter(lectures []lecture.Lecture, opts Options) []lecture.Lecture {
	preds := Pipeline(opts)
	if len(preds) == 0 {
		return lectures
	}
	match := Chain(preds...)

	result := make([]lecture.Lecture, 0)
	for i := range lectures {
		if match(&lectures[i]) {
			result = append(result, lectures[i])
		}
	}
	return result
}

func queryPredicate(q string) Predicate {
	return func(l *lecture.Lecture) bool {
		return strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.ID), q)
	}
}

func gradePredicate(grades []int) Predicate {
	return func(l *lecture.Lecture) bool {
		return slices.Contains(grades, l.Grade)
	}
}

func majorPredicate(majors []string) Predicate {
	return func(l *lecture.Lecture) bool {
		return slices.Contains(majors, l.Major)
	}
}

func creditsPredicate(n int) Predicate {
	prefix := strconv.Itoa(n)
	return func(l *lecture.Lecture) bool {
		return strings.HasPrefix(l.Credits, prefix)
	}
}

// schedulePredicate parses the schedule once per lecture and requires each
// set constraint to hold independently.
func schedulePredicate(days []lecture.Day, times []int) Predicate {
	return func(l *lecture.Lecture) bool {
		segments := lecture.ParseSchedule(l.Schedule)
		if len(days) > 0 && !slices.ContainsFunc(segments, func(s lecture.Segment) bool {
			return slices.Contains(days, s.Day)
		}) {
			return false
		}
		if len(times) > 0 && !slices.ContainsFunc(segments, func(s lecture.Segment) bool {
			return slices.ContainsFunc(s.Range, func(p int) bool { return slices.Contains(times, p) })
		}) {
			return false
		}
		return true
	}
}

// Majors lists the distinct raw major values, sorted.
func Majors(lectures []lecture.Lecture) []string {
	seen := make(map[string]struct{})
	var majors []string
	for _, l := range lectures {
		if l.Major == "" {
			continue
		}
		if _, ok := seen[l.Major]; ok {
			continue
		}
		seen[l.Major] = struct{}{}
		majors = append(majors, l.Major)
	}
	slices.Sort(majors)
	return majors
}

package search

import (
	"github.com/javiermolinar/timetable/internal/lecture"
)

// DefaultPageSize is the number of rows revealed per page.
const DefaultPageSize = 100

// Paginator windows a result list into a growing prefix.
type Paginator struct {
	PageSize int
}

func (p Paginator) size() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// Visible returns the first page*PageSize items. Pages below 1 count as 1.
func (p Paginator) Visible(items []lecture.Lecture, page int) []lecture.Lecture {
	page = max(page, 1)
	n := min(page*p.size(), len(items))
	return items[:n]
}

// LastPage returns the last page for n items, at least 1.
func (p Paginator) LastPage(n int) int {
	size := p.size()
	return max(1, (n+size-1)/size)
}

// Session tracks one search dialog: the full catalog, the active options,
// the filtered result and the current page. It is not safe for concurrent
// use.
type Session struct {
	paginator Paginator
	options   Options
	all       []lecture.Lecture
	filtered  []lecture.Lecture
	page      int
}

// NewSession creates an empty session with the given page size.
func NewSession(pageSize int) *Session {
	return &Session{paginator: Paginator{PageSize: pageSize}, page: 1}
}

// SetLectures replaces the catalog, refilters and returns to page 1.
func (s *Session) SetLectures(lectures []lecture.Lecture) {
	s.all = lectures
	s.filtered = Filter(s.all, s.options)
	s.page = 1
}

// SetOptions refilters when the options change and returns to page 1.
// Setting equal options keeps the current page.
func (s *Session) SetOptions(opts Options) {
	if opts.Equal(s.options) {
		return
	}
	s.options = opts.Clone()
	s.filtered = Filter(s.all, s.options)
	s.page = 1
}

// Options returns a copy of the active options.
func (s *Session) Options() Options {
	return s.options.Clone()
}

// Advance moves to the next page. Past the last page it does nothing and
// reports false.
func (s *Session) Advance() bool {
	if s.page >= s.LastPage() {
		s.page = s.LastPage()
		return false
	}
	s.page++
	return true
}

// Visible returns the rows revealed so far.
func (s *Session) Visible() []lecture.Lecture {
	return s.paginator.Visible(s.filtered, s.page)
}

// Page returns the current page, starting at 1.
func (s *Session) Page() int {
	return s.page
}

// LastPage returns the last page of the filtered result.
func (s *Session) LastPage() int {
	return s.paginator.LastPage(len(s.filtered))
}

// Total returns the size of the filtered result.
func (s *Session) Total() int {
	return len(s.filtered)
}

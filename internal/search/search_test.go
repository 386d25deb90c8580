package search

import (
	"fmt"
	"slices"
	"testing"

	"github.com/javiermolinar/timetable/internal/lecture"
)

var cs101 = lecture.Lecture{
	ID:       "CS101",
	Title:    "Algorithms",
	Major:    "CS",
	Credits:  "3(0)",
	Grade:    2,
	Schedule: "월1~3(Room1)",
}

func catalog() []lecture.Lecture {
	return []lecture.Lecture{
		cs101,
		{ID: "MA201", Title: "Linear Algebra", Major: "Math", Credits: "3(3)", Grade: 2, Schedule: "화4~5<p>목4~5"},
		{ID: "EN110", Title: "Academic English", Major: "교양<p>영어", Credits: "2(0)", Grade: 1, Schedule: "수10~12(인문101)"},
		{ID: "PE100", Title: "Swimming", Major: "PE", Credits: "1(2)", Grade: 1, Schedule: "금19~20"},
		{ID: "CS300", Title: "Compilers", Major: "CS", Credits: "3(0)", Grade: 3, Schedule: "broken"},
	}
}

func ids(lectures []lecture.Lecture) []string {
	out := make([]string, len(lectures))
	for i, l := range lectures {
		out[i] = l.ID
	}
	return out
}

func TestFilter_GradeScenario(t *testing.T) {
	in := []lecture.Lecture{cs101}

	got := Filter(in, Options{Grades: []int{2}})
	if !slices.Equal(ids(got), []string{"CS101"}) {
		t.Errorf("grade 2: got %v, want [CS101]", ids(got))
	}
	got = Filter(in, Options{Grades: []int{1}})
	if len(got) != 0 {
		t.Errorf("grade 1: got %v, want []", ids(got))
	}
}

func TestFilter_EmptyOptionsIsIdentity(t *testing.T) {
	in := catalog()
	got := Filter(in, Options{Query: "   "})
	if len(got) != len(in) || &got[0] != &in[0] {
		t.Error("empty options should return the input slice")
	}
}

func TestFilter_Facets(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"query title", Options{Query: "algebra"}, []string{"MA201"}},
		{"query id case-insensitive", Options{Query: "cs"}, []string{"CS101", "CS300"}},
		{"query spaces kept", Options{Query: "linear "}, []string{"MA201"}},
		{"trailing space is part of the query", Options{Query: "algorithms "}, nil},
		{"leading space is part of the query", Options{Query: " swim"}, nil},
		{"grades", Options{Grades: []int{1, 3}}, []string{"EN110", "PE100", "CS300"}},
		{"major raw", Options{Majors: []string{"교양<p>영어"}}, []string{"EN110"}},
		{"major not normalized", Options{Majors: []string{"영어"}}, nil},
		{"credits prefix", Options{Credits: Credits(3)}, []string{"CS101", "MA201", "CS300"}},
		{"credits one", Options{Credits: Credits(1)}, []string{"PE100"}},
		{"day", Options{Days: []lecture.Day{lecture.Thursday}}, []string{"MA201"}},
		{"time", Options{Times: []int{3, 11}}, []string{"CS101", "EN110"}},
		{"day and time both hold", Options{Days: []lecture.Day{lecture.Monday}, Times: []int{3}}, []string{"CS101"}},
		{"day and time independent", Options{Days: []lecture.Day{lecture.Monday}, Times: []int{11}}, nil},
		{"night periods", Options{Times: []int{20}}, []string{"PE100"}},
		{"unparseable schedule excluded by schedule facet", Options{Majors: []string{"CS"}, Days: []lecture.Day{lecture.Monday}}, []string{"CS101"}},
		{"combined", Options{Query: "a", Grades: []int{2}, Credits: Credits(3), Days: []lecture.Day{lecture.Tuesday}}, []string{"MA201"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(catalog(), tt.opts))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_MonotonicAndOrdered(t *testing.T) {
	in := catalog()
	optionSets := []Options{
		{},
		{Query: "c"},
		{Grades: []int{1}},
		{Days: []lecture.Day{lecture.Monday, lecture.Friday}},
		{Times: []int{1, 2, 3, 4, 5}},
		{Majors: []string{"CS", "PE"}, Credits: Credits(3)},
	}
	for i, opts := range optionSets {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			got := Filter(in, opts)
			if len(got) > len(in) {
				t.Fatalf("output longer than input")
			}
			// Every output element appears in the input, in relative order.
			j := 0
			for _, l := range got {
				for j < len(in) && in[j].ID != l.ID {
					j++
				}
				if j == len(in) {
					t.Fatalf("%s fabricated or out of order", l.ID)
				}
				j++
			}
		})
	}
}

func TestChain(t *testing.T) {
	always := func(*lecture.Lecture) bool { return true }
	never := func(*lecture.Lecture) bool { return false }

	if !Chain()(&cs101) {
		t.Error("empty chain should pass")
	}
	if !Chain(always, always)(&cs101) {
		t.Error("all-pass chain should pass")
	}
	if Chain(always, never)(&cs101) {
		t.Error("chain should fail when any predicate fails")
	}
	if n := len(Pipeline(Options{})); n != 0 {
		t.Errorf("empty options built %d predicates", n)
	}
	if n := len(Pipeline(Options{Query: "x", Days: []lecture.Day{lecture.Monday}, Times: []int{1}})); n != 2 {
		t.Errorf("expected query and schedule predicates, got %d", n)
	}
}

func TestOptions(t *testing.T) {
	if !(Options{}).IsZero() || !(Options{Query: " "}).IsZero() {
		t.Error("empty options should be zero")
	}
	if (Options{Credits: Credits(0)}).IsZero() {
		t.Error("credits 0 is a constraint")
	}

	a := Options{Query: "cs", Grades: []int{2}, Credits: Credits(3)}
	b := a.Clone()
	if !a.Equal(b) {
		t.Error("clone should be equal")
	}
	b.Grades[0] = 1
	if a.Grades[0] != 2 {
		t.Error("clone shares the grades slice")
	}
	if a.Equal(b) {
		t.Error("different grades should not be equal")
	}
	if a.Equal(Options{Query: "cs", Grades: []int{2}}) {
		t.Error("nil credits should differ from set credits")
	}
	if (Options{Query: "cs"}).Equal(Options{Query: "cs "}) {
		t.Error("a trailing space changes the query")
	}
	if !(Options{Query: ""}).Equal(Options{Query: "  "}) {
		t.Error("blank queries should be equal")
	}
	if !(Options{Query: "CS"}).Equal(Options{Query: "cs"}) {
		t.Error("queries match case-insensitively")
	}
}

func TestMajors(t *testing.T) {
	got := Majors(catalog())
	want := []string{"CS", "Math", "PE", "교양<p>영어"}
	if !slices.Equal(got, want) {
		t.Errorf("Majors() = %v, want %v", got, want)
	}
}

func manyLectures(n int) []lecture.Lecture {
	out := make([]lecture.Lecture, n)
	for i := range out {
		out[i] = lecture.Lecture{ID: fmt.Sprintf("L%03d", i), Title: "Lecture", Grade: 1 + i%4}
	}
	return out
}

func TestPaginator(t *testing.T) {
	p := Paginator{PageSize: 10}
	items := manyLectures(25)

	tests := []struct {
		page int
		want int
	}{
		{0, 10}, {1, 10}, {2, 20}, {3, 25}, {9, 25},
	}
	for _, tt := range tests {
		if got := len(p.Visible(items, tt.page)); got != tt.want {
			t.Errorf("Visible(page %d) = %d items, want %d", tt.page, got, tt.want)
		}
	}

	for n, want := range map[int]int{0: 1, 1: 1, 10: 1, 11: 2, 25: 3} {
		if got := p.LastPage(n); got != want {
			t.Errorf("LastPage(%d) = %d, want %d", n, got, want)
		}
	}
	if (Paginator{}).LastPage(250) != 3 {
		t.Error("zero page size should default to 100")
	}
}

func TestSession_AdvanceIsIdempotent(t *testing.T) {
	s := NewSession(10)
	s.SetLectures(manyLectures(25))

	if s.LastPage() != 3 {
		t.Fatalf("LastPage = %d, want 3", s.LastPage())
	}
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if s.Page() != 3 {
		t.Errorf("page = %d, want 3", s.Page())
	}
	if len(s.Visible()) != 25 {
		t.Errorf("visible = %d, want 25", len(s.Visible()))
	}
	if s.Advance() {
		t.Error("Advance past the last page should report false")
	}
}

func TestSession_OptionChangeResetsPage(t *testing.T) {
	s := NewSession(5)
	s.SetLectures(manyLectures(40))
	s.Advance()
	s.Advance()
	if s.Page() != 3 {
		t.Fatalf("page = %d, want 3", s.Page())
	}

	// Equal options keep the page.
	s.SetOptions(Options{})
	if s.Page() != 3 {
		t.Errorf("equal options reset page to %d", s.Page())
	}

	s.SetOptions(Options{Grades: []int{1}})
	if s.Page() != 1 {
		t.Errorf("page after option change = %d, want 1", s.Page())
	}
	if s.Total() != 10 {
		t.Errorf("total = %d, want 10", s.Total())
	}
	if len(s.Visible()) != 5 {
		t.Errorf("visible = %d, want 5", len(s.Visible()))
	}
}

func TestSession_OptionsAreCopied(t *testing.T) {
	s := NewSession(5)
	s.SetLectures(manyLectures(8))
	grades := []int{1}
	s.SetOptions(Options{Grades: grades})
	grades[0] = 2

	if got := s.Options().Grades; !slices.Equal(got, []int{1}) {
		t.Errorf("session options changed through caller slice: %v", got)
	}
}

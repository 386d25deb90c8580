package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/logging"
	"github.com/javiermolinar/timetable/internal/search"
)

var (
	testMajors = []lecture.Lecture{
		{ID: "CS101", Title: "Algorithms", Major: "CS", Credits: "3(0)", Grade: 2, Schedule: "월1~3(Room1)"},
		{ID: "MA201", Title: "Linear Algebra", Major: "Math", Credits: "3(3)", Grade: 2, Schedule: "화4~5<p>목4~5"},
		{ID: "TH900", Title: "Thesis", Major: "CS", Credits: "6", Grade: 4, Schedule: ""},
	}
	testLiberalArts = []lecture.Lecture{
		{ID: "EN110", Title: "Academic English", Major: "교양<p>영어", Credits: "2(0)", Grade: 1, Schedule: "수10~12"},
	}
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// newTestConfig returns a config reading both partitions from a temp dir.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, catalog.PartitionMajors.File()), testMajors)
	writeJSON(t, filepath.Join(dir, catalog.PartitionLiberalArts.File()), testLiberalArts)

	cfg := config.Default()
	cfg.Catalog.Dir = dir
	cfg.Catalog.DBPath = filepath.Join(dir, "catalog.db")
	return cfg
}

func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a.root.SetArgs(args)
	a.root.SetOut(&out)
	a.root.SetErr(&errOut)
	err := a.Execute()
	return out.String(), err
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a := NewApp(cfg, filepath.Join(t.TempDir(), "config.toml"))
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return a
}

func TestVersion(t *testing.T) {
	out, err := run(t, newTestApp(t, nil), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "timetable dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestSearchFlagsOptions(t *testing.T) {
	tests := []struct {
		name       string
		flags      searchFlags
		creditsSet bool
		wantDays   []lecture.Day
		wantCreds  bool
		wantErr    error
	}{
		{
			name:     "days in both scripts",
			flags:    searchFlags{days: []string{"mon", "화"}},
			wantDays: []lecture.Day{lecture.Monday, lecture.Tuesday},
		},
		{
			name:    "unknown day",
			flags:   searchFlags{days: []string{"sunday"}},
			wantErr: ErrInvalidFlag,
		},
		{
			name:    "grade out of range",
			flags:   searchFlags{grades: []int{5}},
			wantErr: ErrInvalidFlag,
		},
		{
			name:  "credits default ignored",
			flags: searchFlags{credits: 0},
		},
		{
			name:       "credits given",
			flags:      searchFlags{credits: 3},
			creditsSet: true,
			wantCreds:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.flags.options("", tt.creditsSet)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(opts.Days) != len(tt.wantDays) {
				t.Fatalf("days = %v, want %v", opts.Days, tt.wantDays)
			}
			for i := range opts.Days {
				if opts.Days[i] != tt.wantDays[i] {
					t.Errorf("days[%d] = %v, want %v", i, opts.Days[i], tt.wantDays[i])
				}
			}
			if (opts.Credits != nil) != tt.wantCreds {
				t.Errorf("credits = %v, want set=%v", opts.Credits, tt.wantCreds)
			}
		})
	}
}

func TestSearchCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "query matches title",
			args:    []string{"search", "algo"},
			want:    []string{"CS101", "page 1/1 · 1 lectures"},
			notWant: []string{"MA201", "EN110"},
		},
		{
			name:    "query matches id",
			args:    []string{"search", "en1"},
			want:    []string{"EN110", "교양 / 영어"},
			notWant: []string{"CS101"},
		},
		{
			name:    "day and time facets",
			args:    []string{"search", "--day", "thu", "--time", "5"},
			want:    []string{"MA201"},
			notWant: []string{"CS101", "EN110"},
		},
		{
			name:    "credits facet",
			args:    []string{"search", "--credits", "2"},
			want:    []string{"EN110"},
			notWant: []string{"CS101", "MA201"},
		},
		{
			name: "no facets lists everything",
			args: []string{"search"},
			want: []string{"CS101", "MA201", "TH900", "EN110", "4 lectures"},
		},
		{
			name: "nothing matches",
			args: []string{"search", "zzz"},
			want: []string{"No lectures match."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, newTestApp(t, newTestConfig(t)), tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestSearchCommandPages(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Search.PageSize = 1

	tests := []struct {
		page     string
		wantRow  string
		wantFoot string
	}{
		{"1", "CS101", "page 1/4"},
		{"2", "MA201", "page 2/4"},
		{"4", "EN110", "page 4/4"},
		{"9", "EN110", "page 4/4"},
	}
	for _, tt := range tests {
		t.Run("page "+tt.page, func(t *testing.T) {
			out, err := run(t, newTestApp(t, cfg), "search", "--page", tt.page)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.wantRow) || !strings.Contains(out, tt.wantFoot) {
				t.Errorf("output:\n%s", out)
			}
			rows := 0
			for _, id := range []string{"CS101", "MA201", "TH900", "EN110"} {
				if strings.Contains(out, id) {
					rows++
				}
			}
			if rows != 1 {
				t.Errorf("page shows %d lectures, want 1:\n%s", rows, out)
			}
		})
	}
}

func TestSearchCommandInvalidDay(t *testing.T) {
	_, err := run(t, newTestApp(t, newTestConfig(t)), "search", "--day", "sun")
	if !errors.Is(err, ErrInvalidFlag) {
		t.Errorf("err = %v, want ErrInvalidFlag", err)
	}
}

func TestSearchCommandSourceFailure(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Catalog.Dir = t.TempDir()
	_, err := run(t, newTestApp(t, cfg), "search")
	if !errors.Is(err, catalog.ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestPrintSearchPageUsesPaginator(t *testing.T) {
	var buf bytes.Buffer
	all := append(append([]lecture.Lecture{}, testMajors...), testLiberalArts...)
	printSearchPage(&buf, all, search.Paginator{PageSize: 3}, 2)
	out := buf.String()
	if !strings.Contains(out, "EN110") || strings.Contains(out, "CS101") {
		t.Errorf("page 2 output:\n%s", out)
	}
	if !strings.Contains(out, "page 2/2 · 4 lectures") {
		t.Errorf("footer missing:\n%s", out)
	}
}

func TestInteractiveDebugLog(t *testing.T) {
	t.Chdir(t.TempDir())

	a := newTestApp(t, newTestConfig(t))
	a.debug = true
	store, cache, closeLog, err := a.prepareInteractive()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cache.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	store.AddTable()
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logging.DebugLogPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"catalog partition loaded"`, `"schedule updated"`, `"component":"store"`, `"component":"catalog"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("debug log missing %s:\n%s", want, data)
		}
	}
}

func TestInteractiveWithoutDebugWritesNoLog(t *testing.T) {
	t.Chdir(t.TempDir())

	a := newTestApp(t, newTestConfig(t))
	store, _, closeLog, err := a.prepareInteractive()
	if err != nil {
		t.Fatal(err)
	}
	store.AddTable()
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(logging.DebugLogPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("debug log written without --debug: %v", err)
	}
}

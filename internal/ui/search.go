package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/search"
)

// ErrInvalidFlag is returned for facet flag values that cannot be parsed.
var ErrInvalidFlag = errors.New("invalid flag value")

// searchFlags holds the raw facet flags of the search command.
type searchFlags struct {
	grades  []int
	days    []string
	times   []int
	majors  []string
	credits int
	page    int
}

// options converts the flags into filter options. Credits apply only when
// the flag was given.
func (f searchFlags) options(query string, creditsSet bool) (search.Options, error) {
	opts := search.Options{
		Query:  query,
		Grades: f.grades,
		Times:  f.times,
		Majors: f.majors,
	}
	for _, s := range f.days {
		day, ok := lecture.ParseDay(s)
		if !ok {
			return search.Options{}, fmt.Errorf("%w: day %q", ErrInvalidFlag, s)
		}
		opts.Days = append(opts.Days, day)
	}
	for _, g := range f.grades {
		if g < 1 || g > 4 {
			return search.Options{}, fmt.Errorf("%w: grade %d (want 1-4)", ErrInvalidFlag, g)
		}
	}
	if creditsSet {
		opts.Credits = search.Credits(f.credits)
	}
	return opts, nil
}

func (a *App) searchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the lecture catalog",
		Long: `Search lectures by title or id and narrow the result with facets.

Each facet flag may be repeated; a lecture matches a facet when it matches
any of its values, and must match every facet given.

Example:
  timetable search algo --grade 2 --day mon --time 3
  timetable search --major CS --credits 3 --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(strings.Join(args, " "), cmd.Flags().Changed("credits"))
			if err != nil {
				return err
			}
			cache, err := a.openCache()
			if err != nil {
				return err
			}
			lectures, err := cache.FetchAll(cmd.Context())
			if err != nil {
				return err
			}

			result := search.Filter(lectures, opts)
			a.logger.Debug().Int("catalog", len(lectures)).Int("matches", len(result)).Msg("search")
			printSearchPage(cmd.OutOrStdout(), result, search.Paginator{PageSize: a.config.Search.PageSize}, flags.page)
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&flags.grades, "grade", "g", nil, "Grade (1-4)")
	cmd.Flags().StringSliceVarP(&flags.days, "day", "d", nil, "Day (월..토 or mon..sat)")
	cmd.Flags().IntSliceVarP(&flags.times, "time", "t", nil, "Period number")
	cmd.Flags().StringSliceVarP(&flags.majors, "major", "m", nil, "Raw major value")
	cmd.Flags().IntVarP(&flags.credits, "credits", "c", 0, "Credits (leading number)")
	cmd.Flags().IntVarP(&flags.page, "page", "p", 1, "Page to show")
	return cmd
}

// printSearchPage prints the rows of one page and a "page x/y" footer.
func printSearchPage(w io.Writer, result []lecture.Lecture, p search.Paginator, page int) {
	if len(result) == 0 {
		fmt.Fprintln(w, "No lectures match.")
		return
	}

	last := p.LastPage(len(result))
	page = max(1, min(page, last))
	start := 0
	if page > 1 {
		start = len(p.Visible(result, page-1))
	}
	rows := p.Visible(result, page)[start:]

	titleW := max(16, min(40, termWidth()-60))
	for i := range rows {
		fmt.Fprintln(w, formatLectureRow(&rows[i], titleW))
	}
	fmt.Fprintf(w, "\n%s\n", formatMuted(fmt.Sprintf("page %d/%d · %d lectures", page, last, len(result))))
}

// formatLectureRow formats id, title, credits, grade, major and schedule.
func formatLectureRow(l *lecture.Lecture, titleW int) string {
	title := padTo(l.Title, titleW)
	return fmt.Sprintf("%s  %s  %-5s %s  %s  %s",
		formatID(fmt.Sprintf("%-10s", l.ID)),
		title,
		l.Credits,
		formatStats(fmt.Sprintf("%dy", l.Grade)),
		displayMajor(l),
		formatMuted(displaySchedule(l)),
	)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/search"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

const (
	searchMinRows = 3
	searchMaxRows = 12
	searchWidth   = 68

	// searchChromeLines counts the dialog lines around the result rows:
	// title, input, facets, a blank line, the meta line and the hint.
	searchChromeLines = 6
	// searchMargin keeps the dialog clear of the tabs and footer.
	searchMargin = 4
	maxGrade      = 4
	maxCredits    = 4

	// advanceMargin is how close to the end of the revealed rows the
	// selection gets before the next page is revealed.
	advanceMargin = 5
)

// searchDialog holds the search dialog state. Facet fields use a sentinel
// for "unset": 0 for grade, credits and period, -1 for day and major.
type searchDialog struct {
	input   textinput.Model
	session *search.Session
	styles  *Styles

	grade   int
	day     int
	period  int
	credits int
	major   int
	majors  []string
	periods int

	selected int
	offset   int
	rows     int
}

func newSearchDialog(styles *Styles, pageSize int) searchDialog {
	ti := textinput.New()
	ti.Placeholder = "Lecture title or id"
	ti.CharLimit = 64
	ti.Width = searchWidth - 6
	ti.Prompt = "> "
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = styles.ModalInputTextStyle

	return searchDialog{
		input:   ti,
		session: search.NewSession(pageSize),
		styles:  styles,
		day:     -1,
		major:   -1,
		periods: grid.DefaultPeriods,
		rows:    searchMaxRows,
	}
}

func (d *searchDialog) setCatalog(lectures []lecture.Lecture, majors []string) {
	d.majors = majors
	if d.major >= len(majors) {
		d.major = -1
	}
	d.session.SetLectures(lectures)
	d.session.SetOptions(d.options())
	d.selected, d.offset = 0, 0
}

// resize fits the dialog box inside the terminal. The box size depends
// only on the terminal, not on the result count.
func (d *searchDialog) resize(width, height int) {
	frameW, frameH := d.styles.ModalStyle.GetFrameSize()
	d.rows = max(searchMinRows, min(searchMaxRows, height-searchChromeLines-frameH-searchMargin))
	d.input.Width = max(10, min(searchWidth, width-frameW)-6)
}

// textWidth is the width of every dialog line inside the modal frame.
func (d searchDialog) textWidth() int {
	return d.input.Width + 6
}

// size returns the outer width and height of the rendered dialog box.
func (d searchDialog) size() (int, int) {
	frameW, frameH := d.styles.ModalStyle.GetFrameSize()
	return d.textWidth() + frameW, d.rows + searchChromeLines + frameH
}

// view renders the framed dialog box.
func (d searchDialog) view(state catalogState, catalogErr error) string {
	return d.styles.ModalStyle.Render(d.render(state, catalogErr))
}

// reset clears the query and every facet.
func (d *searchDialog) reset() {
	d.input.SetValue("")
	d.grade, d.period, d.credits = 0, 0, 0
	d.day, d.major = -1, -1
	d.selected, d.offset = 0, 0
}

// options builds the filter options from the dialog state.
func (d searchDialog) options() search.Options {
	opts := search.Options{Query: d.input.Value()}
	if d.grade > 0 {
		opts.Grades = []int{d.grade}
	}
	if day, ok := lecture.DayAt(d.day); ok {
		opts.Days = []lecture.Day{day}
	}
	if d.period > 0 {
		opts.Times = []int{d.period}
	}
	if d.major >= 0 && d.major < len(d.majors) {
		opts.Majors = []string{d.majors[d.major]}
	}
	if d.credits > 0 {
		opts.Credits = search.Credits(d.credits)
	}
	return opts
}

// apply pushes the current options into the session. Changed options
// return to the first page and the top row.
func (d *searchDialog) apply() {
	before := d.session.Options()
	opts := d.options()
	d.session.SetOptions(opts)
	if !before.Equal(opts) {
		d.selected, d.offset = 0, 0
	}
}

// moveSelection moves the highlighted row and reveals the next page when
// the selection nears the end of what is shown.
func (d *searchDialog) moveSelection(delta int) {
	visible := len(d.session.Visible())
	if visible == 0 {
		d.selected, d.offset = 0, 0
		return
	}
	d.selected = max(0, min(d.selected+delta, visible-1))
	if d.selected >= visible-advanceMargin {
		d.session.Advance()
	}
	switch {
	case d.selected < d.offset:
		d.offset = d.selected
	case d.selected >= d.offset+d.rows:
		d.offset = d.selected - d.rows + 1
	}
}

func (d searchDialog) selectedLecture() (*lecture.Lecture, bool) {
	visible := d.session.Visible()
	if d.selected < 0 || d.selected >= len(visible) {
		return nil, false
	}
	return &visible[d.selected], true
}

func cycle(v, lo, hi int) int {
	if v >= hi {
		return lo
	}
	return v + 1
}

// openSearch shows the dialog. A day of -1 keeps the facets as they are;
// otherwise the dialog is reset and prefiltered to that slot.
func (m *Model) openSearch(day, period int) {
	if day >= 0 {
		m.search.reset()
		m.search.day = day
		m.search.period = period
	}
	m.search.periods = m.geometry.Periods
	m.search.apply()
	m.search.input.Focus()
	m.setMode(ModeSearch, "open search")
}

func (m *Model) closeSearch() {
	m.search.input.Blur()
	m.setMode(ModeGrid, "close search")
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.search
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		return m.addSelected()
	case "up", "ctrl+p":
		d.moveSelection(-1)
		return m, nil
	case "down", "ctrl+n":
		d.moveSelection(1)
		return m, nil
	case "pgup":
		d.moveSelection(-d.rows)
		return m, nil
	case "pgdown":
		d.moveSelection(d.rows)
		return m, nil
	case "ctrl+g":
		d.grade = cycle(d.grade, 0, maxGrade)
		d.apply()
		return m, nil
	case "ctrl+d":
		d.day = cycle(d.day, -1, lecture.DayCount-1)
		d.apply()
		return m, nil
	case "ctrl+t":
		d.period = cycle(d.period, 0, d.periods)
		d.apply()
		return m, nil
	case "ctrl+r":
		d.credits = cycle(d.credits, 0, maxCredits)
		d.apply()
		return m, nil
	case "ctrl+o":
		d.major = cycle(d.major, -1, len(d.majors)-1)
		d.apply()
		return m, nil
	case "r":
		if m.catalog == catalogFailed {
			return m.retryCatalog()
		}
	}
	return m.updateSearchInput(msg)
}

// updateSearchInput feeds the message to the query input and refilters.
func (m Model) updateSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.search.apply()
	return m, cmd
}

func (m Model) addSelected() (tea.Model, tea.Cmd) {
	l, ok := m.search.selectedLecture()
	if !ok {
		return m, nil
	}
	n := m.callbacks.OnAddLecture(m.tableID, l)
	m.closeSearch()
	if n == 0 {
		return m, commands.Status("%s has no schedule to place", l.ID)
	}
	if blocks := l.Blocks(); len(blocks) > 0 {
		m.cursor = Position{Day: blocks[0].Day.Index(), Period: blocks[0].Start()}
		m.ensureCursorVisible()
	}
	return m, commands.Status("Added %s", l.ID)
}

// render draws the dialog text. The result area always spans rows+1
// lines so the box keeps its size while results change.
func (d searchDialog) render(state catalogState, catalogErr error) string {
	s := d.styles
	width := d.textWidth()
	line := func(style lipgloss.Style, text string) string {
		return style.Width(width).Render(ansi.Truncate(text, width, "…"))
	}

	lines := []string{
		line(s.ModalTitleStyle, "Search lectures"),
		d.input.View(),
		d.renderFacets(width),
		"",
	}

	var body []string
	switch state {
	case catalogLoading, catalogIdle:
		body = append(body, line(s.ModalMetaStyle, "Loading catalog..."))
	case catalogFailed:
		msg := "Catalog unavailable. Press r to retry."
		if catalogErr != nil {
			msg = fmt.Sprintf("%v. Press r to retry.", catalogErr)
		}
		body = append(body, line(s.ModalMetaStyle, msg))
	default:
		visible := d.session.Visible()
		if len(visible) == 0 {
			body = append(body, line(s.ModalMetaStyle, "No lectures match"))
		}
		end := min(d.offset+d.rows, len(visible))
		for i := d.offset; i < end; i++ {
			style := s.ModalRowStyle
			if i == d.selected {
				style = s.ModalRowActiveStyle
			}
			body = append(body, line(style, lectureRow(&visible[i])))
		}
		body = append(body, line(s.ModalMetaStyle, fmt.Sprintf("%d of %d · page %d/%d",
			len(visible), d.session.Total(), d.session.Page(), d.session.LastPage())))
	}
	for len(body) < d.rows+1 {
		body = append(body, line(s.ModalRowStyle, ""))
	}

	lines = append(lines, body...)
	lines = append(lines, line(s.ModalHintStyle, "↑↓ select · enter add · ^g grade · ^d day · ^t period · ^r credits · ^o major · esc close"))
	return strings.Join(lines, "\n")
}

func (d searchDialog) renderFacets(width int) string {
	s := d.styles
	facet := func(label string, set bool) string {
		if set {
			return s.ModalFacetActiveStyle.Render(label)
		}
		return s.ModalFacetStyle.Render(label)
	}

	grade := "grade any"
	if d.grade > 0 {
		grade = fmt.Sprintf("grade %d", d.grade)
	}
	day := "day any"
	if dd, ok := lecture.DayAt(d.day); ok {
		day = fmt.Sprintf("day %s", dd)
	}
	period := "period any"
	if d.period > 0 {
		period = fmt.Sprintf("period %d", d.period)
	}
	credits := "credits any"
	if d.credits > 0 {
		credits = fmt.Sprintf("credits %d", d.credits)
	}
	major := "major any"
	if d.major >= 0 && d.major < len(d.majors) {
		major = "major " + strings.ReplaceAll(d.majors[d.major], lecture.PathSeparator, "/")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		facet(grade, d.grade > 0), " ",
		facet(day, d.day >= 0), " ",
		facet(period, d.period > 0), " ",
		facet(credits, d.credits > 0), " ",
		facet(major, d.major >= 0),
	)
	return ansi.Truncate(row, width, "…")
}

// lectureRow formats one result line: id, title, credits, grade, schedule.
func lectureRow(l *lecture.Lecture) string {
	schedule := strings.ReplaceAll(l.Schedule, lecture.PathSeparator, " ")
	return fmt.Sprintf("%-10s %-22s %-5s %dy  %s",
		l.ID, ansi.Truncate(l.Title, 22, "…"), l.Credits, l.Grade, schedule)
}

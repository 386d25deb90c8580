package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/tui/view"
)

// View renders the model.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:  m.width,
		Height: m.height,
		Bg:     m.styles.colorBg,
	}
	if m.width == 0 || m.height == 0 {
		return state
	}
	state.Sections = []string{m.renderTabs(), m.renderGrid(), m.renderFooter()}
	if m.mode == ModeSearch {
		state.Dialog = m.search.view(m.catalog, m.catalogErr)
		state.DialogBg = m.styles.ModalBgColor
	}
	return state
}

func tabLabel(i int) string {
	return fmt.Sprintf("Table %d", i+1)
}

func (m Model) renderTabs() string {
	ids := m.store.TableIDs()
	tabs := make([]string, 0, len(ids))
	for i, id := range ids {
		style := m.styles.TabStyle
		if id == m.tableID {
			style = m.styles.TabActiveStyle
		}
		tabs = append(tabs, style.Render(tabLabel(i)))
	}
	return strings.Join(tabs, " ")
}

// tabAt returns the table whose tab covers column x.
func (m Model) tabAt(x int) (string, bool) {
	pos := 0
	for i, id := range m.store.TableIDs() {
		w := lipgloss.Width(tabLabel(i)) + 2 // padding
		if x >= pos && x < pos+w {
			return id, true
		}
		pos += w + 1
	}
	return "", false
}

func (m Model) renderGrid() string {
	g := m.geometry
	s := m.styles
	var lines []string

	// Day headers, then a rule on the last header line.
	for row := 0; row < g.HeaderHeight; row++ {
		var sb strings.Builder
		sb.WriteString(s.TimeColumnStyle.Render(strings.Repeat(" ", g.HeaderWidth)))
		for _, day := range lecture.Days {
			switch {
			case row == 0:
				sb.WriteString(s.DayHeaderStyle.Render(view.Center(fmt.Sprintf("%s %s", day, day.English()), g.CellWidth)))
			case row == g.HeaderHeight-1:
				sb.WriteString(s.SeparatorStyle.Render(strings.Repeat("─", g.CellWidth)))
			default:
				sb.WriteString(s.DayHeaderStyle.Render(strings.Repeat(" ", g.CellWidth)))
			}
		}
		lines = append(lines, sb.String())
	}

	blocks := m.blocks()
	first := m.scroll + 1
	last := min(g.Periods, m.scroll+m.visiblePeriods())
	for p := first; p <= last; p++ {
		for line := 0; line < g.CellHeight; line++ {
			var sb strings.Builder
			label := ""
			if line == 0 {
				label = fmt.Sprintf("%2d %s", p, grid.PeriodStart(p))
			}
			sb.WriteString(s.TimeColumnStyle.Render(view.Fit(label, g.HeaderWidth)))
			for day := range lecture.DayCount {
				sb.WriteString(s.SeparatorStyle.Render("│"))
				sb.WriteString(m.renderCell(blocks, day, p, line))
			}
			lines = append(lines, sb.String())
		}
	}
	return strings.Join(lines, "\n")
}

// renderCell draws one line of one cell, without its left separator.
func (m Model) renderCell(blocks []lecture.Block, day, period, line int) string {
	s := m.styles
	w := m.geometry.CellWidth - 1

	if m.previewCell(day, period) {
		b := m.drag.block
		text := blockText(b, period-m.drag.preview.PeriodDelta, line, m.geometry.CellHeight)
		return s.PreviewStyle.Render(view.Fit(text, w))
	}

	cursor := m.mode != ModeDrag && m.cursor.Day == day && m.cursor.Period == period
	if idx, ok := m.blockAt(day, period); ok {
		b := blocks[idx]
		text := blockText(b, period, line, m.geometry.CellHeight)
		if m.ghostCell(day, period) {
			return s.GhostStyle(m.drag.color).Render(view.Fit(text, w))
		}
		selected := m.mode != ModeDrag && m.cursor.Day == day && b.Contains(b.Day, m.cursor.Period)
		return s.BlockStyle(m.cache.color(idx), selected).Render(view.Fit(text, w))
	}

	if cursor {
		return s.CursorStyle.Render(view.Center("+", w))
	}
	return s.EmptyCellStyle.Render(strings.Repeat(" ", w))
}

// blockText returns the text for one terminal line of a block: the lecture
// id on the first line, then the title, then the room.
func blockText(b lecture.Block, period, line, cellHeight int) string {
	switch (period-b.Start())*cellHeight + line {
	case 0:
		return b.LectureID()
	case 1:
		if b.Lecture != nil {
			return b.Lecture.Title
		}
	case 2:
		return b.Room
	}
	return ""
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	style := m.styles.StatusStyle
	if m.err != nil && status != "" {
		style = m.styles.ErrorStyle
	}
	if status == "" {
		status = m.defaultStatus()
	}
	return view.RenderFooter(view.FooterModel{
		InnerW:      m.width,
		StatusText:  status,
		HelpText:    m.helpText(),
		StatusStyle: style,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	})
}

func (m Model) defaultStatus() string {
	day := m.cursorDay()
	parts := []string{
		fmt.Sprintf("%s of %d", tabLabel(m.tableIndex()), m.store.Len()),
		fmt.Sprintf("%d blocks", len(m.blocks())),
		fmt.Sprintf("%s %d %s", day, m.cursor.Period, grid.PeriodLabel(m.cursor.Period)),
	}
	switch m.catalog {
	case catalogLoading:
		parts = append(parts, "loading catalog...")
	case catalogFailed:
		parts = append(parts, "catalog failed (r to retry)")
	case catalogLoaded:
		parts = append(parts, fmt.Sprintf("%d lectures", len(m.lectures)))
	}
	return strings.Join(parts, " · ")
}

func (m Model) helpText() string {
	switch m.mode {
	case ModeDrag:
		return "release to drop · esc cancel"
	case ModeSearch:
		return "enter add · esc close"
	default:
		return "←↓↑→ move · ⇧+arrows move block · enter search · x del · tab/n/c/D tables · y yank · q quit"
	}
}

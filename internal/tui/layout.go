package tui

import "github.com/javiermolinar/timetable/internal/lecture"

const (
	tabsHeight   = 1 // table tabs above the grid
	footerHeight = 2 // status and help lines
)

// visiblePeriods returns how many period rows fit below the headers.
func (m Model) visiblePeriods() int {
	g := m.geometry
	if m.height <= 0 {
		return g.Periods
	}
	rows := (m.height - tabsHeight - g.HeaderHeight - footerHeight) / g.CellHeight
	return max(1, min(rows, g.Periods))
}

// ensureCursorVisible scrolls so the cursor period is on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.visiblePeriods()
	switch {
	case m.cursor.Period-1 < m.scroll:
		m.scroll = m.cursor.Period - 1
	case m.cursor.Period > m.scroll+visible:
		m.scroll = m.cursor.Period - visible
	}
	m.scroll = max(0, min(m.scroll, m.geometry.Periods-visible))
}

// screenToGrid converts a terminal position into grid coordinates,
// accounting for the tabs line and vertical scroll. ok is false above the
// grid or below the last visible row.
func (m Model) screenToGrid(x, y int) (gx, gy int, ok bool) {
	g := m.geometry
	row := y - tabsHeight
	if row < 0 || x < 0 || x >= g.Width() {
		return 0, 0, false
	}
	if row < g.HeaderHeight {
		return x, row, true
	}
	if row-g.HeaderHeight >= m.visiblePeriods()*g.CellHeight {
		return 0, 0, false
	}
	return x, row + m.scroll*g.CellHeight, true
}

// cellAtScreen hit-tests a terminal position against the grid cells.
func (m Model) cellAtScreen(x, y int) (lecture.Day, int, bool) {
	gx, gy, ok := m.screenToGrid(x, y)
	if !ok {
		return "", 0, false
	}
	return m.geometry.CellAt(gx, gy)
}

// moveCursor moves the cursor by whole cells, clamped to the grid.
func (m *Model) moveCursor(dDay, dPeriod int, reason string) {
	m.cursor.Day = max(0, min(m.cursor.Day+dDay, lecture.DayCount-1))
	m.cursor.Period = max(1, min(m.cursor.Period+dPeriod, m.geometry.Periods))
	m.ensureCursorVisible()
	logCursorMove(m.logger, m.cursor, reason)
}

// cursorDay returns the day under the cursor.
func (m Model) cursorDay() lecture.Day {
	day, _ := lecture.DayAt(m.cursor.Day)
	return day
}

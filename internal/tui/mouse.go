package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/drag"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

// handleMouseMsg drives block drags, slot clicks and tab switching.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeSearch {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.mousePress(msg.X, msg.Y)
		case tea.MouseButtonRight:
			return m.mouseDelete(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.scroll = max(0, m.scroll-1)
		case tea.MouseButtonWheelDown:
			m.scroll = min(m.scroll+1, m.geometry.Periods-m.visiblePeriods())
		}
	case tea.MouseActionMotion:
		if m.mode == ModeDrag {
			m.dragMotion(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		if m.mode == ModeDrag {
			return m.mouseRelease(msg.X, msg.Y)
		}
	}
	return m, nil
}

func (m Model) mousePress(x, y int) (tea.Model, tea.Cmd) {
	if m.mode == ModeDrag {
		// A release was lost; drop the stale drag.
		m.cancelDrag("press while dragging")
	}

	if y < tabsHeight {
		if id, ok := m.tabAt(x); ok {
			m.setTable(id)
		}
		return m, nil
	}

	day, period, ok := m.cellAtScreen(x, y)
	if !ok {
		return m, nil
	}
	m.cursor = Position{Day: day.Index(), Period: period}

	idx, hit := m.blockAt(day.Index(), period)
	if !hit {
		m.callbacks.OnScheduleTimeClick(m.tableID, day, period)
		m, _ = m.drainClicks()
		return m, nil
	}

	key := schedule.Key{TableID: m.tableID, Index: idx}
	block, ok := m.store.Lookup(key)
	if !ok {
		return m, nil
	}
	if err := m.engine.Start(key); err != nil {
		return m, commands.Status("%v", err)
	}
	m.drag = dragState{
		key:    key,
		block:  block,
		color:  m.cache.color(idx),
		pressX: x,
		pressY: y,
		node:   m.geometry.NodeRect(block.Day, block.Start(), block.End()),
	}
	m.setMode(ModeDrag, "mouse press on block")
	return m, nil
}

// dragContainer is the grid box widened by one unit on the leading edges.
// Clamp keeps that unit between the headers and the first cell, which on a
// terminal is a whole row or column.
func (m Model) dragContainer() grid.Rect {
	r := m.geometry.Bounds()
	r.Left--
	r.Top--
	return r
}

func (m *Model) dragMotion(x, y int) {
	dx := float64(x - m.drag.pressX)
	dy := float64(y - m.drag.pressY)
	m.drag.preview = m.engine.Preview(dx, dy, m.dragContainer(), m.drag.node)
}

// mouseRelease commits the snapped offset shown in the preview, so the block
// lands where the user saw it.
func (m Model) mouseRelease(x, y int) (tea.Model, tea.Cmd) {
	m.dragMotion(x, y)
	offset := m.drag.preview.Offset
	result := m.engine.End(offset.X, offset.Y)
	m.logger.Debug().
		Str("key", m.drag.key.String()).
		Stringer("result", result).
		Int("day_delta", m.drag.preview.DayDelta).
		Int("period_delta", m.drag.preview.PeriodDelta).
		Msg("drag released")

	preview := m.drag.preview
	m.drag = dragState{}
	m.setMode(ModeGrid, "mouse release")

	switch result {
	case drag.ResultMoved:
		m.moveCursor(preview.DayDelta, preview.PeriodDelta, "drag")
	case drag.ResultRejected:
		return m, commands.Status("Cannot move there")
	}
	return m, nil
}

func (m *Model) cancelDrag(reason string) {
	m.engine.Cancel()
	m.drag = dragState{}
	m.setMode(ModeGrid, reason)
}

func (m Model) mouseDelete(x, y int) (tea.Model, tea.Cmd) {
	day, period, ok := m.cellAtScreen(x, y)
	if !ok {
		return m, nil
	}
	m.cursor = Position{Day: day.Index(), Period: period}
	return m.deleteAtCursor()
}

// previewCell reports whether the preview covers day column and period.
func (m Model) previewCell(day, period int) bool {
	if m.mode != ModeDrag {
		return false
	}
	b := m.drag.block
	target := b.Day.Index() + m.drag.preview.DayDelta
	if day != target {
		return false
	}
	p := period - m.drag.preview.PeriodDelta
	return p >= b.Start() && p <= b.End()
}

// ghostCell reports whether day column and period belong to the block being
// dragged, at its original position.
func (m Model) ghostCell(day, period int) bool {
	if m.mode != ModeDrag {
		return false
	}
	d, ok := lecture.DayAt(day)
	return ok && m.drag.block.Contains(d, period)
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/drag"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

// handleKeyMsg routes key presses by mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	default:
		return m.handleGridKeys(msg)
	}
}

func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Cursor
	case "up", "k":
		m.moveCursor(0, -1, "key")
	case "down", "j":
		m.moveCursor(0, 1, "key")
	case "left", "h":
		m.moveCursor(-1, 0, "key")
	case "right", "l":
		m.moveCursor(1, 0, "key")

	// Block relocation by one cell
	case "shift+up", "K":
		return m.moveBlockAtCursor(0, -1)
	case "shift+down", "J":
		return m.moveBlockAtCursor(0, 1)
	case "shift+left", "H":
		return m.moveBlockAtCursor(-1, 0)
	case "shift+right", "L":
		return m.moveBlockAtCursor(1, 0)

	case "enter", "/":
		if _, ok := m.blockAt(m.cursor.Day, m.cursor.Period); ok {
			m.openSearch(-1, 0)
			return m, nil
		}
		m.callbacks.OnScheduleTimeClick(m.tableID, m.cursorDay(), m.cursor.Period)
		m, _ = m.drainClicks()
		return m, nil

	case "x", "delete":
		return m.deleteAtCursor()

	// Tables
	case "tab":
		return m.cycleTable(1)
	case "shift+tab":
		return m.cycleTable(-1)
	case "n":
		id := m.store.AddTable()
		m.setTable(id)
		return m, commands.Status("Added table %d", m.tableIndex()+1)
	case "c":
		id, ok := m.store.DuplicateTable(m.tableID)
		if !ok {
			return m, nil
		}
		m.setTable(id)
		return m, commands.Status("Duplicated into table %d", m.tableIndex()+1)
	case "D":
		if m.store.Len() <= 1 {
			return m, commands.Status("Cannot delete the last table")
		}
		idx := m.tableIndex()
		if !m.store.DeleteTable(m.tableID) {
			return m, nil
		}
		ids := m.store.TableIDs()
		m.setTable(ids[min(idx, len(ids)-1)])
		return m, commands.Status("Deleted table")

	case "y":
		blocks := m.blocks()
		if len(blocks) == 0 {
			return m, commands.Status("Nothing to copy")
		}
		return m, commands.Copy(grid.Listing(blocks))

	case "r":
		return m.retryCatalog()
	}
	return m, nil
}

func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cancelDrag("key")
		return m, commands.Status("Move cancelled")
	case "q":
		m.cancelDrag("quit")
		return m, tea.Quit
	}
	return m, nil
}

// moveBlockAtCursor relocates the block under the cursor by whole cells.
func (m Model) moveBlockAtCursor(dDay, dPeriod int) (tea.Model, tea.Cmd) {
	idx, ok := m.blockAt(m.cursor.Day, m.cursor.Period)
	if !ok {
		return m, nil
	}
	key := schedule.Key{TableID: m.tableID, Index: idx}
	dx := float64(dDay * m.geometry.CellWidth)
	dy := float64(dPeriod * m.geometry.CellHeight)

	switch m.engine.Drop(key.String(), dx, dy) {
	case drag.ResultMoved:
		m.moveCursor(dDay, dPeriod, "block moved")
	case drag.ResultRejected:
		return m, commands.Status("Cannot move there")
	}
	return m, nil
}

func (m Model) deleteAtCursor() (tea.Model, tea.Cmd) {
	n := m.callbacks.OnDeleteBlock(m.tableID, m.cursorDay(), m.cursor.Period)
	if n == 0 {
		return m, nil
	}
	return m, commands.Status("Removed %d block(s)", n)
}

func (m Model) cycleTable(step int) (tea.Model, tea.Cmd) {
	ids := m.store.TableIDs()
	if len(ids) < 2 {
		return m, nil
	}
	next := (m.tableIndex() + step + len(ids)) % len(ids)
	m.setTable(ids[next])
	return m, nil
}

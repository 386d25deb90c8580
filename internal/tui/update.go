package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/search"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The store may drop the active table from outside the key handlers.
	m.ensureTable()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		logKeyPress(m.logger, msg, m.mode)
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		logMouse(m.logger, msg)
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		m.search.resize(m.width, m.height)
		return m, nil

	case commands.CatalogLoadedMsg:
		m.catalog = catalogLoaded
		m.catalogErr = nil
		m.lectures = msg.Lectures
		m.majors = search.Majors(msg.Lectures)
		m.search.setCatalog(m.lectures, m.majors)
		m.logger.Debug().Int("lectures", len(msg.Lectures)).Msg("catalog loaded")
		return m, commands.Status("%d lectures loaded", len(msg.Lectures))

	case commands.CatalogErrMsg:
		m.catalog = catalogFailed
		m.catalogErr = msg.Err
		m.logger.Error().Err(msg.Err).Msg("catalog load failed")
		return m.showError(fmt.Errorf("%w (press r to retry)", msg.Err))

	case commands.ErrMsg:
		return m.showError(msg.Err)

	case commands.CopiedMsg:
		return m, commands.Status("Copied %d lines", msg.Lines)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(statusDuration)
		return m, clearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	if m.mode == ModeSearch {
		return m.updateSearchInput(msg)
	}
	return m, nil
}

func (m Model) showError(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusTime = time.Now().Add(errorDuration)
	return m, clearStatusAfter(errorDuration)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// retryCatalog reissues the catalog load after a failure.
func (m Model) retryCatalog() (tea.Model, tea.Cmd) {
	if m.loader == nil {
		return m.showError(errors.New("no catalog source configured"))
	}
	if m.catalog != catalogFailed {
		return m, nil
	}
	m.catalog = catalogLoading
	m.catalogErr = nil
	m.statusMsg = "Loading catalog..."
	return m, commands.LoadCatalog(m.loader)
}

// drainClicks opens the search dialog for a pending empty-slot click.
func (m Model) drainClicks() (Model, bool) {
	select {
	case req := <-m.clicks:
		if req.tableID != m.tableID {
			m.setTable(req.tableID)
		}
		m.cursor = Position{Day: req.day.Index(), Period: req.period}
		m.ensureCursorVisible()
		m.openSearch(req.day.Index(), req.period)
		return m, true
	default:
		return m, false
	}
}

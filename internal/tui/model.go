// Package tui provides the terminal user interface for timetable.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/drag"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/schedule"
	"github.com/javiermolinar/timetable/internal/tui/commands"
	"github.com/javiermolinar/timetable/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeGrid   Mode = iota
	ModeDrag        // A block is held by the mouse
	ModeSearch      // Search dialog open
)

func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return "grid"
	case ModeDrag:
		return "drag"
	case ModeSearch:
		return "search"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Position represents a cursor position in the grid.
type Position struct {
	Day    int // column index, 0 = Monday
	Period int // 1-based
}

type catalogState int

const (
	catalogIdle catalogState = iota
	catalogLoading
	catalogLoaded
	catalogFailed
)

// slotRequest is an empty-slot click waiting to open the search dialog.
type slotRequest struct {
	tableID string
	day     lecture.Day
	period  int
}

// dragState is the mouse side of an active drag. The engine owns the key.
type dragState struct {
	key     schedule.Key
	block   lecture.Block
	color   string
	pressX  int
	pressY  int
	node    grid.Rect
	preview drag.Preview
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store     *schedule.Store
	callbacks *schedule.Callbacks
	engine    *drag.Engine
	loader    commands.CatalogLoader
	config    *config.Config
	geometry  grid.Geometry
	logger    zerolog.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	tableID string
	cursor  Position
	mode    Mode
	scroll  int // periods hidden above the viewport
	drag    dragState

	// Empty-slot clicks routed through the callbacks
	clicks chan slotRequest

	// Catalog
	catalog    catalogState
	catalogErr error
	lectures   []lecture.Lecture
	majors     []string

	search searchDialog
	cache  *renderCache

	unsubscribe func()

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time
	err        error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used for key, mouse and drag events.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// New creates a new TUI model over a store. loader may be nil, in which
// case the search dialog stays empty.
func New(store *schedule.Store, loader commands.CatalogLoader, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	// Load theme from config
	t, themeErr := theme.Resolve(cfg.UI.Theme)
	if themeErr != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	m := &Model{
		store:    store,
		loader:   loader,
		config:   cfg,
		geometry: cfg.Geometry(),
		logger:   zerolog.Nop(),
		theme:    t,
		styles:   styles,
		cursor:   Position{Day: 0, Period: 1},
		mode:     ModeGrid,
		clicks:   make(chan slotRequest, 1),
		cache:    newRenderCache(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if themeErr != nil {
		m.logger.Warn().Err(themeErr).Str("theme", cfg.UI.Theme).Msg("theme unavailable, using mocha")
	}

	m.engine = drag.NewEngine(store, m.geometry, drag.WithLogger(m.logger))
	clicks := m.clicks
	m.callbacks = schedule.NewCallbacks(store, func(tableID string, day lecture.Day, period int) {
		select {
		case clicks <- slotRequest{tableID: tableID, day: day, period: period}:
		default:
		}
	})
	m.search = newSearchDialog(styles, cfg.Search.PageSize)

	cache := m.cache
	m.unsubscribe = store.Subscribe(func(schedule.Map) {
		cache.invalidate()
	})

	if ids := store.TableIDs(); len(ids) > 0 {
		m.tableID = ids[0]
	}
	if loader != nil {
		m.catalog = catalogLoading
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	return commands.LoadCatalog(m.loader)
}

// Close detaches the model from the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Run starts the TUI. Options such as WithLogger apply to the model.
func Run(store *schedule.Store, loader commands.CatalogLoader, cfg *config.Config, opts ...ModelOption) error {
	model := New(store, loader, cfg, opts...)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// blocks returns the active table's blocks, rebuilding the render cache if
// the store changed.
func (m Model) blocks() []lecture.Block {
	m.cache.refresh(m.store, m.tableID)
	return m.cache.blocks
}

// blockAt returns the index of the block drawn at day column and period.
func (m Model) blockAt(day, period int) (int, bool) {
	m.cache.refresh(m.store, m.tableID)
	return m.cache.blockAt(day, period)
}

// tableIndex returns the position of the active table in creation order.
func (m Model) tableIndex() int {
	for i, id := range m.store.TableIDs() {
		if id == m.tableID {
			return i
		}
	}
	return 0
}

// setTable switches the active table and clamps the cursor.
func (m *Model) setTable(id string) {
	if id == m.tableID {
		return
	}
	m.tableID = id
	m.cache.invalidate()
	m.logger.Debug().Str("table", id).Msg("table switched")
}

// ensureTable falls back to the first table if the active one disappeared.
func (m *Model) ensureTable() {
	if _, ok := m.store.Table(m.tableID); ok {
		return
	}
	if ids := m.store.TableIDs(); len(ids) > 0 {
		m.setTable(ids[0])
	}
}

func (m *Model) setMode(to Mode, reason string) {
	if m.mode == to {
		return
	}
	logModeChange(m.logger, m.mode, to, reason)
	m.mode = to
}

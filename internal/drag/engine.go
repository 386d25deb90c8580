// Package drag turns pointer drags on the grid into block relocations.
package drag

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/schedule"
)

// ErrAlreadyDragging is returned by Start while another drag is active.
var ErrAlreadyDragging = errors.New("already dragging a block")

// State is the engine state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Result describes what a drag end did.
type Result int

const (
	// ResultNoop means the block did not move a whole cell.
	ResultNoop Result = iota
	// ResultMoved means the block was relocated.
	ResultMoved
	// ResultRejected means the target or identity was invalid; the block
	// snaps back.
	ResultRejected
)

func (r Result) String() string {
	switch r {
	case ResultMoved:
		return "moved"
	case ResultRejected:
		return "rejected"
	default:
		return "noop"
	}
}

// Preview is the live snapped position shown while dragging.
type Preview struct {
	Offset      grid.Point // clamped, cell-aligned offset
	DayDelta    int
	PeriodDelta int
}

// Engine is a two-state machine: Idle until Start, Dragging until End or
// Cancel. Only End writes to the store.
type Engine struct {
	mu    sync.Mutex
	state State
	key   schedule.Key

	store        *schedule.Store
	geometry     grid.Geometry
	periodBounds bool
	logger       zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithPeriodBounds toggles rejection of moves that push a block outside the
// valid periods. Enabled by default.
func WithPeriodBounds(enabled bool) Option {
	return func(e *Engine) {
		e.periodBounds = enabled
	}
}

// NewEngine creates an idle engine committing to store.
func NewEngine(store *schedule.Store, geometry grid.Geometry, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		geometry:     geometry,
		periodBounds: true,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Active returns the key being dragged, if any.
func (e *Engine) Active() (schedule.Key, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.key, e.state == Dragging
}

// Start begins dragging the block identified by key. The key is not
// validated here; End rejects stale keys.
func (e *Engine) Start(key schedule.Key) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Dragging {
		return ErrAlreadyDragging
	}
	e.state = Dragging
	e.key = key
	e.logger.Debug().Str("key", key.String()).Msg("drag started")
	return nil
}

// Cancel abandons the current drag without committing.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Idle
	e.key = schedule.Key{}
}

// Preview computes the snapped, clamped offset for a raw delta. The deltas
// are rounded, which can disagree with the floored commit near a cell
// boundary.
func (e *Engine) Preview(dx, dy float64, container, node grid.Rect) Preview {
	offset := e.geometry.Clamp(grid.Point{X: dx, Y: dy}, container, node)
	return Preview{
		Offset:      offset,
		DayDelta:    e.geometry.Snap(offset.X, grid.AxisX),
		PeriodDelta: e.geometry.Snap(offset.Y, grid.AxisY),
	}
}

// End finishes the drag with the raw pointer delta and commits the move.
// The engine is Idle afterwards whatever the result.
func (e *Engine) End(dx, dy float64) Result {
	e.mu.Lock()
	if e.state != Dragging {
		e.mu.Unlock()
		return ResultNoop
	}
	key := e.key
	e.state = Idle
	e.key = schedule.Key{}
	e.mu.Unlock()

	return e.commit(key, dx, dy)
}

// Drop is Start followed by End for a string identity such as
// "schedule-1:0". Unparseable identities are rejected.
func (e *Engine) Drop(id string, dx, dy float64) Result {
	key, err := schedule.ParseKey(id)
	if err != nil {
		e.logger.Debug().Err(err).Msg("drag rejected")
		return ResultRejected
	}
	if err := e.Start(key); err != nil {
		return ResultRejected
	}
	return e.End(dx, dy)
}

func (e *Engine) commit(key schedule.Key, dx, dy float64) Result {
	dayDelta, periodDelta := e.geometry.Commit(dx, dy)
	if dayDelta == 0 && periodDelta == 0 {
		return ResultNoop
	}

	log := e.logger.Debug().
		Str("key", key.String()).
		Int("day_delta", dayDelta).
		Int("period_delta", periodDelta)

	// Bounds are checked against the block held when the move is applied,
	// under the store lock.
	reason := "stale key"
	moved := e.store.MoveBlockFunc(key.TableID, key.Index, dayDelta, periodDelta, func(block lecture.Block) bool {
		newDay := block.Day.Index() + dayDelta
		if block.Day.Index() < 0 || newDay < 0 || newDay >= lecture.DayCount {
			reason = "day out of range"
			return false
		}
		if e.periodBounds && (!e.geometry.InPeriodRange(block.Start()+periodDelta) || !e.geometry.InPeriodRange(block.End()+periodDelta)) {
			reason = "period out of range"
			return false
		}
		return true
	})
	if !moved {
		log.Msg("drag rejected: " + reason)
		return ResultRejected
	}
	log.Msg("block moved")
	return ResultMoved
}

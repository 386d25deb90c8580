// Package schedule owns the timetable state: every table and the blocks
// placed on it. All reads and writes go through a Store.
package schedule

import (
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// DefaultTableID is the table created when a store is seeded with nothing.
const DefaultTableID = "schedule-1"

// Map maps a table id to its blocks in display order.
// Snapshots returned by the Store are shared and must not be mutated.
type Map map[string][]lecture.Block

// Clone returns a new outer map sharing every table slice with m.
func (m Map) Clone() Map {
	if m == nil {
		return Map{}
	}
	return maps.Clone(m)
}

// Listener is called after every committed update with the new snapshot.
type Listener func(Map)

type subscription struct {
	id int
	fn Listener
}

// Store is the single authoritative holder of the schedule map.
// Updates are serialized and listeners are notified synchronously, in
// commit order, after each commit. Listeners may read the store but must not
// update it from inside the callback.
type Store struct {
	mu      sync.Mutex
	current Map
	order   []string // table ids in creation order
	subs    []subscription
	nextSub int

	// notifyMu keeps notifications in commit order across goroutines.
	notifyMu sync.Mutex

	newID  func() string
	logger zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithIDGenerator overrides how new table ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates a store seeded with the given map. An empty seed yields a
// single empty table with DefaultTableID.
func NewStore(seed Map, opts ...Option) *Store {
	s := &Store{
		newID:  newTableID,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(seed) == 0 {
		seed = Map{DefaultTableID: nil}
	}
	s.current = seed.Clone()
	s.syncOrder()
	return s
}

// newTableID returns a time-ordered table id.
func newTableID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "schedule-" + uuid.NewString()
	}
	return "schedule-" + id.String()
}

// Map returns the current snapshot.
func (s *Store) Map() Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Table returns the blocks of one table.
func (s *Store) Table(tableID string) ([]lecture.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocks, ok := s.current[tableID]
	return blocks, ok
}

// TableIDs returns table ids in creation order.
func (s *Store) TableIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Len returns the number of tables.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current)
}

// Subscribe registers a listener and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Update atomically replaces the map with fn's result and notifies every
// listener exactly once. fn receives the prior snapshot and must return a
// new map rather than mutating the one it was given.
func (s *Store) Update(fn func(Map) Map) {
	s.apply(func(m Map) (Map, bool) {
		return fn(m), true
	})
}

// apply commits fn's result only when it reports a change. Helpers use it so
// that no-op mutations do not notify.
func (s *Store) apply(fn func(Map) (Map, bool)) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.current)
	if !changed {
		s.mu.Unlock()
		return false
	}
	if next == nil {
		next = Map{}
	}
	s.current = next
	s.syncOrder()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	s.logger.Debug().Int("tables", len(next)).Msg("schedule updated")
	for _, sub := range subs {
		sub.fn(next)
	}
	return true
}

// syncOrder drops deleted ids and appends new ones. Must hold mu.
func (s *Store) syncOrder() {
	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		_, ok := s.current[id]
		return !ok
	})
	var added []string
	for id := range s.current {
		if !slices.Contains(s.order, id) {
			added = append(added, id)
		}
	}
	slices.Sort(added)
	s.order = append(s.order, added...)
}

// AddBlocks appends blocks to a table. Missing tables are ignored.
func (s *Store) AddBlocks(tableID string, blocks ...lecture.Block) bool {
	if len(blocks) == 0 {
		return false
	}
	return s.apply(func(m Map) (Map, bool) {
		current, ok := m[tableID]
		if !ok {
			return m, false
		}
		next := m.Clone()
		next[tableID] = slices.Concat(current, blocks)
		return next, true
	})
}

// AddLecture converts a lecture into blocks and appends them to a table.
// It returns the number of blocks added.
func (s *Store) AddLecture(tableID string, l *lecture.Lecture) int {
	if l == nil {
		return 0
	}
	blocks := l.Blocks()
	if !s.AddBlocks(tableID, blocks...) {
		return 0
	}
	return len(blocks)
}

// RemoveBlocks removes every block of a table matching pred and returns the
// number removed.
func (s *Store) RemoveBlocks(tableID string, pred func(lecture.Block) bool) int {
	removed := 0
	s.apply(func(m Map) (Map, bool) {
		current, ok := m[tableID]
		if !ok {
			return m, false
		}
		kept := make([]lecture.Block, 0, len(current))
		for _, b := range current {
			if pred(b) {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		if removed == 0 {
			return m, false
		}
		next := m.Clone()
		next[tableID] = kept
		return next, true
	})
	return removed
}

// RemoveAt removes whatever blocks occupy the given slot of a table.
func (s *Store) RemoveAt(tableID string, day lecture.Day, period int) int {
	return s.RemoveBlocks(tableID, func(b lecture.Block) bool {
		return b.Contains(day, period)
	})
}

// MoveBlock relocates the block at index by whole days and periods. Moves
// that would leave the day columns, address a missing table or index, or
// change nothing are ignored. Periods are not bounds-checked here.
func (s *Store) MoveBlock(tableID string, index, dayDelta, periodDelta int) bool {
	return s.MoveBlockFunc(tableID, index, dayDelta, periodDelta, nil)
}

// MoveBlockFunc is MoveBlock with an extra check. allow sees the block as
// it is when the move is applied, under the same lock as the write, and a
// false result leaves the store untouched.
func (s *Store) MoveBlockFunc(tableID string, index, dayDelta, periodDelta int, allow func(lecture.Block) bool) bool {
	if dayDelta == 0 && periodDelta == 0 {
		return false
	}
	return s.apply(func(m Map) (Map, bool) {
		current, ok := m[tableID]
		if !ok || index < 0 || index >= len(current) {
			return m, false
		}
		block := current[index]
		if allow != nil && !allow(block) {
			return m, false
		}
		newDay := block.Day.Index() + dayDelta
		if block.Day.Index() < 0 || newDay < 0 || newDay >= lecture.DayCount {
			return m, false
		}

		blocks := slices.Clone(current)
		blocks[index] = block.Shift(newDay, periodDelta)
		next := m.Clone()
		next[tableID] = blocks
		return next, true
	})
}

// AddTable creates a new empty table and returns its id.
func (s *Store) AddTable() string {
	var id string
	s.apply(func(m Map) (Map, bool) {
		id = s.uniqueID(m)
		next := m.Clone()
		next[id] = nil
		return next, true
	})
	return id
}

// DuplicateTable copies a table's blocks into a new table. The copy is a
// distinct slice; lectures are shared since they are immutable.
func (s *Store) DuplicateTable(sourceID string) (string, bool) {
	var id string
	ok := s.apply(func(m Map) (Map, bool) {
		source, ok := m[sourceID]
		if !ok {
			return m, false
		}
		id = s.uniqueID(m)
		next := m.Clone()
		next[id] = slices.Clone(source)
		if next[id] == nil {
			next[id] = []lecture.Block{}
		}
		return next, true
	})
	return id, ok
}

// DeleteTable removes a table. Deleting a missing table or the last
// remaining table is a no-op.
func (s *Store) DeleteTable(tableID string) bool {
	return s.apply(func(m Map) (Map, bool) {
		if _, ok := m[tableID]; !ok || len(m) <= 1 {
			return m, false
		}
		next := m.Clone()
		delete(next, tableID)
		return next, true
	})
}

// uniqueID generates an id not present in m. Must hold mu.
func (s *Store) uniqueID(m Map) string {
	base := s.newID()
	id := base
	for n := 2; ; n++ {
		if _, exists := m[id]; !exists {
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

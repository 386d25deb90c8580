package schedule

import "github.com/javiermolinar/timetable/internal/lecture"

// Callbacks are the actions the grid and search views trigger.
type Callbacks struct {
	store *Store

	// TimeClick receives empty-slot clicks, typically to open a search
	// prefiltered to that slot. Nil means ignore.
	TimeClick func(tableID string, day lecture.Day, period int)
}

// NewCallbacks binds the view callbacks to a store.
func NewCallbacks(store *Store, timeClick func(tableID string, day lecture.Day, period int)) *Callbacks {
	return &Callbacks{store: store, TimeClick: timeClick}
}

// OnScheduleTimeClick signals intent to search for a lecture in a slot.
func (c *Callbacks) OnScheduleTimeClick(tableID string, day lecture.Day, period int) {
	if c.TimeClick != nil {
		c.TimeClick(tableID, day, period)
	}
}

// OnDeleteBlock removes whatever block occupies the slot.
func (c *Callbacks) OnDeleteBlock(tableID string, day lecture.Day, period int) int {
	return c.store.RemoveAt(tableID, day, period)
}

// OnAddLecture places a lecture on a table.
func (c *Callbacks) OnAddLecture(tableID string, l *lecture.Lecture) int {
	return c.store.AddLecture(tableID, l)
}

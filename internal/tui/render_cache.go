package tui

import (
	"sync/atomic"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/lecture"
	"github.com/javiermolinar/timetable/internal/schedule"
)

type cellKey struct {
	day    int
	period int
}

// renderCache holds the active table's blocks, their colors and a cell
// index. Store listeners mark it dirty from any goroutine; it is rebuilt on
// the next read.
type renderCache struct {
	dirty   atomic.Bool
	tableID string
	blocks  []lecture.Block
	colors  []string
	cells   map[cellKey]int
}

func newRenderCache() *renderCache {
	c := &renderCache{}
	c.dirty.Store(true)
	return c
}

func (c *renderCache) invalidate() {
	c.dirty.Store(true)
}

// refresh rebuilds the cache when dirty or when the table changed.
func (c *renderCache) refresh(store *schedule.Store, tableID string) {
	if !c.dirty.Load() && c.tableID == tableID {
		return
	}
	// Clear first so an update racing the rebuild marks it dirty again.
	c.dirty.Store(false)

	blocks, _ := store.Table(tableID)
	c.tableID = tableID
	c.blocks = blocks
	c.colors = grid.Colors(blocks)
	c.cells = make(map[cellKey]int, len(blocks)*3)
	for i, b := range blocks {
		day := b.Day.Index()
		if day < 0 {
			continue
		}
		// Later blocks draw over earlier ones.
		for _, p := range b.Range {
			c.cells[cellKey{day: day, period: p}] = i
		}
	}
}

func (c *renderCache) blockAt(day, period int) (int, bool) {
	i, ok := c.cells[cellKey{day: day, period: period}]
	return i, ok
}

func (c *renderCache) color(i int) string {
	if i < 0 || i >= len(c.colors) {
		return grid.Palette[0]
	}
	return c.colors[i]
}

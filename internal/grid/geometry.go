// Package grid maps between grid cells (day, period) and drawing
// coordinates, and snaps drag motion to whole cells.
//
// Units are abstract: pixels for a browser-like canvas, character cells
// for the terminal UI. Everything here is pure and stateless.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// ErrInvalidGeometry is returned by Validate.
var ErrInvalidGeometry = errors.New("invalid grid geometry")

// DefaultPeriods is the number of class periods in a day.
const DefaultPeriods = 24

// Axis selects a grid dimension.
type Axis int

const (
	AxisX Axis = iota // days
	AxisY             // periods
)

// Point is a position or a delta.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Geometry describes cell sizes and the header band around the grid.
type Geometry struct {
	CellWidth    int // width of one day column
	CellHeight   int // height of one period row
	HeaderWidth  int // left column holding period labels
	HeaderHeight int // top row holding day labels
	Periods      int // number of period rows
}

// Default returns the canvas geometry: 80x30 cells under a 120x40 header.
func Default() Geometry {
	return Geometry{
		CellWidth:    80,
		CellHeight:   30,
		HeaderWidth:  120,
		HeaderHeight: 40,
		Periods:      DefaultPeriods,
	}
}

// Validate checks that every dimension is usable.
func (g Geometry) Validate() error {
	switch {
	case g.CellWidth <= 0:
		return fmt.Errorf("%w: cell width must be positive, got %d", ErrInvalidGeometry, g.CellWidth)
	case g.CellHeight <= 0:
		return fmt.Errorf("%w: cell height must be positive, got %d", ErrInvalidGeometry, g.CellHeight)
	case g.HeaderWidth < 0 || g.HeaderHeight < 0:
		return fmt.Errorf("%w: header size cannot be negative", ErrInvalidGeometry)
	case g.Periods <= 0:
		return fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidGeometry, g.Periods)
	}
	return nil
}

// Width returns the full width including the header column.
func (g Geometry) Width() int {
	return g.HeaderWidth + g.CellWidth*lecture.DayCount
}

// Height returns the full height including the header row.
func (g Geometry) Height() int {
	return g.HeaderHeight + g.CellHeight*g.Periods
}

// CellOf returns the top-left corner of the cell for day and period.
func (g Geometry) CellOf(day lecture.Day, period int) (x, y int) {
	x = g.HeaderWidth + g.CellWidth*day.Index()
	y = g.HeaderHeight + g.CellHeight*(period-1)
	return x, y
}

// CellAt hit-tests a point. ok is false inside the headers or outside the
// grid.
func (g Geometry) CellAt(x, y int) (day lecture.Day, period int, ok bool) {
	if x < g.HeaderWidth || y < g.HeaderHeight {
		return "", 0, false
	}
	col := (x - g.HeaderWidth) / g.CellWidth
	row := (y - g.HeaderHeight) / g.CellHeight
	day, ok = lecture.DayAt(col)
	if !ok || row >= g.Periods {
		return "", 0, false
	}
	return day, row + 1, true
}

// InPeriodRange reports whether p is a valid period.
func (g Geometry) InPeriodRange(p int) bool {
	return p >= 1 && p <= g.Periods
}

func (g Geometry) cellSize(axis Axis) float64 {
	if axis == AxisY {
		return float64(g.CellHeight)
	}
	return float64(g.CellWidth)
}

// Snap converts a raw delta into whole cells, rounding to the nearest.
// Exact halves round up, so half a cell left stays put while half a cell
// right moves one cell, the way browser drag snapping behaves.
func (g Geometry) Snap(raw float64, axis Axis) int {
	return int(math.Floor(raw/g.cellSize(axis) + 0.5))
}

// Clamp snaps a live drag delta to whole cells and bounds it so the node
// stays right of the header column, below the header row, and inside the
// container. Each axis is bounded independently.
func (g Geometry) Clamp(delta Point, container, node Rect) Point {
	x := float64(g.Snap(delta.X, AxisX)) * g.cellSize(AxisX)
	y := float64(g.Snap(delta.Y, AxisY)) * g.cellSize(AxisY)

	minX := container.Left - node.Left + float64(g.HeaderWidth) + 1
	minY := container.Top - node.Top + float64(g.HeaderHeight) + 1
	maxX := container.Right - node.Right
	maxY := container.Bottom - node.Bottom

	return Point{
		X: math.Min(math.Max(x, minX), maxX),
		Y: math.Min(math.Max(y, minY), maxY),
	}
}

// Commit converts a final drag delta into whole days and periods. It floors
// rather than rounds, so it can differ from the Snap preview near a cell
// boundary.
func (g Geometry) Commit(dx, dy float64) (dayDelta, periodDelta int) {
	dayDelta = int(math.Floor(dx / g.cellSize(AxisX)))
	periodDelta = int(math.Floor(dy / g.cellSize(AxisY)))
	return dayDelta, periodDelta
}

// NodeRect returns the box of a block spanning periods first..last on day.
func (g Geometry) NodeRect(day lecture.Day, first, last int) Rect {
	x, y := g.CellOf(day, first)
	return Rect{
		Left:   float64(x),
		Top:    float64(y),
		Right:  float64(x + g.CellWidth),
		Bottom: float64(y + g.CellHeight*(last-first+1)),
	}
}

// Bounds returns the box of the whole grid including headers.
func (g Geometry) Bounds() Rect {
	return Rect{Right: float64(g.Width()), Bottom: float64(g.Height())}
}

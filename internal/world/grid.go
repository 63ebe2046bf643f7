// Package world holds the fixed-size cell grid the sandbox runs on,
// the dig/build/pick mutations and the dirty-region tracker.
package world

import (
	"fmt"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
)

// Axis selects which grid extent Range clamps against.
type Axis int

const (
	AxisX Axis = iota // Columns, extent is the grid width
	AxisY             // Rows, extent is the grid height
)

// Grid is a width x height array of cells. Row 0 is the top.
// Bounds are fixed at construction.
type Grid struct {
	width  int
	height int
	cells  []Cell
	reg    *kinds.Registry

	// dirtyBounds covers every cell whose Dirty flag is set.
	dirtyBounds core.Rect
}

// NewGrid creates a grid filled with air.
// Returns ErrInvalidDimensions if either dimension is not positive.
func NewGrid(width, height int, reg *kinds.Registry) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if reg == nil {
		return nil, fmt.Errorf("world: nil kind registry")
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		reg:    reg,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Registry returns the kind registry cells resolve against.
func (g *Grid) Registry() *kinds.Registry { return g.reg }

// Bounds returns the grid as a rectangle at the origin.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.width, g.height)
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return y*g.width + x, nil
}

// Get returns a copy of the cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	i, err := g.index(x, y)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

// Set replaces the kind at (x, y), resets health to the kind's maximum,
// clears any dropped item and marks the cell dirty.
func (g *Grid) Set(x, y int, kind kinds.KindID) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	def, err := g.reg.Get(kind)
	if err != nil {
		return err
	}
	g.cells[i] = Cell{Kind: kind, Health: def.Health}
	g.markIndex(i, x, y)
	return nil
}

// IsSolid reports whether the cell at (x, y) blocks movement.
func (g *Grid) IsSolid(x, y int) (bool, error) {
	i, err := g.index(x, y)
	if err != nil {
		return false, err
	}
	return g.reg.Solid(g.cells[i].Kind), nil
}

// Range returns the indices between low and high clipped to the axis extent,
// descending when low > high. See core.ClampedRange.
func (g *Grid) Range(low, high int, axis Axis) []int {
	extent := g.width
	if axis == AxisY {
		extent = g.height
	}
	return core.ClampedRange(low, high, extent)
}

// GroundHeight returns the first solid row of column x scanning from the top.
// A column with no solid cell reports 0. x is clamped into the grid.
func (g *Grid) GroundHeight(x int) int {
	x = core.Clamp(x, 0, g.width-1)
	for _, y := range g.Range(0, g.height, AxisY) {
		if g.reg.Solid(g.cells[y*g.width+x].Kind) {
			return y
		}
	}
	return 0
}

// MarkDirty flags every in-bounds cell of r as changed.
func (g *Grid) MarkDirty(r core.Rect) {
	r = r.Clip(g.width, g.height)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.markIndex(y*g.width+x, x, y)
		}
	}
}

func (g *Grid) markIndex(i, x, y int) {
	g.cells[i].Dirty = true
	g.dirtyBounds = g.dirtyBounds.Union(core.NewRect(x, y, 1, 1))
}

// DirtyBounds returns a rectangle covering every dirty cell.
// It is empty when nothing changed.
func (g *Grid) DirtyBounds() core.Rect {
	return g.dirtyBounds
}

// ClearDirty resets every dirty flag.
func (g *Grid) ClearDirty() {
	r := g.dirtyBounds
	for y := r.Y; y < r.Bottom(); y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x := r.X; x < r.Right(); x++ {
			row[x].Dirty = false
		}
	}
	g.dirtyBounds = core.Rect{}
}

// Clone returns an independent copy sharing the immutable registry.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

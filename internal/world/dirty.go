package world

import (
	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
)

// Occupant is something drawn over the grid that tracks its own dirty region.
type Occupant interface {
	DirtyRect() (core.Rect, bool)
	ClearDirty()
}

// CellUpdate is the new content of one changed cell.
type CellUpdate struct {
	X, Y     int
	Kind     kinds.KindID
	Pickable bool
	Drop     kinds.KindID
}

// Frame lists what changed since the previous Collect.
type Frame struct {
	// Full is set on the first frame and after Invalidate; renderers
	// redraw everything and Rects/Cells are empty.
	Full bool

	// Rects are horizontal runs of dirty cells, one row high, top to bottom.
	Rects []core.Rect

	// Cells holds the new state of every cell covered by Rects.
	Cells []CellUpdate

	// Player is the occupant's dirty rectangle when PlayerDirty is set.
	Player      core.Rect
	PlayerDirty bool
}

// Empty reports whether the frame carries nothing to redraw.
func (f Frame) Empty() bool {
	return !f.Full && len(f.Rects) == 0 && !f.PlayerDirty
}

// Tracker turns grid and occupant dirty flags into frames.
// Each Collect clears the flags it reported.
type Tracker struct {
	full bool
}

// NewTracker creates a tracker whose first frame is a full redraw.
func NewTracker() *Tracker {
	return &Tracker{full: true}
}

// Invalidate forces the next frame to be a full redraw.
func (t *Tracker) Invalidate() {
	t.full = true
}

// Collect gathers dirty cells of g and the dirty region of occ (may be nil),
// then clears both.
func (t *Tracker) Collect(g *Grid, occ Occupant) Frame {
	var f Frame

	if occ != nil {
		if r, ok := occ.DirtyRect(); ok {
			f.Player = r
			f.PlayerDirty = true
		}
		occ.ClearDirty()
	}

	if t.full {
		t.full = false
		f.Full = true
		g.ClearDirty()
		return f
	}

	b := g.DirtyBounds()
	for y := b.Y; y < b.Bottom(); y++ {
		start := -1
		for x := b.X; x <= b.Right(); x++ {
			dirty := x < b.Right() && g.cells[y*g.width+x].Dirty
			if dirty {
				c := g.cells[y*g.width+x]
				f.Cells = append(f.Cells, CellUpdate{X: x, Y: y, Kind: c.Kind, Pickable: c.Pickable, Drop: c.Drop})
				if start < 0 {
					start = x
				}
				continue
			}
			if start >= 0 {
				f.Rects = append(f.Rects, core.NewRect(start, y, x-start, 1))
				start = -1
			}
		}
	}
	g.ClearDirty()
	return f
}

// FrameSink receives every collected frame together with the grid it was
// collected from and the occupant's current cells. Publish runs on the
// goroutine that owns g and must copy anything it keeps.
type FrameSink interface {
	Publish(g *Grid, f Frame, occupied core.Rect)
}

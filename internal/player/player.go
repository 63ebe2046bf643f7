// Package player moves a box through the world grid and lets it dig,
// build and collect drops within reach.
package player

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/inventory"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// eps absorbs float error when converting positions to cells.
const eps = 1e-9

// Clock returns the current time. Tests inject a fake.
type Clock func() time.Time

// Player is the controllable box. X, Y is its top-left corner in cells.
type Player struct {
	X, Y   float64
	VX, VY float64

	params Params
	grid   *world.Grid
	inv    *inventory.Inventory
	clock  Clock
	last   time.Time

	dirty     bool
	dirtyRect core.Rect
}

// New places a player on the surface at the middle column of g.
// A nil clock uses time.Now.
func New(g *world.Grid, params Params, clock Clock) *Player {
	if clock == nil {
		clock = time.Now
	}
	p := &Player{
		params: params.normalized(),
		grid:   g,
		inv:    inventory.New(),
		clock:  clock,
	}
	p.X, p.Y = p.spawnPoint()
	p.markMoved(p.Occupied())
	return p
}

func (p *Player) spawnPoint() (x, y float64) {
	col := p.grid.Width() / 2
	row := p.grid.GroundHeight(col) - p.params.Height
	return float64(col), float64(max(row, 0))
}

// Respawn moves the player onto the ground of the middle column and stops it.
func (p *Player) Respawn() {
	p.SetPosition(p.spawnPoint())
	p.VX, p.VY = 0, 0
}

// SetPosition teleports the player and marks both regions dirty.
func (p *Player) SetPosition(x, y float64) {
	old := p.Occupied()
	p.X, p.Y = x, y
	p.markMoved(old)
}

// Params returns the player's tuning.
func (p *Player) Params() Params {
	return p.params
}

// Inventory returns the items the player carries.
func (p *Player) Inventory() *inventory.Inventory {
	return p.inv
}

// Size returns the box dimensions in cells.
func (p *Player) Size() (w, h int) {
	return p.params.Width, p.params.Height
}

func (p *Player) colSpan(x float64) (lo, hi int) {
	lo = int(math.Floor(x + eps))
	hi = int(math.Ceil(x+float64(p.params.Width)-eps)) - 1
	return lo, hi
}

func (p *Player) rowSpan(y float64) (lo, hi int) {
	lo = int(math.Floor(y + eps))
	hi = int(math.Ceil(y+float64(p.params.Height)-eps)) - 1
	return lo, hi
}

// Occupied returns every cell the box overlaps.
func (p *Player) Occupied() core.Rect {
	c0, c1 := p.colSpan(p.X)
	r0, r1 := p.rowSpan(p.Y)
	return core.NewRect(c0, r0, c1-c0+1, r1-r0+1)
}

// Reach returns the rectangle of cells the player can act on.
func (p *Player) Reach() core.Rect {
	return p.Occupied().Expand(p.params.ReachX, p.params.ReachY)
}

// DirtyRect returns the union of old and new occupied cells of the last
// step that moved the player.
func (p *Player) DirtyRect() (core.Rect, bool) {
	return p.dirtyRect, p.dirty
}

// ClearDirty marks the player as drawn.
func (p *Player) ClearDirty() {
	p.dirty = false
	p.dirtyRect = core.Rect{}
}

// blocked reports whether (x, y) stops movement. Cells outside the grid
// block like walls.
func (p *Player) blocked(x, y int) bool {
	solid, err := p.grid.IsSolid(x, y)
	return err != nil || solid
}

func isIntegral(v float64) bool {
	return math.Abs(v-math.Round(v)) < eps
}

// Grounded reports whether the row directly below the box is solid.
func (p *Player) Grounded() bool {
	bottom := p.Y + float64(p.params.Height)
	if !isIntegral(bottom) {
		return false
	}
	row := int(math.Round(bottom))
	c0, c1 := p.colSpan(p.X)
	for x := c0; x <= c1; x++ {
		if p.blocked(x, row) {
			return true
		}
	}
	return false
}

// ceilingAbove reports whether the row directly above the box is solid.
func (p *Player) ceilingAbove() bool {
	if !isIntegral(p.Y) {
		return false
	}
	row := int(math.Round(p.Y)) - 1
	c0, c1 := p.colSpan(p.X)
	for x := c0; x <= c1; x++ {
		if p.blocked(x, row) {
			return true
		}
	}
	return false
}

func (p *Player) markMoved(old core.Rect) {
	r := old.Union(p.Occupied())
	p.grid.MarkDirty(r)
	p.dirty = true
	p.dirtyRect = r
}

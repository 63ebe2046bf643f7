package sandbox

import (
	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// dropGlyph marks a cell holding an item that can be picked up.
const dropGlyph = '*'

// viewport is the camera over the world plus a cached terrain canvas the
// size of the visible area. The canvas is patched from dirty frames and
// redrawn only when the camera moves or the screen resizes.
type viewport struct {
	x, y   int // World cell at the top-left corner
	w, h   int
	canvas *core.Screen
	valid  bool // Canvas matches the world at x, y

	// animated holds visible cells whose kind cycles glyph frames.
	animated map[core.Point]kinds.KindID
}

func newViewport(w, h int) viewport {
	w, h = max(w, 0), max(h, 0)
	return viewport{
		w:        w,
		h:        h,
		canvas:   core.NewScreen(w, h),
		animated: make(map[core.Point]kinds.KindID),
	}
}

func (v *viewport) resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == v.w && h == v.h {
		return
	}
	v.w, v.h = w, h
	v.canvas.Resize(w, h)
	v.valid = false
}

// follow keeps occ inside the central half of the view and clamps the camera
// to the world. Reports whether the camera moved.
func (v *viewport) follow(occ core.Rect, worldW, worldH int) bool {
	x, y := v.x, v.y
	if !v.valid {
		cx, cy := occ.Center()
		x, y = cx-v.w/2, cy-v.h/2
	} else {
		mx, my := v.w/4, v.h/4
		if occ.X < x+mx {
			x = occ.X - mx
		}
		if occ.Right() > x+v.w-mx {
			x = occ.Right() - v.w + mx
		}
		if occ.Y < y+my {
			y = occ.Y - my
		}
		if occ.Bottom() > y+v.h-my {
			y = occ.Bottom() - v.h + my
		}
	}
	x = core.Clamp(x, 0, max(worldW-v.w, 0))
	y = core.Clamp(y, 0, max(worldH-v.h, 0))

	moved := x != v.x || y != v.y
	v.x, v.y = x, y
	return moved
}

// bounds returns the visible world rectangle.
func (v *viewport) bounds() core.Rect {
	return core.NewRect(v.x, v.y, v.w, v.h)
}

// toWorld converts a viewport position to a world cell.
func (v *viewport) toWorld(sx, sy int) (x, y int, ok bool) {
	if sx < 0 || sy < 0 || sx >= v.w || sy >= v.h {
		return 0, 0, false
	}
	return v.x + sx, v.y + sy, true
}

// toScreen converts a world cell to a viewport position.
func (v *viewport) toScreen(x, y int) (sx, sy int, ok bool) {
	sx, sy = x-v.x, y-v.y
	return sx, sy, sx >= 0 && sy >= 0 && sx < v.w && sy < v.h
}

// redraw repaints the whole canvas from g.
func (v *viewport) redraw(g *world.Grid) {
	clear(v.animated)
	v.canvas.Clear()
	reg := g.Registry()
	for sy := 0; sy < v.h; sy++ {
		for sx := 0; sx < v.w; sx++ {
			c, err := g.Get(v.x+sx, v.y+sy)
			if err != nil {
				continue
			}
			v.paint(reg, sx, sy, c.Kind, c.Pickable, c.Drop)
		}
	}
	v.valid = true
}

// patch repaints the visible cells among updates.
func (v *viewport) patch(g *world.Grid, updates []world.CellUpdate) {
	reg := g.Registry()
	for _, u := range updates {
		sx, sy, ok := v.toScreen(u.X, u.Y)
		if !ok {
			continue
		}
		v.paint(reg, sx, sy, u.Kind, u.Pickable, u.Drop)
	}
}

func (v *viewport) paint(reg *kinds.Registry, sx, sy int, kind kinds.KindID, pickable bool, drop kinds.KindID) {
	p := core.Pt(sx, sy)
	delete(v.animated, p)

	if pickable {
		d, _ := reg.Get(drop)
		v.canvas.SetColored(sx, sy, dropGlyph, d.Color)
		return
	}
	d, err := reg.Get(kind)
	if err != nil {
		v.canvas.Set(sx, sy, '?')
		return
	}
	if len(d.Frames) > 1 {
		v.animated[p] = kind
	}
	v.canvas.SetColored(sx, sy, d.Glyph, d.Color)
}

// blit copies the canvas to dst at row top, advancing animated glyphs to
// frame t.
func (v *viewport) blit(dst *core.Screen, reg *kinds.Registry, top, t int) {
	for sy := 0; sy < v.h; sy++ {
		for sx := 0; sx < v.w; sx++ {
			dst.SetCell(sx, top+sy, v.canvas.GetCell(sx, sy))
		}
	}
	for p, kind := range v.animated {
		c := v.canvas.GetCell(p.X, p.Y)
		dst.SetColored(p.X, top+p.Y, reg.Glyph(kind, t), c.Color)
	}
}

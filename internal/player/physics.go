package player

import (
	"math"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// StepReport describes what one physics step did.
type StepReport struct {
	Moved  bool
	Landed bool     // Vertical motion was stopped by ground
	Picked []string // Drops collected while moving
}

// Tick runs Step if at least TickInterval elapsed since the previous step.
// ran is false when the step was skipped.
func (p *Player) Tick() (rep StepReport, ran bool) {
	now := p.clock()
	if !p.last.IsZero() && now.Sub(p.last) < p.params.TickInterval {
		return StepReport{}, false
	}
	p.last = now
	return p.Step(), true
}

// Step advances physics by one tick regardless of the clock:
// vertical intent, then x fully resolved, then y.
func (p *Player) Step() StepReport {
	var rep StepReport
	old := p.Occupied()
	ox, oy := p.X, p.Y

	grounded := p.Grounded()
	if !grounded {
		p.VY += p.params.Gravity
	}
	if p.VY < 0 && p.ceilingAbove() {
		p.VY = 0
	}
	if grounded && p.VY > 0 {
		p.VY = 0
	}

	p.resolveX(&rep)
	p.resolveY(&rep)
	p.sweep(&rep)

	if p.params.Friction > 0 {
		p.VX *= 1 - p.params.Friction
		if math.Abs(p.VX) < 1e-3 {
			p.VX = 0
		}
	}

	if p.X != ox || p.Y != oy {
		rep.Moved = true
		p.markMoved(old)
	} else {
		p.dirty = false
	}
	return rep
}

// resolveX walks toward vx one cell at most per step, testing only the
// columns each step enters. A blocking column snaps the box flush
// against it and stops horizontal motion.
func (p *Player) resolveX(rep *StepReport) {
	dir := core.Sign(p.VX)
	if dir == 0 {
		return
	}
	remaining := math.Abs(p.VX)
	steps := int(math.Ceil(remaining - eps))
	w := float64(p.params.Width)

	for s := 0; s < steps && remaining > eps; s++ {
		move := math.Min(1, remaining)
		nx := p.X + float64(dir)*move
		lo, hi := p.colSpan(p.X)
		nlo, nhi := p.colSpan(nx)
		r0, r1 := p.rowSpan(p.Y)

		var entered []int
		if dir > 0 {
			entered = p.grid.Range(hi+1, nhi+1, world.AxisX)
		} else {
			entered = p.grid.Range(lo, nlo, world.AxisX)
		}

		if c, ok := p.firstBlockedColumn(entered, r0, r1); ok {
			p.snapX(dir, float64(c), w)
			return
		}
		if dir > 0 && nhi >= p.grid.Width() {
			p.snapX(dir, float64(p.grid.Width()), w)
			return
		}
		if dir < 0 && nlo < 0 {
			p.snapX(dir, -1, w)
			return
		}

		p.X = nx
		remaining -= move
		p.sweep(rep)
	}
}

func (p *Player) snapX(dir int, col, w float64) {
	if dir > 0 {
		p.X = math.Max(p.X, col-w)
	} else {
		p.X = math.Min(p.X, col+1)
	}
	p.VX = 0
}

// resolveY is resolveX for rows. Landing zeroes vy; a ceiling only stops
// the rise for this step.
func (p *Player) resolveY(rep *StepReport) {
	dir := core.Sign(p.VY)
	if dir == 0 {
		return
	}
	remaining := math.Abs(p.VY)
	steps := int(math.Ceil(remaining - eps))
	h := float64(p.params.Height)

	for s := 0; s < steps && remaining > eps; s++ {
		move := math.Min(1, remaining)
		ny := p.Y + float64(dir)*move
		lo, hi := p.rowSpan(p.Y)
		nlo, nhi := p.rowSpan(ny)
		c0, c1 := p.colSpan(p.X)

		var entered []int
		if dir > 0 {
			entered = p.grid.Range(hi+1, nhi+1, world.AxisY)
		} else {
			entered = p.grid.Range(lo, nlo, world.AxisY)
		}

		row, blocked := p.firstBlockedRow(entered, c0, c1)
		if !blocked && dir > 0 && nhi >= p.grid.Height() {
			row, blocked = p.grid.Height(), true
		}
		if !blocked && dir < 0 && nlo < 0 {
			row, blocked = -1, true
		}
		if blocked {
			if dir > 0 {
				p.Y = math.Max(p.Y, float64(row)-h)
				p.VY = 0
				rep.Landed = true
			} else {
				p.Y = math.Min(p.Y, float64(row+1))
			}
			return
		}

		p.Y = ny
		remaining -= move
		p.sweep(rep)
	}
}

func (p *Player) firstBlockedColumn(cols []int, r0, r1 int) (int, bool) {
	for _, c := range cols {
		for y := r0; y <= r1; y++ {
			if p.blocked(c, y) {
				return c, true
			}
		}
	}
	return 0, false
}

func (p *Player) firstBlockedRow(rows []int, c0, c1 int) (int, bool) {
	for _, r := range rows {
		for x := c0; x <= c1; x++ {
			if p.blocked(x, r) {
				return r, true
			}
		}
	}
	return 0, false
}

// sweep collects every drop under the box.
func (p *Player) sweep(rep *StepReport) {
	occ := p.Occupied()
	reg := p.grid.Registry()
	for y := occ.Y; y < occ.Bottom(); y++ {
		for x := occ.X; x < occ.Right(); x++ {
			drop, ok, err := p.grid.Pick(x, y)
			if err != nil || !ok {
				continue
			}
			name := reg.Name(drop)
			p.inv.Add(name)
			rep.Picked = append(rep.Picked, name)
		}
	}
}

// Move pushes the player horizontally. Repeated calls accumulate.
func (p *Player) Move(dir int) {
	p.VX += float64(dir) * p.params.Speed
	if m := p.params.MaxSpeed; m > 0 {
		p.VX = core.ClampF(p.VX, -m, m)
	}
}

// Jump launches the player upward. It does nothing in mid-air or while an
// earlier jump is still waiting for the next physics step.
func (p *Player) Jump() bool {
	if !p.Grounded() || p.VY < 0 {
		return false
	}
	p.VY -= p.params.JumpImpulse
	return true
}

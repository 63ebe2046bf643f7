package player

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

const testKinds = `
kinds:
  - {name: air, solid: false}
  - {name: ground, solid: true, health: 1}
  - {name: stone, solid: true, health: 2}
`

// flatWorld returns a 10x10 grid with rows 0-4 air and rows 5-9 ground.
func flatWorld(t *testing.T) (*world.Grid, kinds.KindID) {
	t.Helper()
	reg, err := kinds.Parse([]byte(testKinds))
	if err != nil {
		t.Fatal(err)
	}
	ground, _ := reg.Lookup("ground")
	g, err := world.NewGrid(10, 10, reg)
	if err != nil {
		t.Fatal(err)
	}
	for y := 5; y < 10; y++ {
		for x := 0; x < 10; x++ {
			_ = g.Set(x, y, ground)
		}
	}
	return g, ground
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSpawnOnGround(t *testing.T) {
	g, _ := flatWorld(t)
	p := New(g, DefaultParams(), nil)

	if p.X != 5 || p.Y != 3 {
		t.Errorf("spawn = (%v, %v), expected (5, 3)", p.X, p.Y)
	}
	if !p.Grounded() {
		t.Error("spawned player should stand on ground")
	}
}

func TestFallAndLand(t *testing.T) {
	g, _ := flatWorld(t)
	p := New(g, DefaultParams(), nil)
	p.SetPosition(5, 0)

	for i := 0; i < 100; i++ {
		p.Step()
	}

	if !approx(p.Y, 3) || p.VY != 0 {
		t.Errorf("after falling: y=%v vy=%v, expected y=3 vy=0", p.Y, p.VY)
	}
	if p.X != 5 {
		t.Errorf("x drifted to %v", p.X)
	}
}

func TestFastFallSnapsOntoGround(t *testing.T) {
	g, _ := flatWorld(t)
	p := New(g, DefaultParams(), nil)
	p.SetPosition(5, 0)
	p.VY = 3.5

	rep := p.Step()
	if !rep.Landed || p.Y != 3 || p.VY != 0 {
		t.Errorf("y=%v vy=%v landed=%v, expected to land at 3 in one step", p.Y, p.VY, rep.Landed)
	}
}

func TestTickRateLimit(t *testing.T) {
	g, _ := flatWorld(t)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := New(g, DefaultParams(), clock.Now)
	p.SetPosition(5, 0)

	if _, ran := p.Tick(); !ran {
		t.Fatal("first tick should run")
	}
	y := p.Y

	clock.Advance(10 * time.Millisecond)
	if _, ran := p.Tick(); ran || p.Y != y {
		t.Error("tick before the interval should be skipped")
	}

	clock.Advance(23 * time.Millisecond)
	if _, ran := p.Tick(); !ran {
		t.Error("tick after 33ms should run")
	}
}

func TestHorizontalWallCollision(t *testing.T) {
	g, _ := flatWorld(t)
	stone, _ := g.Registry().Lookup("stone")
	_ = g.Set(6, 3, stone)
	_ = g.Set(6, 4, stone)

	p := New(g, DefaultParams(), nil)
	p.VX = 0.5

	p.Step()
	if p.X != 5 || p.Y != 3 {
		t.Errorf("position = (%v, %v), expected unchanged (5, 3)", p.X, p.Y)
	}
	if p.VX != 0 {
		t.Errorf("vx = %v, expected 0", p.VX)
	}
	if _, dirty := p.DirtyRect(); dirty {
		t.Error("player that did not move should not be dirty")
	}
}

func TestWallStopsFlush(t *testing.T) {
	g, _ := flatWorld(t)
	stone, _ := g.Registry().Lookup("stone")
	_ = g.Set(8, 4, stone) // only the lower row is blocked

	p := New(g, DefaultParams(), nil)
	p.VX = 2.5

	p.Step()
	if p.X != 7 || p.VX != 0 {
		t.Errorf("x=%v vx=%v, expected flush at 7 with vx 0", p.X, p.VX)
	}
}

func TestWorldEdgesBlock(t *testing.T) {
	g, _ := flatWorld(t)
	p := New(g, DefaultParams(), nil)

	p.SetPosition(0.3, 3)
	p.VX = -1
	p.Step()
	if p.X != 0 || p.VX != 0 {
		t.Errorf("left edge: x=%v vx=%v", p.X, p.VX)
	}

	p.SetPosition(8.5, 3)
	p.VX = 4
	p.Step()
	if p.X != 9 || p.VX != 0 {
		t.Errorf("right edge: x=%v vx=%v", p.X, p.VX)
	}
}

func TestFractionalVelocity(t *testing.T) {
	g, _ := flatWorld(t)
	p := New(g, DefaultParams(), nil)
	p.VX = 1.5

	p.Step()
	if !approx(p.X, 6.5) {
		t.Errorf("x = %v, expected 6.5", p.X)
	}
	occ := p.Occupied()
	if occ != core.NewRect(6, 3, 2, 2) {
		t.Errorf("Occupied() = %+v, expected two columns", occ)
	}
}

func TestJump(t *testing.T) {
	g, _ := flatWorld(t)
	params := DefaultParams()
	p := New(g, params, nil)

	if !p.Jump() {
		t.Fatal("grounded player should jump")
	}
	if p.VY != -params.JumpImpulse {
		t.Errorf("vy = %v, expected %v", p.VY, -params.JumpImpulse)
	}
	// Still on the ground until the next step; a second input must not stack.
	if p.Jump() || p.VY != -params.JumpImpulse {
		t.Errorf("repeated jump before a step: vy = %v, expected %v", p.VY, -params.JumpImpulse)
	}

	p.Step()
	if p.Y >= 3 {
		t.Errorf("player should rise, y = %v", p.Y)
	}
	vy := p.VY
	if p.Jump() || p.VY != vy {
		t.Error("mid-air jump should be a no-op")
	}

	for i := 0; i < 100; i++ {
		p.Step()
	}
	if !approx(p.Y, 3) || !p.Grounded() {
		t.Errorf("player should come back down, y = %v", p.Y)
	}
}

func TestCeilingBumpKeepsVelocityForOneStep(t *testing.T) {
	g, _ := flatWorld(t)
	stone, _ := g.Registry().Lookup("stone")
	_ = g.Set(5, 1, stone)

	p := New(g, DefaultParams(), nil)
	p.SetPosition(5, 2.5)
	p.VY = -1.2 // gravity makes it -1.0 before resolution

	p.Step()
	if p.Y != 2 {
		t.Errorf("y = %v, expected snapped under the ceiling at 2", p.Y)
	}
	if p.VY >= 0 {
		t.Errorf("vy = %v, upward velocity should survive the bump", p.VY)
	}

	p.Step()
	if p.VY < 0 {
		t.Errorf("vy = %v, ceiling should zero upward velocity on the next step", p.VY)
	}
}

func TestDirtyRectIsUnion(t *testing.T) {
	g, _ := flatWorld(t)
	p := New(g, DefaultParams(), nil)
	p.ClearDirty()
	g.ClearDirty()

	p.VX = 1
	p.Step()

	r, dirty := p.DirtyRect()
	if !dirty || r != core.NewRect(5, 3, 2, 2) {
		t.Errorf("DirtyRect() = %+v, %v; expected {5 3 2 2}", r, dirty)
	}
	for y := 3; y < 5; y++ {
		for x := 5; x < 7; x++ {
			if c, _ := g.Get(x, y); !c.Dirty {
				t.Errorf("cell (%d, %d) should be dirty", x, y)
			}
		}
	}
}

func TestPickupSweep(t *testing.T) {
	g, ground := flatWorld(t)
	_ = g.Set(6, 4, ground)
	_, _ = g.Dig(6, 4) // leaves a ground drop in the air

	p := New(g, DefaultParams(), nil)
	p.VX = 1
	rep := p.Step()

	if !slices.Equal(rep.Picked, []string{"ground"}) {
		t.Errorf("Picked = %v, expected [ground]", rep.Picked)
	}
	if p.Inventory().Count("ground") != 1 {
		t.Errorf("inventory ground = %d", p.Inventory().Count("ground"))
	}
	if c, _ := g.Get(6, 4); c.Pickable {
		t.Error("picked cell should no longer be pickable")
	}
}

func TestMaxSpeedAndFriction(t *testing.T) {
	g, _ := flatWorld(t)
	params := DefaultParams()
	params.MaxSpeed = 1
	params.Friction = 0.5
	p := New(g, params, nil)

	for i := 0; i < 5; i++ {
		p.Move(1)
	}
	if p.VX != 1 {
		t.Fatalf("vx = %v, expected clamp to 1", p.VX)
	}

	p.Step()
	if !approx(p.VX, 0.5) {
		t.Errorf("vx after friction = %v, expected 0.5", p.VX)
	}

	unbounded := New(g, DefaultParams(), nil)
	unbounded.Move(1)
	unbounded.Move(1)
	if unbounded.VX != 1 {
		t.Errorf("moves should accumulate, vx = %v", unbounded.VX)
	}
}

package worldgen

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

func defaultRegistry(t *testing.T) *kinds.Registry {
	t.Helper()
	reg, err := kinds.Default()
	if err != nil {
		t.Fatalf("default kinds: %v", err)
	}
	return reg
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func surfaces(g *world.Grid) []int {
	out := make([]int, g.Width())
	for x := range out {
		out[x] = g.GroundHeight(x)
	}
	return out
}

func TestGenerateInvalidDimensions(t *testing.T) {
	reg := defaultRegistry(t)
	for _, dim := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		g, _, err := New(reg, DefaultParams(), seeded(1)).Generate(dim[0], dim[1])
		if !errors.Is(err, world.ErrInvalidDimensions) {
			t.Errorf("Generate(%d, %d) error = %v, expected ErrInvalidDimensions", dim[0], dim[1], err)
		}
		if g != nil {
			t.Errorf("Generate(%d, %d) returned a partial grid", dim[0], dim[1])
		}
	}
}

func TestBaseSplit(t *testing.T) {
	reg := defaultRegistry(t)
	p := DefaultParams()
	p.MountainChance = 0
	p.CaveChance = 0

	g, rep, err := New(reg, p, seeded(7)).Generate(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Mountains != 0 || rep.Caves != 0 || !rep.Settled {
		t.Errorf("report = %+v, expected a flat settled world", rep)
	}

	// ceil(0.45 * 10) = 5
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			solid, _ := g.IsSolid(x, y)
			if solid != (y >= 5) {
				t.Fatalf("cell (%d, %d) solid = %v", x, y, solid)
			}
		}
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	reg := defaultRegistry(t)

	a, repA, err := New(reg, DefaultParams(), seeded(42)).Generate(150, 60)
	if err != nil {
		t.Fatal(err)
	}
	b, repB, err := New(reg, DefaultParams(), seeded(42)).Generate(150, 60)
	if err != nil {
		t.Fatal(err)
	}

	if repA != repB {
		t.Errorf("reports differ: %+v vs %+v", repA, repB)
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			ca, _ := a.Get(x, y)
			cb, _ := b.Get(x, y)
			if ca.Kind != cb.Kind {
				t.Fatalf("cell (%d, %d) differs: %d vs %d", x, y, ca.Kind, cb.Kind)
			}
		}
	}
}

func TestEveryColumnKeepsGround(t *testing.T) {
	reg := defaultRegistry(t)
	p := DefaultParams()
	p.CaveChance = 0.3 // stress the carving

	for seed := int64(1); seed <= 8; seed++ {
		g, _, err := New(reg, p, seeded(seed)).Generate(120, 40)
		if err != nil {
			t.Fatal(err)
		}
		line := int(math.Ceil(p.GroundLine * float64(g.Height())))
		for x := 0; x < g.Width(); x++ {
			found := false
			for y := line; y < g.Height(); y++ {
				if solid, _ := g.IsSolid(x, y); solid {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("seed %d: column %d has no solid cell below the ground line", seed, x)
			}
		}
	}
}

func TestSmoothingNeverWorsens(t *testing.T) {
	reg := defaultRegistry(t)
	p := DefaultParams()
	p.CaveChance = 0
	p.MountainChance = 0.3

	for seed := int64(1); seed <= 10; seed++ {
		last := -1
		gen := New(reg, p, seeded(seed))
		gen.SetSink(func(stage Stage, g *world.Grid) {
			if stage > StageSmoothing {
				return
			}
			v := countViolations(surfaces(g), p.MaxInclination)
			if stage == StageSmoothing && last >= 0 && v > last {
				t.Errorf("seed %d: smoothing pass raised violations from %d to %d", seed, last, v)
			}
			last = v
		})

		g, rep, err := gen.Generate(200, 80)
		if err != nil {
			t.Fatal(err)
		}

		got := countViolations(surfaces(g), p.MaxInclination)
		if got != rep.Violations {
			t.Errorf("seed %d: report says %d violations, grid has %d", seed, rep.Violations, got)
		}
		if !rep.Settled && !rep.Stalled && !rep.CapReached {
			t.Errorf("seed %d: unsettled smoothing must report why: %+v", seed, rep)
		}
	}
}

func TestSmoothSettlesProfile(t *testing.T) {
	reg := defaultRegistry(t)
	gen := New(reg, DefaultParams(), seeded(1))
	g, err := world.NewGrid(4, 20, reg)
	if err != nil {
		t.Fatal(err)
	}
	gen.grid = g
	gen.ground, _ = reg.Lookup("ground")
	gen.heights = make([]int, 4)
	gen.baseSplit()
	for x, h := range []int{0, 10, 12, 14} {
		gen.setHeight(x, h)
	}

	var rep Report
	gen.smooth(&rep)

	if !rep.Settled || rep.SmoothPasses != 5 {
		t.Errorf("report = %+v, expected settled after 5 passes", rep)
	}
	expected := []int{7, 9, 11, 13}
	if !slices.Equal(gen.heights, expected) {
		t.Errorf("heights = %v, expected %v", gen.heights, expected)
	}
	if got := surfaces(g); !slices.Equal(got, expected) {
		t.Errorf("grid surfaces = %v, expected %v", got, expected)
	}
}

func TestRelaxPair(t *testing.T) {
	tests := []struct {
		name        string
		heights     []int
		i           int
		left, right int
		ok          bool
	}{
		{"within limit", []int{5, 7}, 0, 5, 7, false},
		{"split even excess", []int{0, 10}, 0, 4, 6, true},
		{"split odd excess", []int{0, 5}, 0, 1, 3, true},
		{"mirrored", []int{10, 0}, 0, 6, 4, true},
		{"one sided when split worsens", []int{6, 8, 12, 14}, 1, 10, 12, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := slices.Clone(tc.heights)
			left, right, ok := relaxPair(h, tc.i, 2)
			if ok != tc.ok || left != tc.left || right != tc.right {
				t.Errorf("relaxPair(%v, %d) = %d, %d, %v; expected %d, %d, %v",
					tc.heights, tc.i, left, right, ok, tc.left, tc.right, tc.ok)
			}
			if !slices.Equal(h, tc.heights) {
				t.Errorf("relaxPair must not modify its input, got %v", h)
			}
		})
	}
}

func TestCavesCarveBelowSurface(t *testing.T) {
	reg := defaultRegistry(t)
	p := DefaultParams()
	p.MountainChance = 0
	p.CaveChance = 1

	g, rep, err := New(reg, p, seeded(3)).Generate(30, 40)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Caves == 0 {
		t.Fatal("expected caves with cave_chance 1")
	}

	surface := 18 // ceil(0.45 * 40)
	carved := 0
	for x := 0; x < g.Width(); x++ {
		for y := surface + 1; y < g.Height(); y++ {
			if solid, _ := g.IsSolid(x, y); !solid {
				carved++
			}
		}
		if solid, _ := g.IsSolid(x, g.Height()-1); !solid {
			t.Errorf("bottom row carved at column %d", x)
		}
	}
	if carved == 0 {
		t.Error("caves should carve air below the surface")
	}
}

func TestSinkStageOrder(t *testing.T) {
	reg := defaultRegistry(t)
	var stages []Stage
	gen := New(reg, DefaultParams(), seeded(11))
	gen.SetSink(func(stage Stage, _ *world.Grid) {
		stages = append(stages, stage)
	})

	if _, _, err := gen.Generate(100, 50); err != nil {
		t.Fatal(err)
	}
	if len(stages) < 2 || stages[0] != StageBase || stages[len(stages)-1] != StageDone {
		t.Fatalf("stages = %v", stages)
	}
	if !slices.IsSorted(stages) {
		t.Errorf("stages out of order: %v", stages)
	}
}

func TestGenerateRejectsParams(t *testing.T) {
	reg := defaultRegistry(t)

	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"ground line", func(p *Params) { p.GroundLine = 1.5 }, ErrInvalidParams},
		{"inclination", func(p *Params) { p.MaxInclination = 0 }, ErrInvalidParams},
		{"cave chance", func(p *Params) { p.CaveChance = -0.1 }, ErrInvalidParams},
		{"unknown ground", func(p *Params) { p.GroundKind = "marble" }, kinds.ErrUnknownKind},
		{"non-solid ground", func(p *Params) { p.GroundKind = "lantern" }, ErrInvalidParams},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			_, _, err := New(reg, p, seeded(1)).Generate(10, 10)
			if !errors.Is(err, tc.want) {
				t.Errorf("Generate error = %v, expected %v", err, tc.want)
			}
		})
	}
}

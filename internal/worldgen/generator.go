// Package worldgen builds a terrain grid in four passes: base split,
// mountains, inclination smoothing and cave carving.
package worldgen

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// Stage identifies which pass produced a sink notification.
type Stage int

const (
	StageBase Stage = iota
	StageMountains
	StageSmoothing
	StageCaves
	StageDone
)

// String returns the stage name used in logs and previews.
func (s Stage) String() string {
	switch s {
	case StageBase:
		return "base"
	case StageMountains:
		return "mountains"
	case StageSmoothing:
		return "smoothing"
	case StageCaves:
		return "caves"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Sink receives the grid after each visible change. The grid is live;
// sinks that keep it must Clone.
type Sink func(stage Stage, g *world.Grid)

// Report summarizes a Generate run.
type Report struct {
	Mountains    int
	Caves        int
	SmoothPasses int

	// Violations counts neighbor pairs still steeper than MaxInclination
	// when smoothing stopped.
	Violations int
	Settled    bool // Smoothing removed every violation
	Stalled    bool // A pass changed nothing while violations remained
	CapReached bool // SmoothPassCap passes ran without settling
}

// Generator produces worlds from a kind registry and a random source.
type Generator struct {
	params Params
	reg    *kinds.Registry
	rng    *rand.Rand
	sink   Sink
	logger *log.Logger

	grid    *world.Grid
	heights []int
	ground  kinds.KindID
}

// New creates a generator. A nil rng is seeded from the clock.
func New(reg *kinds.Registry, params Params, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		params: params,
		reg:    reg,
		rng:    rng,
		logger: log.New(io.Discard),
	}
}

// SetSink installs a progress sink. nil restores the no-op sink.
func (gen *Generator) SetSink(s Sink) {
	gen.sink = s
}

// SetLogger replaces the discard logger.
func (gen *Generator) SetLogger(l *log.Logger) {
	if l != nil {
		gen.logger = l
	}
}

// Params returns the generator's parameters.
func (gen *Generator) Params() Params {
	return gen.params
}

// Generate builds a new width x height world. Invalid dimensions fail
// with world.ErrInvalidDimensions before any pass runs.
func (gen *Generator) Generate(width, height int) (*world.Grid, Report, error) {
	var rep Report

	if err := gen.params.Validate(); err != nil {
		return nil, rep, err
	}
	ground, err := gen.reg.Lookup(gen.params.GroundKind)
	if err != nil {
		return nil, rep, fmt.Errorf("worldgen: ground kind: %w", err)
	}
	if !gen.reg.Solid(ground) {
		return nil, rep, fmt.Errorf("%w: ground kind %q is not solid", ErrInvalidParams, gen.params.GroundKind)
	}

	g, err := world.NewGrid(width, height, gen.reg)
	if err != nil {
		return nil, rep, err
	}
	gen.grid = g
	gen.ground = ground
	gen.heights = make([]int, width)
	defer func() {
		gen.grid = nil
		gen.heights = nil
	}()

	start := time.Now()
	gen.baseSplit()
	gen.mountains(&rep)
	gen.smooth(&rep)
	gen.caves(&rep)
	gen.emit(StageDone)

	gen.logger.Debug("world generated",
		"w", width, "h", height,
		"mountains", rep.Mountains, "caves", rep.Caves,
		"passes", rep.SmoothPasses, "settled", rep.Settled,
		"took", time.Since(start))
	return g, rep, nil
}

func (gen *Generator) emit(stage Stage) {
	if gen.sink != nil {
		gen.sink(stage, gen.grid)
	}
}

// randint returns a uniform integer in [lo, hi].
func (gen *Generator) randint(lo, hi int) int {
	return lo + gen.rng.Intn(hi-lo+1)
}

func (gen *Generator) chance(p float64) bool {
	return gen.rng.Float64() < p
}

// baseSplit makes every row above the ground line air and the rest ground.
// The bottom row is always ground.
func (gen *Generator) baseSplit() {
	g := gen.grid
	surface := int(math.Ceil(gen.params.GroundLine * float64(g.Height())))
	surface = core.Clamp(surface, 0, g.Height()-1)

	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			kind := kinds.Air
			if y >= surface {
				kind = gen.ground
			}
			_ = g.Set(x, y, kind)
		}
		gen.heights[x] = surface
	}
	gen.emit(StageBase)
}

// setHeight moves the surface of column x to row h, rewriting only the
// rows between the old and new surface. h is clamped to [0, height-1].
func (gen *Generator) setHeight(x, h int) {
	g := gen.grid
	h = core.Clamp(h, 0, g.Height()-1)
	old := gen.heights[x]
	switch {
	case h < old:
		for _, y := range g.Range(h, old, world.AxisY) {
			_ = g.Set(x, y, gen.ground)
		}
	case h > old:
		for _, y := range g.Range(old, h, world.AxisY) {
			_ = g.Set(x, y, kinds.Air)
		}
	}
	gen.heights[x] = h
}

// mountains raises a window of columns around randomly chosen centers.
// Up-slope columns climb from their left neighbor, down-slope columns descend.
func (gen *Generator) mountains(rep *Report) {
	w := gen.grid.Width()
	half := gen.params.MountainWidth / 2
	maxInc := gen.params.MaxInclination
	lo := floorDiv(-maxInc, 2)

	for col := 0; col < w; col++ {
		if !gen.chance(gen.params.MountainChance) {
			continue
		}
		rep.Mountains++

		for c := col - half; c < col; c++ {
			if c <= 0 || c >= w {
				continue
			}
			gen.setHeight(c, gen.heights[c-1]-gen.randint(lo, maxInc))
		}
		for c := col; c < col+half; c++ {
			if c <= 0 || c >= w {
				continue
			}
			gen.setHeight(c, gen.heights[c-1]+gen.randint(lo, maxInc))
		}
		gen.emit(StageMountains)
	}
}

// caves walks random tunnels below the surface, clearing a plus shape
// at each step.
func (gen *Generator) caves(rep *Report) {
	g := gen.grid
	maxInc := gen.params.MaxInclination
	length := gen.params.CaveLength

	for x := 0; x < g.Width(); x++ {
		if !gen.chance(gen.params.CaveChance) {
			continue
		}
		lo := g.GroundHeight(x) + 2*maxInc
		hi := g.Height()
		if lo > hi {
			continue
		}
		depth := gen.randint(lo, hi)
		span := gen.randint(length, 3*length)

		for _, cx := range g.Range(x, x+span, world.AxisX) {
			depth = core.Clamp(depth, 0, g.Height()-1)
			gen.hole(cx, depth)
			depth += gen.randint(-1, 1)
		}
		rep.Caves++
		gen.emit(StageCaves)
	}
}

// hole clears a plus shape centered at (x, y), never touching the bottom row.
func (gen *Generator) hole(x, y int) {
	g := gen.grid
	arm := gen.params.MaxInclination
	floor := g.Height() - 1

	if y < floor {
		for _, cx := range g.Range(x-arm, x+arm, world.AxisX) {
			_ = g.Set(cx, y, kinds.Air)
		}
	}
	for _, cy := range core.ClampedRange(y-arm, y+arm, floor) {
		_ = g.Set(x, cy, kinds.Air)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Package sandbox runs one interactive world: terrain generation, the
// player, the dirty-frame pipeline and the viewport that follows the player.
package sandbox

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-craft/internal/config"
	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/player"
	"github.com/vovakirdan/tui-craft/internal/registry"
	"github.com/vovakirdan/tui-craft/internal/world"
	"github.com/vovakirdan/tui-craft/internal/worldgen"
)

// hudHeight is the number of screen rows above the viewport.
const hudHeight = 2

// Game is a sandbox session for one mode.
type Game struct {
	mode   Mode
	cfg    config.CraftConfig
	params worldgen.Params
	reg    *kinds.Registry
	logger *log.Logger
	clock  func() time.Time
	events core.EventSink
	frames world.FrameSink

	seeds   *rand.Rand // Picks the next seed on restart
	seed    int64
	grid    *world.Grid
	player  *player.Player
	tracker *world.Tracker
	report  worldgen.Report
	genErr  error

	view   viewport
	cursor core.Point // Target offset from the player's top-left cell

	stats   core.SessionStats
	frame   int // Platform frames since reset, drives glyph animation
	paused  bool
	status  string
	screenW int
	screenH int
}

// New creates a session for mode. Missing pieces of env fall back to the
// built-in configuration and kinds.
func New(mode Mode, env registry.Env) (*Game, error) {
	cfg := env.Config
	if cfg.World.Width == 0 && cfg.World.Height == 0 {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	reg := env.Kinds
	if reg == nil {
		var err error
		if reg, err = cfg.Registry(); err != nil {
			return nil, fmt.Errorf("sandbox: %w", err)
		}
	}

	params := mode.Params(cfg.Generator)
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("sandbox: mode %s: %w", mode.ID, err)
	}
	if _, err := reg.Lookup(params.GroundKind); err != nil {
		return nil, fmt.Errorf("sandbox: ground kind: %w", err)
	}
	for name := range cfg.Player.StartItems {
		if _, err := reg.Lookup(name); err != nil {
			return nil, fmt.Errorf("sandbox: start item: %w", err)
		}
	}

	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := env.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Game{
		mode:   mode,
		cfg:    cfg,
		params: params,
		reg:    reg,
		logger: logger,
		clock:  clock,
		events: env.Events,
		frames: env.Frames,
	}, nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title
}

// Grid returns the current world, nil if generation failed.
func (g *Game) Grid() *world.Grid {
	return g.grid
}

// Player returns the player of the current world.
func (g *Game) Player() *player.Player {
	return g.player
}

// Report returns the generator report of the current world.
func (g *Game) Report() worldgen.Report {
	return g.report
}

// Reset generates a new world from cfg.Seed (0 picks one from the clock)
// and spawns the player with the configured start items.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	if g.seed == 0 {
		g.seed = g.clock().UnixNano()
	}
	g.seeds = rand.New(rand.NewSource(g.seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.stats = core.SessionStats{}
	g.frame = 0
	g.paused = false
	g.status = ""
	g.cursor = core.Pt(1, 1)

	gen := worldgen.New(g.reg, g.params, rand.New(rand.NewSource(g.seed)))
	gen.SetLogger(g.logger)

	grid, rep, err := gen.Generate(g.cfg.World.Width, g.cfg.World.Height)
	g.grid, g.report, g.genErr = grid, rep, err
	if err != nil {
		g.player = nil
		g.logger.Error("world generation failed", "mode", g.mode.ID, "seed", g.seed, "err", err)
		return
	}
	g.logger.Info("world generated",
		"mode", g.mode.ID,
		"seed", g.seed,
		"w", grid.Width(),
		"h", grid.Height(),
		"mountains", rep.Mountains,
		"caves", rep.Caves,
		"settled", rep.Settled)

	g.player = player.New(grid, g.cfg.Player.Params, g.clock)
	for name, n := range g.cfg.Player.StartItems {
		g.player.Inventory().AddN(name, n)
	}
	if len(g.cfg.Player.StartItems) > 0 {
		// Map order is random; start on the first stack by name.
		if stacks := g.player.Inventory().Stacks(); len(stacks) > 0 {
			_ = g.player.Inventory().Select(stacks[0].Kind)
		}
	}

	g.tracker = world.NewTracker()
	g.view = newViewport(g.screenW, g.screenH-hudHeight)
	g.view.follow(g.player.Occupied(), grid.Width(), grid.Height())
	g.sync()

	occ := g.player.Occupied()
	g.record(core.EventSpawn, occ.X, occ.Y, "")
}

// Resize adapts the viewport to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.grid == nil {
		return
	}
	g.view.resize(w, h-hudHeight)
	g.view.follow(g.player.Occupied(), g.grid.Width(), g.grid.Height())
	g.view.redraw(g.grid)
}

// Step applies one frame of input, runs physics when the tick interval
// elapsed and pushes the resulting dirty frame to the canvas and sinks.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.grid == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.seeds.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.frame++
	g.handleInput(in)

	if rep, ran := g.player.Tick(); ran {
		g.stats.Ticks++
		occ := g.player.Occupied()
		for _, item := range rep.Picked {
			g.stats.Picked++
			g.record(core.EventPick, occ.X, occ.Y, item)
		}
	}

	g.sync()
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	p := g.player

	if in.Has(core.ActionMoveLeft) {
		p.Move(-1)
	}
	if in.Has(core.ActionMoveRight) {
		p.Move(1)
	}
	if in.Has(core.ActionJump) && p.Jump() {
		occ := p.Occupied()
		g.record(core.EventJump, occ.X, occ.Y, "")
	}
	if in.Has(core.ActionRespawn) {
		p.Respawn()
		occ := p.Occupied()
		g.record(core.EventSpawn, occ.X, occ.Y, "")
		g.status = "back at spawn"
	}

	if in.Has(core.ActionNextSlot) {
		p.Inventory().Cycle(1)
	}
	if in.Has(core.ActionPrevSlot) {
		p.Inventory().Cycle(-1)
	}

	switch {
	case in.Has(core.ActionCursorUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionCursorDown):
		g.moveCursor(0, 1)
	}
	switch {
	case in.Has(core.ActionCursorLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionCursorRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionUse) {
		x, y := g.Target()
		g.act(x, y)
	}
	if in.Click != nil {
		if x, y, ok := g.view.toWorld(in.Click.X, in.Click.Y-hudHeight); ok {
			g.act(x, y)
		}
	}
}

// moveCursor shifts the target offset, keeping it inside the reach rectangle.
func (g *Game) moveCursor(dx, dy int) {
	params := g.player.Params()
	g.cursor.X = core.Clamp(g.cursor.X+dx, -params.ReachX, params.Width-1+params.ReachX)
	g.cursor.Y = core.Clamp(g.cursor.Y+dy, -params.ReachY, params.Height-1+params.ReachY)
}

// Target returns the world cell under the cursor.
func (g *Game) Target() (x, y int) {
	occ := g.player.Occupied()
	return occ.X + g.cursor.X, occ.Y + g.cursor.Y
}

func (g *Game) act(x, y int) {
	out := g.player.Act(x, y)
	switch out.Kind {
	case player.OutcomeNone:
		return
	case player.OutcomeHit:
		g.record(core.EventHit, x, y, out.Item)
	case player.OutcomeDestroyed:
		g.stats.Dug++
		g.record(core.EventDig, x, y, out.Item)
	case player.OutcomeBuilt:
		g.stats.Built++
		g.record(core.EventBuild, x, y, out.Item)
	}
	g.status = fmt.Sprintf("%s %s", out.Kind, out.Item)
}

func (g *Game) record(t core.EventType, x, y int, item string) {
	if g.events == nil {
		return
	}
	ev := core.Event{Seed: g.seed, Tick: g.stats.Ticks, Type: t, X: x, Y: y, Item: item}
	if err := g.events.Record(ev); err != nil {
		g.logger.Warn("event not recorded", "type", t, "err", err)
	}
}

// sync moves the camera, collects the dirty frame and applies it.
func (g *Game) sync() {
	moved := g.view.follow(g.player.Occupied(), g.grid.Width(), g.grid.Height())
	f := g.tracker.Collect(g.grid, g.player)

	if f.Full || moved || !g.view.valid {
		g.view.redraw(g.grid)
	} else {
		g.view.patch(g.grid, f.Cells)
	}

	if g.frames != nil {
		g.frames.Publish(g.grid, f, g.player.Occupied())
	}
}

// State returns the session counters.
func (g *Game) State() core.GameState {
	return core.GameState{
		Stats:  g.stats,
		Seed:   g.seed,
		Paused: g.paused,
	}
}

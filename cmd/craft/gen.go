package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/sandbox"
	"github.com/vovakirdan/tui-craft/internal/world"
	"github.com/vovakirdan/tui-craft/internal/worldgen"
)

var (
	flagGenPreset string
	flagGenX      int
	flagGenY      int
	flagGenCols   int
	flagGenRows   int
	flagGenStages bool
)

var genCmd = &cobra.Command{
	Use:   "gen <mode>",
	Short: "Print a generated world as text",
	Long: `Generate a world for the mode and print it as glyph rows.

The printed region starts at --x/--y. Its size defaults to the terminal
width and the full world height. With --stages the region is printed after
every generator pass (base, mountains, smoothing, caves).

Examples:
  craft gen classic --seed 7
  craft gen caverns --preset small --cols 0
  craft gen highlands --x 400 --cols 120 --stages`,
	Args: cobra.ExactArgs(1),
	Run:  runGen,
}

func init() {
	genCmd.Flags().StringVar(&flagGenPreset, "preset", "", "World size preset: small, normal, large")
	genCmd.Flags().IntVar(&flagGenX, "x", 0, "First column to print")
	genCmd.Flags().IntVar(&flagGenY, "y", 0, "First row to print")
	genCmd.Flags().IntVar(&flagGenCols, "cols", -1, "Columns to print (-1 = terminal width, 0 = whole world)")
	genCmd.Flags().IntVar(&flagGenRows, "rows", 0, "Rows to print (0 = whole world)")
	genCmd.Flags().BoolVar(&flagGenStages, "stages", false, "Print the world after every generator pass")
}

func runGen(_ *cobra.Command, args []string) {
	modeID := args[0]
	requireMode(modeID)

	if err := gen(modeID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func gen(modeID string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	env, err := loadEnv(flagGenPreset, logger)
	if err != nil {
		return err
	}
	mode, _ := sandbox.Lookup(modeID)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	region := genRegion(env.Config.World.Width, env.Config.World.Height)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	g := worldgen.New(env.Kinds, mode.Params(env.Config.Generator), rand.New(rand.NewSource(seed)))
	g.SetLogger(logger)

	var sinkErr error
	if flagGenStages {
		g.SetSink(func(stage worldgen.Stage, grid *world.Grid) {
			if sinkErr != nil || stage == worldgen.StageDone {
				return
			}
			fmt.Fprintf(out, "== %s ==\n", stage)
			sinkErr = sandbox.WriteText(out, grid, region)
		})
	}

	grid, rep, err := g.Generate(env.Config.World.Width, env.Config.World.Height)
	if err != nil {
		return err
	}
	if sinkErr != nil {
		return sinkErr
	}

	if flagGenStages {
		fmt.Fprintf(out, "== %s ==\n", worldgen.StageDone)
	}
	if err := sandbox.WriteText(out, grid, region); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s  seed %d  %dx%d  mountains %d  caves %d  smoothing passes %d",
		mode.Title, seed, grid.Width(), grid.Height(), rep.Mountains, rep.Caves, rep.SmoothPasses)
	switch {
	case rep.Settled:
		fmt.Fprintln(out, "  settled")
	case rep.Stalled:
		fmt.Fprintf(out, "  stalled with %d violations\n", rep.Violations)
	case rep.CapReached:
		fmt.Fprintf(out, "  cap reached with %d violations\n", rep.Violations)
	default:
		fmt.Fprintln(out)
	}
	return nil
}

// genRegion resolves the printed rectangle from the flags.
func genRegion(worldW, worldH int) core.Rect {
	cols := flagGenCols
	switch {
	case cols < 0:
		cols = runtimeConfig().ScreenW
	case cols == 0:
		cols = worldW
	}
	rows := flagGenRows
	if rows <= 0 {
		rows = worldH
	}
	return core.NewRect(flagGenX, flagGenY, cols, rows)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-craft/internal/observer"
	"github.com/vovakirdan/tui-craft/internal/platform/tui"
	"github.com/vovakirdan/tui-craft/internal/recorder"
	"github.com/vovakirdan/tui-craft/internal/registry"
	"github.com/vovakirdan/tui-craft/internal/storage"
)

var (
	flagPreset  string
	flagRecord  string
	flagObserve string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Generate a world for the specified mode and start playing.

Controls:
  A/D, Left/Right  - Walk
  Space/W/Up       - Jump
  I/J/K/L          - Move the target cursor
  Enter/E          - Dig or build at the cursor
  Mouse click      - Dig or build at the clicked cell
  Walk over drops  - Pick them up
  Tab / [ ]        - Select inventory slot
  H/Home           - Return to spawn
  P/Esc            - Pause
  R                - New world
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Size presets:
  small   - 240x90
  normal  - 1000x300
  large   - 2400x480

Examples:
  craft play classic
  craft play caverns --seed 42
  craft play flat --preset small
  craft play classic --record ~/.craft/events
  craft play highlands --observe :8080`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "World size preset: small, normal, large")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Directory for the zstd JSONL activity log")
	playCmd.Flags().StringVar(&flagObserve, "observe", "", "Serve a websocket spectator stream on this address")
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := args[0]
	requireMode(modeID)

	if err := play(modeID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs one session; deferred cleanup flushes the activity log before
// the caller exits.
func play(modeID string) error {
	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	env, err := loadEnv(flagPreset, logger)
	if err != nil {
		return err
	}

	if flagRecord != "" {
		dir, err := expandHome(flagRecord)
		if err != nil {
			return err
		}
		w := recorder.NewWriter(dir, modeID, nil)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("closing activity log", "err", err)
			}
		}()
		env.Events = w
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagObserve != "" {
		hub := observer.NewHub(logger)
		env.Frames = hub
		go serveObservers(ctx, hub, flagObserve, logger)
	}

	game, err := registry.Create(modeID, env)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		// Continue without storage - the sandbox still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	return nil
}

func serveObservers(ctx context.Context, hub *observer.Hub, addr string, logger *log.Logger) {
	if err := hub.Serve(ctx, addr); err != nil {
		logger.Error("observer stream stopped", "addr", addr, "err", err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-craft/internal/platform/tui"
	"github.com/vovakirdan/tui-craft/internal/registry"
	"github.com/vovakirdan/tui-craft/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Quitting a world returns you to the menu; every pick generates a fresh world.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Session stats
  Q            - Quit

Examples:
  craft menu
  craft menu --fps 20
  craft menu --db ./craft.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := interactiveLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	env, err := loadEnv("", logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	firstSeed := cfg.Seed

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		if menuResult.Quit {
			break
		}

		if menuResult.WantsStats {
			goBack, sbErr := tui.RunStatsboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.ModeID, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
			continue
		}

		// --seed applies to the first world only
		cfg.Seed = firstSeed
		firstSeed = 0

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}

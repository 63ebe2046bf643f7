// craft is a 2D cell-grid sandbox for the terminal: walk, dig, pick and build
// across procedurally generated terrain.
//
// Usage:
//
//	craft list              - List available modes
//	craft play <mode>       - Play a mode
//	craft menu              - Start menu to pick modes interactively
//	craft gen <mode>        - Print a generated world as text
//	craft kinds             - Show the loaded kind registry
//	craft stats [mode]      - Show recorded sessions
//	craft events <path>     - Summarize an activity log
//	craft serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 30)
//	--seed <value>       - Set world seed for reproducible terrain
//	--db <path>          - Set database path (default: ~/.craft/craft.db)
//	--config <path>      - Use a specific craft.yaml
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file during play
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-craft/internal/config"
	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/registry"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-craft/internal/sandbox"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "craft",
	Short: "TUI Craft - dig and build in your terminal",
	Long: `TUI Craft is a side-view sandbox played in the terminal. Every world is
generated from a seed: hills, mountains and caves you can dig through,
pick up and rebuild somewhere else.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  gen      - Print a generated world as text
  kinds    - Show the kind registry
  stats    - View recorded sessions
  events   - Summarize an activity log
  serve    - Start SSH server for remote play

Examples:
  craft list
  craft play classic --seed 42
  craft menu
  craft gen caverns --preset small
  craft serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.craft/craft.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to craft.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands (default: discard)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "craft",
		Level:           level,
	})
	return logger, nil
}

// interactiveLogger logs to --log-file, or nowhere so the alt screen stays clean.
// The returned close func is never nil.
func interactiveLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}
	path, err := expandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadEnv loads the configuration, applies a size preset and resolves the
// kind registry into a factory environment.
func loadEnv(preset string, logger *log.Logger) (registry.Env, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return registry.Env{}, err
	}
	if preset != "" {
		p, err := config.ParsePreset(preset)
		if err != nil {
			return registry.Env{}, err
		}
		config.ApplyPreset(&cfg, p)
	}

	reg, err := cfg.Registry()
	if err != nil {
		return registry.Env{}, err
	}
	logger.Debug("config loaded",
		"source", source,
		"w", cfg.World.Width,
		"h", cfg.World.Height,
		"kinds", reg.Len(),
		"digest", reg.Digest())

	return registry.Env{Config: cfg, Kinds: reg, Logger: logger}, nil
}

// runtimeConfig sizes the session to the terminal, 80x24 when unknown.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// requireMode exits with a hint when id is not a registered mode.
func requireMode(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'craft list' to see available modes.")
		os.Exit(1)
	}
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

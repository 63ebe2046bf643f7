// Package registry provides a global registry for sandbox modes.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-craft/internal/config"
	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// Game is the interface every sandbox session implements.
// Sessions contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the mode identifier (e.g., "classic", "caverns").
	// Used for CLI commands and stats storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset generates a fresh world and respawns the player.
	// The RuntimeConfig provides screen dimensions and the world seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the session by one platform frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the visible part of the world into dst.
	Render(dst *core.Screen)

	// State returns the session counters and pause flag.
	State() core.GameState
}

// Env carries what a session needs from its surroundings.
// Zero values are valid: defaults are used and sinks are skipped.
type Env struct {
	Config config.CraftConfig
	Kinds  *kinds.Registry
	Logger *log.Logger
	Clock  func() time.Time

	Events core.EventSink // Activity recorder
	Frames world.FrameSink // Spectator stream
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new session for a mode.
type Factory func(env Env) (Game, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ModeInfo)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(info ModeInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new session for the mode id.
// Returns an error if the mode is not registered or the factory fails.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	g, err := f(env)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Info returns the metadata of a registered mode.
func Info(id string) (ModeInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

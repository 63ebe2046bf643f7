// Package config provides YAML-based configuration loading and world size
// presets for the sandbox.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/player"
	"github.com/vovakirdan/tui-craft/internal/worldgen"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// CraftConfig contains all configuration for a sandbox session.
type CraftConfig struct {
	World     WorldConfig     `yaml:"world"`
	Generator worldgen.Params `yaml:"generator"`
	Player    PlayerConfig    `yaml:"player"`
	Kinds     string          `yaml:"kinds"` // Path to a kind registry document, empty for built-in
}

// WorldConfig defines the grid size.
type WorldConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Preset string `yaml:"preset"`
}

// PlayerConfig defines player physics and what the player starts with.
type PlayerConfig struct {
	player.Params `yaml:",inline"`
	StartItems    map[string]int `yaml:"start_items"`
}

// Validate reports the first out-of-range setting.
func (c CraftConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidConfig, c.World.Width, c.World.Height)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Player.TickInterval < 0 {
		return fmt.Errorf("%w: negative tick_interval", ErrInvalidConfig)
	}
	for name, n := range c.Player.StartItems {
		if n < 0 {
			return fmt.Errorf("%w: start item %q has count %d", ErrInvalidConfig, name, n)
		}
	}
	return nil
}

// Registry loads the kind registry this config points at.
func (c CraftConfig) Registry() (*kinds.Registry, error) {
	if c.Kinds == "" {
		return kinds.Default()
	}
	return kinds.LoadFile(c.Kinds)
}

package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-craft/internal/player"
	"github.com/vovakirdan/tui-craft/internal/worldgen"
)

//go:embed defaults/craft.yaml
var defaultCraftYAML []byte

// DefaultConfig returns the hardcoded configuration, used when no YAML
// can be read at all.
func DefaultConfig() CraftConfig {
	params := player.DefaultParams()
	params.MaxSpeed = 1.5
	params.Friction = 0.6

	return CraftConfig{
		World: WorldConfig{
			Width:  1000,
			Height: 300,
			Preset: string(PresetNormal),
		},
		Generator: worldgen.DefaultParams(),
		Player: PlayerConfig{
			Params: params,
			StartItems: map[string]int{
				"wood":    10,
				"lantern": 3,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultCraftYAML
}

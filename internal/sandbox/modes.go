package sandbox

import (
	"github.com/vovakirdan/tui-craft/internal/registry"
	"github.com/vovakirdan/tui-craft/internal/worldgen"
)

// Mode is a named set of terrain generator adjustments.
type Mode struct {
	ID          string
	Title       string
	Description string

	// Tune adjusts the configured generator parameters. Nil keeps them.
	Tune func(p *worldgen.Params)
}

// Modes lists every built-in mode.
var Modes = []Mode{
	{
		ID:          "classic",
		Title:       "Classic",
		Description: "Rolling hills with scattered caves",
	},
	{
		ID:          "flat",
		Title:       "Flatlands",
		Description: "Level ground, nothing to dig around",
		Tune: func(p *worldgen.Params) {
			p.MountainChance = 0
			p.CaveChance = 0
		},
	},
	{
		ID:          "highlands",
		Title:       "Highlands",
		Description: "Frequent wide mountains over a lower plain",
		Tune: func(p *worldgen.Params) {
			p.GroundLine = 0.55
			p.MountainChance = 0.25
			p.MountainWidth = 30
		},
	},
	{
		ID:          "caverns",
		Title:       "Caverns",
		Description: "High ground riddled with long tunnels",
		Tune: func(p *worldgen.Params) {
			p.GroundLine = 0.35
			p.CaveChance = 0.15
			p.CaveLength = 30
		},
	},
}

func init() {
	for _, m := range Modes {
		registry.Register(registry.ModeInfo{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
		}, func(env registry.Env) (registry.Game, error) {
			return New(m, env)
		})
	}
}

// Lookup finds a built-in mode by ID.
func Lookup(id string) (Mode, bool) {
	for _, m := range Modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// Params returns the generator settings for this mode.
func (m Mode) Params(base worldgen.Params) worldgen.Params {
	if m.Tune != nil {
		m.Tune(&base)
	}
	return base
}

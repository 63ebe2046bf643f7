package worldgen

import (
	"errors"
	"fmt"
)

// Params tunes the four generation passes.
type Params struct {
	GroundLine     float64 `yaml:"ground_line"`     // Fraction of height above which the base split places air
	MountainChance float64 `yaml:"mountain_chance"` // Per-column probability of starting a mountain
	MountainWidth  int     `yaml:"mountain_width"`  // Columns covered by one mountain
	MaxInclination int     `yaml:"max_inclination"` // Largest tolerated height step between neighbors
	SmoothPassCap  int     `yaml:"smooth_pass_cap"` // Upper bound on smoothing passes
	CaveChance     float64 `yaml:"cave_chance"`     // Per-column probability of starting a cave
	CaveLength     int     `yaml:"cave_length"`     // Minimum cave length; the maximum is three times this
	GroundKind     string  `yaml:"ground_kind"`     // Kind placed by the base split and mountains
}

// DefaultParams returns the classic terrain settings.
func DefaultParams() Params {
	return Params{
		GroundLine:     0.45,
		MountainChance: 0.1,
		MountainWidth:  20,
		MaxInclination: 2,
		SmoothPassCap:  100,
		CaveChance:     0.05,
		CaveLength:     20,
		GroundKind:     "ground",
	}
}

// ErrInvalidParams is returned by Validate.
var ErrInvalidParams = errors.New("worldgen: invalid params")

// Validate checks that every parameter is in range.
func (p Params) Validate() error {
	switch {
	case p.GroundLine < 0 || p.GroundLine > 1:
		return fmt.Errorf("%w: ground_line %v not in [0, 1]", ErrInvalidParams, p.GroundLine)
	case p.MountainChance < 0 || p.MountainChance > 1:
		return fmt.Errorf("%w: mountain_chance %v not in [0, 1]", ErrInvalidParams, p.MountainChance)
	case p.CaveChance < 0 || p.CaveChance > 1:
		return fmt.Errorf("%w: cave_chance %v not in [0, 1]", ErrInvalidParams, p.CaveChance)
	case p.MountainWidth < 0:
		return fmt.Errorf("%w: mountain_width %d is negative", ErrInvalidParams, p.MountainWidth)
	case p.MaxInclination < 1:
		return fmt.Errorf("%w: max_inclination must be at least 1", ErrInvalidParams)
	case p.SmoothPassCap < 0:
		return fmt.Errorf("%w: smooth_pass_cap %d is negative", ErrInvalidParams, p.SmoothPassCap)
	case p.CaveLength < 0:
		return fmt.Errorf("%w: cave_length %d is negative", ErrInvalidParams, p.CaveLength)
	case p.GroundKind == "":
		return fmt.Errorf("%w: ground_kind is empty", ErrInvalidParams)
	}
	return nil
}

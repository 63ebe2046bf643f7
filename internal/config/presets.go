package config

import (
	"fmt"
	"strings"
)

// SizePreset names a world size.
type SizePreset string

const (
	PresetSmall  SizePreset = "small"
	PresetNormal SizePreset = "normal"
	PresetLarge  SizePreset = "large"
)

var presetSizes = map[SizePreset][2]int{
	PresetSmall:  {240, 90},
	PresetNormal: {1000, 300},
	PresetLarge:  {2400, 480},
}

// Presets lists the known presets from smallest to largest.
func Presets() []SizePreset {
	return []SizePreset{PresetSmall, PresetNormal, PresetLarge}
}

// ParsePreset validates a preset name, case-insensitively.
func ParsePreset(s string) (SizePreset, error) {
	p := SizePreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presetSizes[p]; !ok {
		return "", fmt.Errorf("%w: unknown preset %q (want small, normal or large)", ErrInvalidConfig, s)
	}
	return p, nil
}

// ApplyPreset sets the world dimensions for a preset.
func ApplyPreset(cfg *CraftConfig, preset SizePreset) {
	size, ok := presetSizes[preset]
	if !ok {
		return
	}
	cfg.World.Width = size[0]
	cfg.World.Height = size[1]
	cfg.World.Preset = string(preset)
}

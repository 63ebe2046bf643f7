package player

import "time"

// Params holds the player's movement tuning.
type Params struct {
	Width        int           `yaml:"width"`         // Box width in cells
	Height       int           `yaml:"height"`        // Box height in cells
	Speed        float64       `yaml:"speed"`         // Added to vx by each Move
	Gravity      float64       `yaml:"gravity"`       // Added to vy each airborne step
	JumpImpulse  float64       `yaml:"jump_impulse"`  // Subtracted from vy by Jump
	ReachX       int           `yaml:"reach_x"`       // Horizontal interaction half-extent beyond the box
	ReachY       int           `yaml:"reach_y"`       // Vertical interaction half-extent beyond the box
	TickInterval time.Duration `yaml:"tick_interval"` // Minimum time between physics steps
	MaxSpeed     float64       `yaml:"max_speed"`     // Ceiling on |vx|, 0 means unbounded
	Friction     float64       `yaml:"friction"`      // Fraction of vx removed after each step
}

// DefaultParams returns a 1x2 player with unbounded, frictionless motion.
func DefaultParams() Params {
	return Params{
		Width:        1,
		Height:       2,
		Speed:        0.5,
		Gravity:      0.2,
		JumpImpulse:  1.0,
		ReachX:       4,
		ReachY:       3,
		TickInterval: 33 * time.Millisecond,
	}
}

func (p Params) normalized() Params {
	if p.Width < 1 {
		p.Width = 1
	}
	if p.Height < 1 {
		p.Height = 1
	}
	if p.Friction < 0 {
		p.Friction = 0
	}
	if p.Friction > 1 {
		p.Friction = 1
	}
	return p
}

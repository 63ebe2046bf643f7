package player

import "github.com/vovakirdan/tui-craft/internal/world"

// OutcomeKind classifies what Act did.
type OutcomeKind int

const (
	OutcomeNone      OutcomeKind = iota // Out of reach, own cell, or nothing to do
	OutcomeHit                          // Dug a solid cell that still stands
	OutcomeDestroyed                    // Dug a solid cell to air
	OutcomeBuilt                        // Placed the selected item
)

// String returns the lowercase outcome name used in event logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeHit:
		return "hit"
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeBuilt:
		return "built"
	default:
		return "none"
	}
}

// Outcome is the result of one Act call.
type Outcome struct {
	Kind OutcomeKind
	X, Y int
	Item string // Kind dug or built
}

// InReach reports whether (x, y) can be acted on: inside the reach
// rectangle and outside the player's own cells.
func (p *Player) InReach(x, y int) bool {
	return p.Reach().Contains(x, y) && !p.Occupied().Contains(x, y) && p.grid.InBounds(x, y)
}

// Act digs a solid target or builds the selected item into a non-solid
// one, replacing any drop lying there. Drops are only collected by walking
// over them. Anything else is ignored.
func (p *Player) Act(x, y int) Outcome {
	none := Outcome{Kind: OutcomeNone, X: x, Y: y}
	if !p.InReach(x, y) {
		return none
	}
	cell, err := p.grid.Get(x, y)
	if err != nil {
		return none
	}
	reg := p.grid.Registry()

	if reg.Solid(cell.Kind) {
		name := reg.Name(cell.Kind)
		res, err := p.grid.Dig(x, y)
		if err != nil {
			return none
		}
		switch res {
		case world.DigHit:
			return Outcome{Kind: OutcomeHit, X: x, Y: y, Item: name}
		case world.DigDestroyed:
			return Outcome{Kind: OutcomeDestroyed, X: x, Y: y, Item: name}
		}
		return none
	}

	name, ok := p.inv.Selected()
	if !ok {
		return none
	}
	kind, err := reg.Lookup(name)
	if err != nil {
		return none
	}
	if err := p.inv.Remove(name); err != nil {
		return none
	}
	if err := p.grid.Build(x, y, kind); err != nil {
		p.inv.Add(name)
		return none
	}
	return Outcome{Kind: OutcomeBuilt, X: x, Y: y, Item: name}
}

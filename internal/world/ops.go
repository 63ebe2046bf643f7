package world

import "github.com/vovakirdan/tui-craft/internal/kinds"

// DigResult describes what a single dig did to a cell.
type DigResult int

const (
	DigNone      DigResult = iota // Target was not solid
	DigHit                        // Health went down, cell still stands
	DigDestroyed                  // Cell turned into air holding its drop
)

func (r DigResult) String() string {
	switch r {
	case DigHit:
		return "hit"
	case DigDestroyed:
		return "destroyed"
	default:
		return "none"
	}
}

// Dig removes one point of health from a solid cell. At zero the cell
// becomes pickable air carrying the kind's drop.
func (g *Grid) Dig(x, y int) (DigResult, error) {
	i, err := g.index(x, y)
	if err != nil {
		return DigNone, err
	}
	c := &g.cells[i]
	def, err := g.reg.Get(c.Kind)
	if err != nil || !def.Solid {
		return DigNone, err
	}

	c.Health--
	g.markIndex(i, x, y)
	if c.Health > 0 {
		return DigHit, nil
	}

	*c = Cell{
		Kind:     kinds.Air,
		Pickable: true,
		Drop:     def.Drop,
		Dirty:    true,
	}
	return DigDestroyed, nil
}

// Build overwrites (x, y) with a fresh cell of kind. It does not check
// what was there before.
func (g *Grid) Build(x, y int, kind kinds.KindID) error {
	return g.Set(x, y, kind)
}

// Pick collects the drop lying at (x, y). ok is false when nothing was there.
func (g *Grid) Pick(x, y int) (drop kinds.KindID, ok bool, err error) {
	i, err := g.index(x, y)
	if err != nil {
		return 0, false, err
	}
	c := &g.cells[i]
	if !c.Pickable {
		return 0, false, nil
	}
	drop = c.Drop
	c.Pickable = false
	c.Drop = kinds.Air
	g.markIndex(i, x, y)
	return drop, true, nil
}

package world

import "github.com/vovakirdan/tui-craft/internal/kinds"

// Cell is the terrain state of one grid position.
// Display fields (color, glyph) live in the kind registry.
type Cell struct {
	Kind     kinds.KindID
	Health   int          // Remaining digs; meaningful only for solid kinds
	Pickable bool         // A dropped item waits here; implies Kind is not solid
	Drop     kinds.KindID // Item released by Pick, valid only while Pickable
	Dirty    bool         // Changed since the tracker last collected
}

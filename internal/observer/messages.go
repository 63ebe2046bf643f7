package observer

import "github.com/vovakirdan/tui-craft/internal/core"

// Message types sent to observers.
const (
	TypeSnapshot = "snapshot"
	TypeFrame    = "frame"
)

// SnapshotMsg carries the whole world. Cells are kind ids in row-major
// order; Palette maps ids to kind names.
type SnapshotMsg struct {
	Type    string    `json:"type"`
	Seq     uint64    `json:"seq"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Palette []string  `json:"palette"`
	Cells   []uint16  `json:"cells"`
	Drops   []CellMsg `json:"drops,omitempty"`
	Player  RectMsg   `json:"player"`
}

// FrameMsg carries the cells that changed since the previous message.
type FrameMsg struct {
	Type   string    `json:"type"`
	Seq    uint64    `json:"seq"`
	Cells  []CellMsg `json:"cells,omitempty"`
	Player RectMsg   `json:"player"`
}

// CellMsg is the state of one cell.
type CellMsg struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Kind     uint16 `json:"kind"`
	Pickable bool   `json:"pickable,omitempty"`
	Drop     uint16 `json:"drop,omitempty"`
}

// RectMsg is the cells the player occupies.
type RectMsg struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func rectMsg(r core.Rect) RectMsg {
	return RectMsg{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

package core

// EventType names a player action worth recording.
type EventType string

const (
	EventSpawn EventType = "spawn"
	EventJump  EventType = "jump"
	EventHit   EventType = "hit"
	EventDig   EventType = "dig"
	EventPick  EventType = "pick"
	EventBuild EventType = "build"
)

// Event is one thing that happened in a session at a given physics tick.
type Event struct {
	Seed int64     `json:"seed"` // World the event happened in
	Tick int       `json:"tick"`
	Type EventType `json:"type"`
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Item string    `json:"item,omitempty"`
}

// EventSink receives session events as they happen.
// Sessions keep running when Record fails.
type EventSink interface {
	Record(ev Event) error
}

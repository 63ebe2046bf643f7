package observer

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

func testGrid(t *testing.T) (*world.Grid, kinds.KindID) {
	t.Helper()
	reg, err := kinds.Default()
	if err != nil {
		t.Fatal(err)
	}
	ground, _ := reg.Lookup("ground")
	g, err := world.NewGrid(4, 3, reg)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		_ = g.Set(x, 2, ground)
	}
	return g, ground
}

func readJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
}

func TestSnapshotThenFrames(t *testing.T) {
	g, ground := testGrid(t)
	tracker := world.NewTracker()
	hub := NewHub(nil)
	hub.Publish(g, tracker.Collect(g, nil), core.NewRect(1, 0, 1, 2))

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var snap SnapshotMsg
	readJSON(t, conn, &snap)
	if snap.Type != TypeSnapshot || snap.Width != 4 || snap.Height != 3 || len(snap.Cells) != 12 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Cells[8] != uint16(ground) || snap.Cells[0] != uint16(kinds.Air) {
		t.Errorf("snapshot cells = %v", snap.Cells)
	}
	if snap.Palette[ground] != "ground" || snap.Player != (RectMsg{X: 1, Y: 0, W: 1, H: 2}) {
		t.Errorf("palette=%v player=%+v", snap.Palette, snap.Player)
	}

	_, _ = g.Dig(3, 2)
	_, _ = g.Dig(3, 2)
	_, _ = g.Dig(3, 2)
	hub.Publish(g, tracker.Collect(g, nil), core.NewRect(1, 0, 1, 2))

	var frame FrameMsg
	readJSON(t, conn, &frame)
	if frame.Type != TypeFrame || frame.Seq <= snap.Seq {
		t.Fatalf("frame = %+v", frame)
	}
	expected := []CellMsg{{X: 3, Y: 2, Kind: uint16(kinds.Air), Pickable: true, Drop: uint16(ground)}}
	if len(frame.Cells) != 1 || frame.Cells[0] != expected[0] {
		t.Errorf("frame cells = %+v, expected %+v", frame.Cells, expected)
	}
}

func TestIdleFrameNotSent(t *testing.T) {
	g, _ := testGrid(t)
	tracker := world.NewTracker()
	hub := NewHub(nil)
	hub.Publish(g, tracker.Collect(g, nil), core.NewRect(0, 0, 1, 2))

	c := hub.register()
	<-c.out // snapshot

	hub.Publish(g, tracker.Collect(g, nil), core.NewRect(0, 0, 1, 2))
	select {
	case b := <-c.out:
		t.Errorf("unchanged world sent %s", b)
	default:
	}

	hub.Publish(g, tracker.Collect(g, nil), core.NewRect(1, 0, 1, 2))
	select {
	case <-c.out:
	default:
		t.Error("player movement should be sent")
	}
}

func TestSlowObserverDropped(t *testing.T) {
	g, ground := testGrid(t)
	tracker := world.NewTracker()
	hub := NewHub(nil)
	hub.Publish(g, tracker.Collect(g, nil), core.Rect{})

	c := hub.register()
	for i := 0; i <= queueSize; i++ {
		_ = g.Set(i%4, 1, ground)
		hub.Publish(g, tracker.Collect(g, nil), core.NewRect(i, 0, 1, 1))
	}

	if hub.Observers() != 0 {
		t.Fatal("observer with a full queue should be dropped")
	}
	n := 0
	for range c.out {
		n++
	}
	if n != queueSize {
		t.Errorf("drained %d queued messages, expected %d", n, queueSize)
	}
}

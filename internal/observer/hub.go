// Package observer streams a sandbox world to websocket spectators.
// The hub keeps its own copy of the world, fed from published frames, so
// connection goroutines never read the live grid.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-craft/internal/core"
	"github.com/vovakirdan/tui-craft/internal/kinds"
	"github.com/vovakirdan/tui-craft/internal/world"
)

// queueSize is how many messages an observer may lag behind before it is
// dropped.
const queueSize = 32

type mirrorCell struct {
	kind     kinds.KindID
	pickable bool
	drop     kinds.KindID
}

type client struct {
	out chan []byte
}

// Hub implements world.FrameSink and serves observers.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	width   int
	height  int
	palette []string
	cells   []mirrorCell
	player  core.Rect
	seq     uint64
	clients map[*client]struct{}
}

// NewHub creates a hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish updates the mirror from f and forwards the change to every
// observer. A full frame resends the whole world.
func (h *Hub) Publish(g *world.Grid, f world.Frame, occupied core.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	if f.Full || h.width != g.Width() || h.height != g.Height() {
		h.copyGrid(g)
		h.player = occupied
		h.broadcastLocked(h.snapshotLocked())
		return
	}

	if len(f.Cells) == 0 && occupied == h.player {
		return
	}
	msg := FrameMsg{Type: TypeFrame, Seq: h.seq, Player: rectMsg(occupied)}
	for _, u := range f.Cells {
		h.cells[u.Y*h.width+u.X] = mirrorCell{kind: u.Kind, pickable: u.Pickable, drop: u.Drop}
		msg.Cells = append(msg.Cells, CellMsg{X: u.X, Y: u.Y, Kind: uint16(u.Kind), Pickable: u.Pickable, Drop: uint16(u.Drop)})
	}
	h.player = occupied

	b, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode frame", "err", err)
		return
	}
	h.broadcastLocked(b)
}

func (h *Hub) copyGrid(g *world.Grid) {
	h.width, h.height = g.Width(), g.Height()
	h.cells = make([]mirrorCell, h.width*h.height)
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			c, _ := g.Get(x, y)
			h.cells[y*h.width+x] = mirrorCell{kind: c.Kind, pickable: c.Pickable, drop: c.Drop}
		}
	}

	defs := g.Registry().Defs()
	h.palette = make([]string, len(defs))
	for i, d := range defs {
		h.palette[i] = d.Name
	}
}

func (h *Hub) snapshotLocked() []byte {
	msg := SnapshotMsg{
		Type:    TypeSnapshot,
		Seq:     h.seq,
		Width:   h.width,
		Height:  h.height,
		Palette: h.palette,
		Cells:   make([]uint16, len(h.cells)),
		Player:  rectMsg(h.player),
	}
	for i, c := range h.cells {
		msg.Cells[i] = uint16(c.kind)
		if c.pickable {
			msg.Drops = append(msg.Drops, CellMsg{
				X: i % h.width, Y: i / h.width, Kind: uint16(c.kind), Pickable: true, Drop: uint16(c.drop),
			})
		}
	}
	b, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode snapshot", "err", err)
		return nil
	}
	return b
}

// broadcastLocked queues b for every observer, dropping those whose queue
// is full.
func (h *Hub) broadcastLocked(b []byte) {
	if b == nil {
		return
	}
	for c := range h.clients {
		select {
		case c.out <- b:
		default:
			h.logger.Warn("observer too slow, dropping")
			h.removeLocked(c)
		}
	}
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.out)
}

// register adds an observer whose queue starts with the current snapshot.
func (h *Hub) register() *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &client{out: make(chan []byte, queueSize)}
	if h.width > 0 {
		c.out <- h.snapshotLocked()
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// Close disconnects every observer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// Observers returns the number of connected observers.
func (h *Hub) Observers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler upgrades requests to websocket observer connections.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c := h.register()
		defer h.unregister(c)
		h.logger.Info("observer connected", "remote", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Observers only listen; reading keeps control frames flowing and
		// notices the disconnect.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-c.out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "fell behind"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}

// Serve listens on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	h.logger.Info("observer stream listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

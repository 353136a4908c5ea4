package statistics

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const writeWait = 10 * time.Second

// Hub keeps the open dashboard sockets and pushes one shared snapshot to all of them.
type Hub struct {
	connections map[*websocket.Conn]struct{}
	mutex       sync.Mutex
	snapshot    func(ctx context.Context) (*Dashboard, error)
	viewers     prometheus.Gauge
}

func NewHub(snapshot func(ctx context.Context) (*Dashboard, error)) *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]struct{}),
		snapshot:    snapshot,
	}
}

// TrackViewers keeps g equal to the number of open sockets.
func (h *Hub) TrackViewers(g prometheus.Gauge) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.viewers = g
	h.track()
}

// track must be called with the mutex held.
func (h *Hub) track() {
	if h.viewers != nil {
		h.viewers.Set(float64(len(h.connections)))
	}
}

// Register sends conn a snapshot and keeps it only if that write succeeds.
func (h *Hub) Register(ctx context.Context, conn *websocket.Conn) error {
	d, err := h.snapshot(ctx)
	if err != nil {
		return err
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if err := writeJSON(conn, d); err != nil {
		return err
	}
	h.connections[conn] = struct{}{}
	h.track()
	return nil
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.connections[conn]; ok {
		_ = conn.Close()
		delete(h.connections, conn)
		h.track()
	}
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return len(h.connections)
}

// Broadcast computes a snapshot and writes it to every socket. Sockets that
// fail to take the write are dropped.
func (h *Hub) Broadcast(ctx context.Context) {
	if h.Count() == 0 {
		return
	}

	d, err := h.snapshot(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("dashboard snapshot failed")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		if err := writeJSON(conn, d); err != nil {
			_ = conn.Close()
			delete(h.connections, conn)
		}
	}
	h.track()
}

// Run broadcasts every interval until ctx is cancelled, then closes all sockets.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Close()
			return
		case <-ticker.C:
			h.Broadcast(ctx)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		delete(h.connections, conn)
	}
	h.track()
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pieceful-app/pieceful-server/internal/puzzle"
)

// Hub fans project snapshots out to websocket subscribers. It implements
// puzzle.Notifier: the core emits state-changed signals, the hub delivers.
type Hub struct {
	logger *slog.Logger
	mu     sync.Mutex
	conns  map[uuid.UUID]map[*websocket.Conn]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  map[uuid.UUID]map[*websocket.Conn]struct{}{},
	}
}

func (hub *Hub) add(id uuid.UUID, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.conns[id] == nil {
		hub.conns[id] = map[*websocket.Conn]struct{}{}
	}
	hub.conns[id][conn] = struct{}{}
}

func (hub *Hub) remove(id uuid.UUID, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	delete(hub.conns[id], conn)
	if len(hub.conns[id]) == 0 {
		delete(hub.conns, id)
	}
}

func (hub *Hub) ProjectChanged(p *puzzle.Project) {
	dto := NewProjectDTO(p)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for conn := range hub.conns[p.ID] {
		if err := conn.WriteJSON(dto); err != nil {
			hub.logger.Warn("unable to push project snapshot",
				"project_id", p.ID, "error", err)
			conn.Close()
			delete(hub.conns[p.ID], conn)
		}
	}
}

// ConnectWS upgrades the request and streams project snapshots to the client
// until it disconnects. The stream is push-only; inbound messages are
// discarded.
func (h *PuzzleHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}

	// The initial snapshot goes out before the conn joins the hub. Once
	// registered, broadcasts may write to the conn at any moment, and
	// writes to a websocket connection must never overlap.
	if err := conn.WriteJSON(NewProjectDTO(p)); err != nil {
		h.logger.Warn("unable to send initial snapshot", "error", err)
		conn.Close()
		return
	}

	h.hub.add(p.ID, conn)
	defer func() {
		h.hub.remove(p.ID, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

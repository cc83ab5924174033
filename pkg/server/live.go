package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/toastline-dev/toastline/pkg/toast"
)

// snapshot is one full view of the store, pushed to every live client on
// every change. Positions carries the raw entities for clients that render
// themselves; HTML carries pre-rendered region markup for the demo page.
type snapshot struct {
	Positions map[toast.Position][]toast.Toast `json:"positions"`
	HTML      map[toast.Position]string        `json:"html"`
}

// snapshot builds the current view. Inside the store-subscription effect the
// queue reads are tracked, which is exactly what keeps the broadcasts
// flowing.
func (s *Server) snapshot() snapshot {
	snap := snapshot{
		Positions: make(map[toast.Position][]toast.Toast, len(toast.Positions)),
		HTML:      make(map[toast.Position]string, len(toast.Positions)),
	}

	for _, pos := range toast.Positions {
		toasts := s.toaster.Store().Queue(pos).Get()
		snap.Positions[pos] = toasts
		snap.HTML[pos] = s.renderer.Region(pos, toasts)
	}
	return snap
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The bridge is same-origin in production; the demo page relies on this
	// permissive check for local use.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleLive upgrades the connection and streams snapshots until the client
// goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := s.hub.add(conn)
	s.logger.Debug("live client connected", "remote", conn.RemoteAddr().String())

	// Seed the new client with the current state.
	c.send(s.snapshot())

	// Reads are discarded; the loop exists to notice disconnects.
	go func() {
		defer s.hub.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// hub tracks connected live clients.
type hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

func (h *hub) add(conn *websocket.Conn) *client {
	c := &client{conn: conn, logger: h.logger}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

// broadcast pushes a snapshot to every client. Slow or dead clients are
// dropped rather than allowed to stall the effect.
func (h *hub) broadcast(snap snapshot) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if !c.send(snap) {
			h.remove(c)
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// client is one live WebSocket connection. The mutex serializes writes; the
// websocket package forbids concurrent writers.
type client struct {
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(snap snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteJSON(snap); err != nil {
		c.logger.Debug("live client write failed", "error", err)
		return false
	}
	return true
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.Close()
}

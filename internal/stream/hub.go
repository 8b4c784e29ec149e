// Package stream pushes game snapshots to websocket subscribers.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/gridiron-sim/internal/domain/games"
	"github.com/preston-bernstein/gridiron-sim/internal/logging"
)

// Message types sent to subscribers.
const (
	MsgSnapshot = "SNAPSHOT"
	MsgFinal    = "FINAL"
)

// Message is the JSON envelope written to every client.
type Message struct {
	Type string     `json:"type"`
	Game games.Game `json:"game"`
}

// Lookup returns the current snapshot for a game.
type Lookup interface {
	GameByID(id string) (games.Game, bool)
}

// Hub tracks subscribers per game id and fans snapshots out to them.
type Hub struct {
	lookup   Lookup
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	subs   map[string]map[*client]struct{}
	closed bool
}

// NewHub builds a hub that seeds new subscribers from lookup.
func NewHub(lookup Lookup, logger *slog.Logger) *Hub {
	return &Hub{
		lookup: lookup,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     sameOrigin,
		},
		subs: make(map[string]map[*client]struct{}),
	}
}

// Serve upgrades the request and subscribes the connection to gameID. The
// current snapshot is sent first, then every published snapshot after it.
// Joining a finished game receives the final snapshot and a normal close.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, gameID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newClient(h, gameID, conn)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		c.close()
		_ = conn.Close()
		return nil
	}
	set, ok := h.subs[gameID]
	if !ok {
		set = make(map[*client]struct{})
		h.subs[gameID] = set
	}
	set[c] = struct{}{}
	if h.lookup != nil {
		if g, found := h.lookup.GameByID(gameID); found {
			if msg, err := prepare(g); err == nil {
				c.enqueue(msg)
			}
			if g.Finished() {
				h.removeLocked(c)
			}
		}
	}
	h.mu.Unlock()

	logging.Info(h.logger, "stream subscriber joined", slog.String(logging.FieldGameID, gameID))
	go c.writePump()
	go c.readPump()
	return nil
}

// Publish sends g to its subscribers. Clients whose buffers are full are
// dropped. A finished game closes every subscription after the final message.
func (h *Hub) Publish(g games.Game) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[g.ID]
	if len(set) == 0 {
		return
	}
	msg, err := prepare(g)
	if err != nil {
		logging.Error(h.logger, "stream encode failed", err, slog.String(logging.FieldGameID, g.ID))
		return
	}

	for c := range set {
		if !c.enqueue(msg) {
			logging.Warn(h.logger, "stream subscriber too slow, dropping", slog.String(logging.FieldGameID, g.ID))
			h.removeLocked(c)
		}
	}
	if g.Finished() {
		for c := range set {
			h.removeLocked(c)
		}
	}
}

// Subscribers returns how many clients follow gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[gameID])
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, set := range h.subs {
		for c := range set {
			h.removeLocked(c)
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	set, ok := h.subs[c.gameID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, c.gameID)
	}
	c.close()
}

func prepare(g games.Game) (*websocket.PreparedMessage, error) {
	msgType := MsgSnapshot
	if g.Finished() {
		msgType = MsgFinal
	}
	data, err := json.Marshal(Message{Type: msgType, Game: g})
	if err != nil {
		return nil, err
	}
	return websocket.NewPreparedMessage(websocket.TextMessage, data)
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

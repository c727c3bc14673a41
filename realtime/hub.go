package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Snapshot is one push frame: the full collection, newest first, as it
// stood after a change. Delivery is fire-and-forget and at least once;
// frames for different collections carry no ordering guarantee relative
// to each other.
type Snapshot struct {
	Collection string      `json:"collection"`
	Data       interface{} `json:"data"`
	At         time.Time   `json:"at"`
}

// Hub fans collection snapshots out to connected dashboard clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast sends the snapshot to every client subscribed to the
// collection. A client whose send buffer is full misses this frame; the
// next change will carry the full state again.
func (h *Hub) Broadcast(collection string, data interface{}) {
	frame, err := json.Marshal(Snapshot{
		Collection: collection,
		Data:       data,
		At:         time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("failed to marshal snapshot", zap.String("collection", collection), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.subscribed(collection) {
			continue
		}
		select {
		case c.send <- frame:
		default:
			h.logger.Warn("dropping snapshot for slow client", zap.String("collection", collection))
		}
	}
}

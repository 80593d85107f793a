package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"wordgame-service/domain"
)

// Hub is the registry of logged-in clients, addressable by player id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	names   map[string]string // folded name -> player id

	nextID atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		names:   make(map[string]string),
	}
}

// Register assigns a fresh player id to c under name. Names are unique among
// connected players, compared case-insensitively.
func (h *Hub) Register(c *Client, name string) (string, error) {
	key := strings.ToLower(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, taken := h.names[key]; taken {
		return "", fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
	}

	id := "P" + strconv.FormatUint(h.nextID.Add(1), 10)
	h.clients[id] = c
	h.names[key] = id
	return id, nil
}

// Unregister removes the client registered under playerID.
func (h *Hub) Unregister(playerID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[playerID]; !ok {
		return
	}
	delete(h.clients, playerID)
	if key := strings.ToLower(name); h.names[key] == playerID {
		delete(h.names, key)
	}
}

// Send queues line for the player. It never blocks and reports false when the
// player is unknown or its send buffer is full.
func (h *Hub) Send(playerID, line string) bool {
	h.mu.RLock()
	c, ok := h.clients[playerID]
	h.mu.RUnlock()

	if !ok {
		return false
	}
	if !c.enqueue(line) {
		zap.L().Warn("Client send buffer full, dropping message",
			zap.String("conn_id", c.ConnID), zap.String("player_id", playerID))
		return false
	}
	return true
}

// Count returns the number of logged-in clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

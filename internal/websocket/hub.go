package websocket

import (
	"context"
	"sync"

	"messagely/internal/events"
)

// Hub tracks live connections by username and fans events out to them.
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// users maps a username to every connection it has open
	users map[string]map[*Client]struct{}

	// closed is set once Run has dropped every client.
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		users:   make(map[string]map[*Client]struct{}),
	}
}

// Run blocks until ctx is cancelled, then drops every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// Register and Unregister apply under the hub lock, so an Unregister always
// sees the Register that preceded it.
func (h *Hub) Register(client *Client) {
	h.addClient(client)
}

func (h *Hub) Unregister(client *Client) {
	h.removeClient(client)
}

// BroadcastToUser sends a message to all connections for a specific user
func (h *Hub) BroadcastToUser(username string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.users[username] {
		if client.SendMessage(payload) {
			delivered++
		}
	}
	return delivered
}

// Publish delivers payload to the user behind a per-user channel. It lets the
// hub act as the event transport when there is no Redis.
func (h *Hub) Publish(_ context.Context, channel string, payload []byte) error {
	username, ok := events.UsernameFromChannel(channel)
	if !ok {
		return nil
	}
	h.BroadcastToUser(username, payload)
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) UserConnectionCount(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[username])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(client.Send)
		return
	}

	h.clients[client.ID] = client
	if _, ok := h.users[client.Username]; !ok {
		h.users[client.Username] = make(map[*Client]struct{})
	}
	h.users[client.Username][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)

	if conns, ok := h.users[client.Username]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.users, client.Username)
		}
	}

	close(client.Send)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.Send)
		delete(h.clients, id)
	}
	h.users = make(map[string]map[*Client]struct{})
	h.closed = true
}

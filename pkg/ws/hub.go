package ws

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// Hub tracks the set of connected clients per chat room and pushes new
// messages to them.
type Hub struct {
	rooms *xsync.MapOf[string, *room]
}

type room struct {
	mutex   sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: xsync.NewMapOf[*room]()}
}

func (h *Hub) Join(roomID string, client *Client) {
	r, _ := h.rooms.LoadOrStore(roomID, &room{clients: map[*Client]bool{}})
	r.mutex.Lock()
	r.clients[client] = true
	r.mutex.Unlock()
}

func (h *Hub) Leave(roomID string, client *Client) {
	r, ok := h.rooms.Load(roomID)
	if !ok {
		return
	}

	r.mutex.Lock()
	delete(r.clients, client)
	r.mutex.Unlock()
}

// Broadcast pushes msg to every client joined to the room. Clients whose
// send buffer is full are dropped rather than blocking the caller.
func (h *Hub) Broadcast(roomID string, msg []byte) {
	r, ok := h.rooms.Load(roomID)
	if !ok {
		return
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for client := range r.clients {
		select {
		case client.send <- msg:
		default:
			client.Close()
		}
	}
}

package hub

import (
	"github.com/roomhub/socket/src/types"
)

// OnConnection registers a callback for new authenticated connections.
func (h *Hub) OnConnection(cb func(connID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConnect = append(h.onConnect, cb)
}

// OnDisconnection registers a callback invoked after room cleanup.
func (h *Hub) OnDisconnection(cb func(connID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDisconn = append(h.onDisconn, cb)
}

// ConnectedClients returns a list of connected client IDs.
func (h *Hub) ConnectedClients() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// ClientInfo returns info for a connected client, or nil.
func (h *Hub) ClientInfo(connID string) *types.ClientInfo {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	info := client.Info()
	return &info
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ListRooms returns the names of all non-empty rooms.
func (h *Hub) ListRooms() []string {
	return h.rooms.ListRooms()
}

// RoomCount returns the number of non-empty rooms.
func (h *Hub) RoomCount() int {
	return h.rooms.RoomCount()
}

// MembersOf returns a snapshot of a room's current members.
func (h *Hub) MembersOf(room string) []types.Member {
	return h.rooms.MembersOf(room)
}

package hub

import (
	"sync"

	"github.com/roomhub/socket/src/registry"
	"github.com/roomhub/socket/src/types"
	"github.com/rs/zerolog"
)

// MessageBridge relays chat broadcasts to other server instances.
// Defined here to avoid circular imports with the bridge package.
type MessageBridge interface {
	Publish(msg types.ChatMessage) error
	Available() bool
}

// Hub owns all live client connections and the room registry, and
// processes connection events one at a time on a single event loop.
// Each join/leave/chat/disconnect runs to completion before the next,
// so registry mutation and the presence publish that follows it are
// atomic with respect to every other handler.
type Hub struct {
	clients map[string]*Client
	rooms   *registry.RoomRegistry

	register   chan *Client
	unregister chan *Client
	incoming   chan types.Frame
	broadcast  chan types.ChatMessage
	localCast  chan types.ChatMessage // messages from bridge, no re-publish

	onConnect []func(string)
	onDisconn []func(string)

	bridge MessageBridge
	mu     sync.RWMutex
	logger zerolog.Logger
	done   chan struct{}
}

// New creates a new Hub instance with an empty room registry.
func New(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      registry.New(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan types.Frame, 256),
		broadcast:  make(chan types.ChatMessage, 256),
		localCast:  make(chan types.ChatMessage, 256),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// SetBridge attaches a cross-instance chat bridge to the hub. When set,
// chat broadcasts are also forwarded to other instances.
func (h *Hub) SetBridge(b MessageBridge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bridge = b
}

// DeliverLocal delivers a chat message from the bridge to local room
// members only. It does not re-publish to Redis, preventing loops.
func (h *Hub) DeliverLocal(msg types.ChatMessage) {
	h.localCast <- msg
}

// Run starts the hub event loop. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case frame := <-h.incoming:
			h.dispatch(frame)
		case msg := <-h.broadcast:
			h.publishToBridge(msg)
			h.deliverChat(msg)
		case msg := <-h.localCast:
			h.deliverChat(msg)
		case <-h.done:
			return
		}
	}
}

// Stop halts the hub event loop.
func (h *Hub) Stop() {
	close(h.done)
}

// Register queues an authenticated client for registration.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister queues a client for removal and room cleanup.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Publish queues a chat broadcast to a room's current members, relayed
// across instances when a bridge is attached.
func (h *Hub) Publish(msg types.ChatMessage) {
	h.broadcast <- msg
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	h.logger.Info().
		Str("client_id", c.ID).
		Str("username", c.Identity.Username).
		Msg("client registered")

	for _, cb := range h.onConnect {
		cb(c.ID)
	}
}

// removeClient is the disconnect reaper: it removes the connection from
// every room it joined and publishes presence once per affected room.
// Runs exactly once per connection loss; a client that never joined a
// room produces an empty affected list and no broadcasts.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	h.mu.Unlock()

	affected := h.rooms.RemoveConnectionEverywhere(c.ID)
	for _, room := range affected {
		h.publishPresence(room)
	}

	c.Close()
	h.logger.Info().
		Str("client_id", c.ID).
		Str("username", c.Identity.Username).
		Int("rooms_left", len(affected)).
		Msg("client unregistered")

	for _, cb := range h.onDisconn {
		cb(c.ID)
	}
}

// sendTo delivers a payload to one client's send buffer. A full buffer
// drops the payload rather than blocking the event loop.
func (h *Hub) sendTo(connID string, v any) bool {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	select {
	case client.Send <- v:
		return true
	default:
		h.logger.Warn().Str("client_id", connID).Msg("send buffer full, dropping")
		return false
	}
}

func (h *Hub) client(connID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[connID]
}

func (h *Hub) publishToBridge(msg types.ChatMessage) {
	h.mu.RLock()
	b := h.bridge
	h.mu.RUnlock()

	if b == nil || !b.Available() {
		return
	}
	if err := b.Publish(msg); err != nil {
		h.logger.Error().Err(err).Msg("bridge publish failed")
	}
}

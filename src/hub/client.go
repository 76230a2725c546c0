package hub

import (
	"sync"
	"time"

	"github.com/roomhub/socket/src/types"
)

// Client wraps one authenticated WebSocket connection. The bound Identity
// is set at handshake time and never changes; unauthenticated connections
// are rejected before a Client exists.
type Client struct {
	ID          string
	Identity    types.Identity
	conn        types.Conn
	hub         *Hub
	Send        chan any
	connectedAt time.Time
	mu          sync.Mutex
	done        chan struct{}
	closed      bool
}

// NewClient creates a client wrapper for an authenticated connection.
func NewClient(id string, identity types.Identity, conn types.Conn, h *Hub) *Client {
	return &Client{
		ID:          id,
		Identity:    identity,
		conn:        conn,
		hub:         h,
		Send:        make(chan any, 256),
		connectedAt: time.Now(),
		done:        make(chan struct{}),
	}
}

// Info returns metadata about this client, including the rooms it
// currently belongs to.
func (c *Client) Info() types.ClientInfo {
	return types.ClientInfo{
		ID:          c.ID,
		Username:    c.Identity.Username,
		ConnectedAt: c.connectedAt,
		Rooms:       c.hub.rooms.RoomsOf(c.ID),
	}
}

// ReadPump reads frames from the WebSocket and forwards them to the hub.
// Any read error, including malformed JSON, ends the connection and
// triggers room cleanup via the unregister path.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		var frame types.Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			return
		}
		frame.ConnID = c.ID
		c.hub.incoming <- frame
	}
}

// WritePump writes payloads from the send channel to the WebSocket.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		select {
		case v, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(v); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close signals the client to stop its pumps.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
		close(c.Send)
	}
}

package types

import "time"

// Event names carried on the wire. Inbound names match what clients send;
// request/reply events answer with the same name plus a ":result" suffix.
const (
	EventJoinRoom  = "joinRoom"
	EventLeaveRoom = "leaveRoom"
	EventChat      = "chat:message"
	EventListRooms = "rooms:list"
	EventUserlist  = "room:userlist"

	ResultSuffix = ":result"
)

// ServerUser is the author name on system-generated join/leave notices.
const ServerUser = "Server"

// Identity is the verified user bound to a connection at handshake time.
// Immutable for the connection's lifetime.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Member is one connection's entry in a room's member set.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Frame is an inbound client message.
type Frame struct {
	Event string `json:"event"`
	Room  string `json:"room,omitempty"`
	Text  string `json:"text,omitempty"`

	// ConnID is stamped by the read pump, never trusted from the wire.
	ConnID string `json:"-"`
}

// Ack answers a joinRoom, leaveRoom, or rooms:list request. It is sent
// only to the requesting connection.
type Ack struct {
	Event string   `json:"event"`
	OK    bool     `json:"ok"`
	Room  string   `json:"room,omitempty"`
	Rooms []string `json:"rooms,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Userlist is the presence snapshot published to a room's members after
// every membership change.
type Userlist struct {
	Event string   `json:"event"`
	Room  string   `json:"room"`
	Users []Member `json:"users"`
}

// ChatMessage is a chat broadcast. User is ServerUser for join/leave
// notices. Messages are transient, constructed per event and never stored.
type ChatMessage struct {
	Event     string    `json:"event"`
	Room      string    `json:"room"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientInfo holds metadata about a connected client.
type ClientInfo struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	ConnectedAt time.Time `json:"connected_at"`
	Rooms       []string  `json:"rooms"`
}

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	WriteJSON(v any) error
	ReadJSON(v any) error
	Close() error
}

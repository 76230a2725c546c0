package hub

import (
	"strings"
	"time"

	"github.com/roomhub/socket/src/registry"
	"github.com/roomhub/socket/src/types"
)

// dispatch routes one inbound frame to its handler. A panic inside a
// handler is contained here: the requester gets a failed ack and the
// connection and the process stay up.
func (h *Hub) dispatch(frame types.Frame) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().
				Interface("panic", r).
				Str("event", frame.Event).
				Str("client_id", frame.ConnID).
				Msg("handler panic recovered")
			switch frame.Event {
			case types.EventJoinRoom, types.EventLeaveRoom, types.EventListRooms:
				h.sendTo(frame.ConnID, types.Ack{
					Event: frame.Event + types.ResultSuffix,
					OK:    false,
					Error: "internal error",
				})
			}
		}
	}()

	switch frame.Event {
	case types.EventJoinRoom:
		h.handleJoin(frame)
	case types.EventLeaveRoom:
		h.handleLeave(frame)
	case types.EventChat:
		h.routeChat(frame)
	case types.EventListRooms:
		h.handleListRooms(frame)
	default:
		h.logger.Debug().Str("event", frame.Event).Msg("unknown event, dropping")
	}
}

func (h *Hub) handleJoin(frame types.Frame) {
	c := h.client(frame.ConnID)
	if c == nil {
		return
	}

	room := h.rooms.Join(frame.Room, c.ID, c.Identity.Username)
	h.logger.Debug().
		Str("client_id", c.ID).
		Str("room", room).
		Msg("joined room")

	h.notifyRoomExcept(room, c.ID, c.Identity.Username+" joined "+room)
	h.sendTo(c.ID, types.Ack{Event: types.EventJoinRoom + types.ResultSuffix, OK: true, Room: room})
	h.publishPresence(room)
}

func (h *Hub) handleLeave(frame types.Frame) {
	c := h.client(frame.ConnID)
	if c == nil {
		return
	}

	room := h.rooms.Leave(frame.Room, c.ID)
	h.logger.Debug().
		Str("client_id", c.ID).
		Str("room", room).
		Msg("left room")

	h.notifyRoomExcept(room, c.ID, c.Identity.Username+" left "+room)
	h.sendTo(c.ID, types.Ack{Event: types.EventLeaveRoom + types.ResultSuffix, OK: true, Room: room})
	h.publishPresence(room)
}

// routeChat relays a chat message to the target room's current members,
// sender included when it is a member. Whitespace-only text is dropped
// without an error: there is no ack on this event. Membership is not
// required to post; a connection may send to any room name.
func (h *Hub) routeChat(frame types.Frame) {
	text := strings.TrimSpace(frame.Text)
	if text == "" {
		return
	}
	c := h.client(frame.ConnID)
	if c == nil {
		return
	}

	msg := types.ChatMessage{
		Event:     types.EventChat,
		Room:      registry.Normalize(frame.Room),
		User:      c.Identity.Username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	h.publishToBridge(msg)
	h.deliverChat(msg)
}

func (h *Hub) handleListRooms(frame types.Frame) {
	h.sendTo(frame.ConnID, types.Ack{
		Event: types.EventListRooms + types.ResultSuffix,
		OK:    true,
		Rooms: h.rooms.ListRooms(),
	})
}

// deliverChat sends a chat message to every current member of its room.
func (h *Hub) deliverChat(msg types.ChatMessage) {
	for _, m := range h.rooms.MembersOf(msg.Room) {
		h.sendTo(m.ID, msg)
	}
}

// notifyRoomExcept sends a server-authored notice to a room's members,
// excluding the connection the notice is about. Notices are local to
// this instance and are not bridged.
func (h *Hub) notifyRoomExcept(room, exceptID, text string) {
	msg := types.ChatMessage{
		Event:     types.EventChat,
		Room:      room,
		User:      types.ServerUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	for _, m := range h.rooms.MembersOf(room) {
		if m.ID == exceptID {
			continue
		}
		h.sendTo(m.ID, msg)
	}
}

// publishPresence sends the current member list of a room to all of its
// members. A room emptied by the triggering mutation no longer exists
// and has nobody subscribed, so nothing is published for it. Failure to
// reach one member never blocks delivery to the rest.
func (h *Hub) publishPresence(room string) {
	members := h.rooms.MembersOf(room)
	if len(members) == 0 {
		return
	}
	snapshot := types.Userlist{Event: types.EventUserlist, Room: room, Users: members}
	for _, m := range members {
		h.sendTo(m.ID, snapshot)
	}
}

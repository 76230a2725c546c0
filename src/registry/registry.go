// Package registry tracks which connections belong to which rooms. It is
// the single source of truth for presence; every membership read or write
// in the system goes through it.
package registry

import (
	"sort"
	"sync"

	"github.com/roomhub/socket/src/types"
)

// DefaultRoom is substituted when a client names no room.
const DefaultRoom = "general"

// Normalize maps an absent room name to DefaultRoom. Names are otherwise
// compared by exact string equality, case preserved.
func Normalize(room string) string {
	if room == "" {
		return DefaultRoom
	}
	return room
}

// RoomRegistry is an in-memory mapping of room name to member set.
// Membership is keyed by connection ID, so repeated joins by the same
// connection can never accumulate duplicate records. A reverse index of
// connection to joined rooms keeps disconnect cleanup proportional to the
// rooms the connection actually joined.
//
// Invariants: a room present in the map has at least one member, and a
// connection appears only while live and joined to at least one room.
type RoomRegistry struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]types.Member
	joined map[string]map[string]struct{} // connID -> room names
}

// New creates an empty RoomRegistry.
func New() *RoomRegistry {
	return &RoomRegistry{
		rooms:  make(map[string]map[string]types.Member),
		joined: make(map[string]map[string]struct{}),
	}
}

// Join adds a connection to a room, creating the room on first join.
// Re-joining a room is a no-op, not an error. Returns the normalized
// room name.
func (r *RoomRegistry) Join(room, connID, username string) string {
	room = Normalize(room)

	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[room]
	if members == nil {
		members = make(map[string]types.Member)
		r.rooms[room] = members
	}
	if _, ok := members[connID]; !ok {
		members[connID] = types.Member{ID: connID, Username: username}
	}

	if r.joined[connID] == nil {
		r.joined[connID] = make(map[string]struct{})
	}
	r.joined[connID][room] = struct{}{}

	return room
}

// Leave removes a connection from a room, deleting the room when its last
// member leaves. Leaving a room never joined is a silent no-op. Returns
// the normalized room name.
func (r *RoomRegistry) Leave(room, connID string) string {
	room = Normalize(room)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(room, connID)
	return room
}

func (r *RoomRegistry) leaveLocked(room, connID string) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.rooms, room)
	}

	if joined, ok := r.joined[connID]; ok {
		delete(joined, room)
		if len(joined) == 0 {
			delete(r.joined, connID)
		}
	}
}

// RemoveConnectionEverywhere removes a connection from every room it
// belongs to and returns the affected room names so callers can publish
// updated presence for each. Safe for connections that never joined
// anything.
func (r *RoomRegistry) RemoveConnectionEverywhere(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	joined, ok := r.joined[connID]
	if !ok {
		return nil
	}
	affected := make([]string, 0, len(joined))
	for room := range joined {
		affected = append(affected, room)
	}
	sort.Strings(affected)

	for _, room := range affected {
		r.leaveLocked(room, connID)
	}
	return affected
}

// ListRooms returns the names of all non-empty rooms, sorted.
func (r *RoomRegistry) ListRooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rooms))
	for room := range r.rooms {
		names = append(names, room)
	}
	sort.Strings(names)
	return names
}

// MembersOf returns a snapshot of a room's members ordered by connection
// ID, or nil if the room does not exist.
func (r *RoomRegistry) MembersOf(room string) []types.Member {
	room = Normalize(room)

	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil
	}
	snapshot := make([]types.Member, 0, len(members))
	for _, m := range members {
		snapshot = append(snapshot, m)
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].ID < snapshot[j].ID })
	return snapshot
}

// RoomsOf returns the rooms a connection currently belongs to, sorted.
func (r *RoomRegistry) RoomsOf(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joined, ok := r.joined[connID]
	if !ok {
		return nil
	}
	rooms := make([]string, 0, len(joined))
	for room := range joined {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// RoomCount returns the number of non-empty rooms.
func (r *RoomRegistry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

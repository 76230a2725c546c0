package service

import (
	"fmt"
	"time"

	"github.com/roomhub/socket/src/hub"
	"github.com/roomhub/socket/src/registry"
	"github.com/roomhub/socket/src/types"
	"github.com/rs/zerolog"
)

// Service is the high-level room broadcast API used by the HTTP layer
// and by embedders that want to push messages without a connection.
type Service struct {
	hub    *hub.Hub
	logger zerolog.Logger
}

// New creates a service backed by the given hub.
func New(h *hub.Hub, logger zerolog.Logger) *Service {
	return &Service{hub: h, logger: logger}
}

// Hub returns the underlying hub.
func (s *Service) Hub() *hub.Hub { return s.hub }

// Broadcast sends a server-authored chat message to a room's current
// members, relayed across instances when a bridge is attached.
func (s *Service) Broadcast(room, text string) {
	s.hub.Publish(types.ChatMessage{
		Event:     types.EventChat,
		Room:      registry.Normalize(room),
		User:      types.ServerUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	s.logger.Debug().Str("room", room).Msg("server broadcast queued")
}

// OnConnection registers a callback for new connections.
func (s *Service) OnConnection(cb func(connID string)) {
	s.hub.OnConnection(cb)
}

// OnDisconnection registers a callback for disconnections.
func (s *Service) OnDisconnection(cb func(connID string)) {
	s.hub.OnDisconnection(cb)
}

// ConnectedClients returns IDs of all connected clients.
func (s *Service) ConnectedClients() []string {
	return s.hub.ConnectedClients()
}

// Rooms returns the names of all non-empty rooms.
func (s *Service) Rooms() []string {
	return s.hub.ListRooms()
}

// Members returns the current member list of a room.
func (s *Service) Members(room string) []types.Member {
	return s.hub.MembersOf(room)
}

// ClientInfo returns info for a connected client, or an error.
func (s *Service) ClientInfo(connID string) (*types.ClientInfo, error) {
	info := s.hub.ClientInfo(connID)
	if info == nil {
		return nil, fmt.Errorf("client %s not found", connID)
	}
	return info, nil
}

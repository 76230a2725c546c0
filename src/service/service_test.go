package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/roomhub/socket/src/hub"
	"github.com/roomhub/socket/src/service"
	"github.com/roomhub/socket/src/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConn implements types.Conn without a real WebSocket.
type mockConn struct {
	mu       sync.Mutex
	written  []any
	readCh   chan types.Frame
	closed   bool
	closedCh chan struct{}
}

func newMockConn() *mockConn {
	return &mockConn{
		readCh:   make(chan types.Frame, 16),
		closedCh: make(chan struct{}),
	}
}

func (m *mockConn) WriteJSON(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, v)
	return nil
}

func (m *mockConn) ReadJSON(v any) error {
	select {
	case frame := <-m.readCh:
		if ptr, ok := v.(*types.Frame); ok {
			*ptr = frame
		}
		return nil
	case <-m.closedCh:
		return errClosed
	}
}

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.closedCh)
	}
	return nil
}

func (m *mockConn) chats() []types.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.ChatMessage
	for _, v := range m.written {
		if c, ok := v.(types.ChatMessage); ok {
			out = append(out, c)
		}
	}
	return out
}

type connClosedError struct{}

func (connClosedError) Error() string { return "connection closed" }

var errClosed = connClosedError{}

func newTestService(t *testing.T) (*service.Service, *hub.Hub) {
	t.Helper()
	h := hub.New(zerolog.Nop())
	go h.Run()
	t.Cleanup(func() { h.Stop() })
	return service.New(h, zerolog.Nop()), h
}

func joinClient(t *testing.T, h *hub.Hub, id, username, room string) *mockConn {
	t.Helper()
	conn := newMockConn()
	client := hub.NewClient(id, types.Identity{ID: "u-" + id, Username: username}, conn, h)
	h.Register(client)
	go client.WritePump()
	go client.ReadPump()
	time.Sleep(20 * time.Millisecond)
	conn.readCh <- types.Frame{Event: types.EventJoinRoom, Room: room}
	time.Sleep(30 * time.Millisecond)
	return conn
}

func TestBroadcastReachesRoomMembers(t *testing.T) {
	svc, h := newTestService(t)
	conn1 := joinClient(t, h, "c1", "amy", "design")
	conn2 := joinClient(t, h, "c2", "bob", "design")
	outsider := joinClient(t, h, "c3", "cal", "other")

	svc.Broadcast("design", "deploy starting")
	time.Sleep(50 * time.Millisecond)

	for _, conn := range []*mockConn{conn1, conn2} {
		var found bool
		for _, c := range conn.chats() {
			if c.User == types.ServerUser && c.Text == "deploy starting" {
				found = true
				assert.Equal(t, "design", c.Room)
			}
		}
		assert.True(t, found, "member should receive the broadcast")
	}

	for _, c := range outsider.chats() {
		assert.NotEqual(t, "deploy starting", c.Text)
	}
}

func TestRoomsAndMembers(t *testing.T) {
	svc, h := newTestService(t)
	joinClient(t, h, "c1", "amy", "design")
	joinClient(t, h, "c2", "bob", "general")

	assert.Equal(t, []string{"design", "general"}, svc.Rooms())

	members := svc.Members("design")
	require.Len(t, members, 1)
	assert.Equal(t, "amy", members[0].Username)
}

func TestClientInfoUnknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ClientInfo("ghost")
	assert.Error(t, err)
}

func TestConnectedClients(t *testing.T) {
	svc, h := newTestService(t)
	joinClient(t, h, "c1", "amy", "design")
	joinClient(t, h, "c2", "bob", "design")

	assert.Len(t, svc.ConnectedClients(), 2)
}

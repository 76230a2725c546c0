package providers

import (
	"strings"

	"github.com/fasthttp/websocket"
	"github.com/google/uuid"
	"github.com/roomhub/socket/src/auth"
	"github.com/roomhub/socket/src/hub"
	"github.com/valyala/fasthttp"
)

// handleWebSocket authenticates and upgrades an incoming connection.
// The token check runs before the upgrade: a connection without a valid
// token is refused with 401 and never reaches the hub or the registry.
func (a *App) handleWebSocket(ctx *fasthttp.RequestCtx) {
	upgrade := string(ctx.Request.Header.Peek("Upgrade"))
	if !strings.EqualFold(upgrade, "websocket") {
		ctx.SetStatusCode(fasthttp.StatusUpgradeRequired)
		ctx.SetBodyString(`{"error":"upgrade_required","message":"WebSocket upgrade required"}`)
		return
	}

	if a.hub.ClientCount() >= a.cfg.Socket.MaxConnections {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		ctx.SetBodyString(`{"error":"too_many_connections"}`)
		return
	}

	identity, err := auth.Authenticate(ctx, a.verifier)
	if err != nil {
		// Log the reason, never the token itself.
		a.logger.Warn().Err(err).Msg("websocket auth failed")
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString(`{"error":"authentication_error"}`)
		return
	}

	connID := uuid.New().String()
	h := a.hub
	logger := a.logger

	err = a.upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		client := hub.NewClient(connID, identity, &fasthttpConn{conn}, h)
		h.Register(client)
		go client.WritePump()
		client.ReadPump()
	})
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade failed")
	}
}

// fasthttpConn wraps fasthttp/websocket.Conn to satisfy types.Conn.
type fasthttpConn struct {
	conn *websocket.Conn
}

func (f *fasthttpConn) WriteJSON(v any) error { return f.conn.WriteJSON(v) }
func (f *fasthttpConn) ReadJSON(v any) error  { return f.conn.ReadJSON(v) }
func (f *fasthttpConn) Close() error          { return f.conn.Close() }

package auth

import (
	"strings"

	"github.com/roomhub/socket/src/types"
	"github.com/valyala/fasthttp"
)

const bearerPrefix = "Bearer "

// TokenFromHandshake extracts the bearer token from a WebSocket upgrade
// request: the "token" query parameter first, then the Authorization
// header. Returns ErrMissingToken if neither is present.
func TokenFromHandshake(ctx *fasthttp.RequestCtx) (string, error) {
	if token := string(ctx.QueryArgs().Peek("token")); token != "" {
		return token, nil
	}
	header := string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization))
	if strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)); token != "" {
			return token, nil
		}
	}
	return "", ErrMissingToken
}

// Authenticate gates an incoming upgrade request. It runs exactly once,
// before the connection is accepted; a connection that fails here never
// reaches the hub or the room registry.
func Authenticate(ctx *fasthttp.RequestCtx, v Verifier) (types.Identity, error) {
	token, err := TokenFromHandshake(ctx)
	if err != nil {
		return types.Identity{}, err
	}
	return v.Verify(token)
}

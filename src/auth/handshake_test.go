package auth

import (
	"testing"
	"time"

	"github.com/roomhub/socket/src/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestTokenFromHandshakeQueryParam(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws?token=abc123")

	token, err := TokenFromHandshake(&ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestTokenFromHandshakeAuthorizationHeader(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws")
	ctx.Request.Header.Set(fasthttp.HeaderAuthorization, "Bearer abc123")

	token, err := TokenFromHandshake(&ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestTokenFromHandshakeQueryWinsOverHeader(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws?token=from-query")
	ctx.Request.Header.Set(fasthttp.HeaderAuthorization, "Bearer from-header")

	token, err := TokenFromHandshake(&ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-query", token)
}

func TestTokenFromHandshakeMissing(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws")

	_, err := TokenFromHandshake(&ctx)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenFromHandshakeEmptyBearer(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws")
	ctx.Request.Header.Set(fasthttp.HeaderAuthorization, "Bearer ")

	_, err := TokenFromHandshake(&ctx)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthenticateBindsIdentity(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, "roomhub-test")
	token, err := m.Issue(types.Identity{ID: "u-1", Username: "amy"})
	require.NoError(t, err)

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws?token=" + token)

	identity, err := Authenticate(&ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "amy", identity.Username)
	assert.Equal(t, "u-1", identity.ID)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, "roomhub-test")

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws")

	_, err := Authenticate(&ctx, m)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, "roomhub-test")

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/ws?token=garbage")

	_, err := Authenticate(&ctx, m)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

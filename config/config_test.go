package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, 1000, cfg.Socket.MaxConnections)
	assert.Equal(t, 1024, cfg.Socket.ReadBufferSize)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "accounts.db", cfg.Accounts.DBPath)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("ACCOUNTS_DB_PATH", "/tmp/users.db")
	t.Setenv("SOCKET_MAX_CONNECTIONS", "50")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "supersecret", cfg.Auth.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "/tmp/users.db", cfg.Accounts.DBPath)
	assert.Equal(t, 50, cfg.Socket.MaxConnections)
}

func TestFromEnvFallsBackOnBadValues(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("SOCKET_MAX_CONNECTIONS", "-3")

	cfg := FromEnv()
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 1000, cfg.Socket.MaxConnections)
}

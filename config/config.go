// Package config holds runtime configuration for the room socket server.
package config

import (
	"os"
	"strconv"
	"time"
)

// SocketConfig holds WebSocket server configuration.
type SocketConfig struct {
	MaxConnections  int `json:"max_connections"`
	PingInterval    int `json:"ping_interval_seconds"`
	WriteTimeout    int `json:"write_timeout_seconds"`
	ReadBufferSize  int `json:"read_buffer_size"`
	WriteBufferSize int `json:"write_buffer_size"`
}

// AuthConfig holds token signing settings shared with the account API.
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

// AccountsConfig holds the credential store location.
type AccountsConfig struct {
	DBPath string
}

// Config is the full server configuration.
type Config struct {
	Addr     string
	Socket   SocketConfig
	Auth     AuthConfig
	Accounts AccountsConfig
}

// Default returns the default configuration. The JWT secret must be
// overridden in production via JWT_SECRET.
func Default() *Config {
	return &Config{
		Addr: ":3000",
		Socket: SocketConfig{
			MaxConnections:  1000,
			PingInterval:    30,
			WriteTimeout:    10,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Auth: AuthConfig{
			Secret:   "change_me",
			TokenTTL: 7 * 24 * time.Hour,
			Issuer:   "roomhub",
		},
		Accounts: AccountsConfig{
			DBPath: "accounts.db",
		},
	}
}

// FromEnv loads configuration from environment variables, falling back
// to defaults for any missing values.
func FromEnv() *Config {
	cfg := Default()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.Auth.TokenTTL = d
		}
	}
	if path := os.Getenv("ACCOUNTS_DB_PATH"); path != "" {
		cfg.Accounts.DBPath = path
	}
	if maxStr := os.Getenv("SOCKET_MAX_CONNECTIONS"); maxStr != "" {
		if n, err := strconv.Atoi(maxStr); err == nil && n > 0 {
			cfg.Socket.MaxConnections = n
		}
	}
	return cfg
}

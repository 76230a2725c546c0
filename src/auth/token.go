package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roomhub/socket/src/types"
)

var (
	// ErrMissingToken is returned when the handshake carries no token.
	ErrMissingToken = errors.New("authentication error: token required")
	// ErrInvalidToken is returned when the token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("authentication error: invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("authentication error: token expired")
)

// Verifier validates an opaque bearer credential and returns the identity
// it encodes. Consumed by the connection handshake.
type Verifier interface {
	Verify(token string) (types.Identity, error)
}

// Claims are the custom JWT claims issued by the account service.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens against a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a TokenManager. ttl bounds the lifetime of
// issued tokens; verification honors whatever expiry a token carries.
func NewTokenManager(secret string, ttl time.Duration, issuer string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, issuer: issuer}
}

// Issue signs a token for the given identity.
func (m *TokenManager) Issue(identity types.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   identity.ID,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates a token and returns the identity it encodes.
func (m *TokenManager) Verify(tokenString string) (types.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return types.Identity{}, ErrExpiredToken
		}
		return types.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return types.Identity{}, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Username == "" {
		return types.Identity{}, ErrInvalidToken
	}
	return types.Identity{ID: claims.UserID, Username: claims.Username}, nil
}

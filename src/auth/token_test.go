package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roomhub/socket/src/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, "roomhub-test")
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	m := testManager()
	identity := types.Identity{ID: "u-1", Username: "amy"}

	token, err := m.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := testManager().Issue(types.Identity{ID: "u-1", Username: "amy"})
	require.NoError(t, err)

	other := NewTokenManager("different-secret", time.Hour, "roomhub-test")
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	expired := NewTokenManager("test-secret", -time.Minute, "roomhub-test")
	token, err := expired.Issue(types.Identity{ID: "u-1", Username: "amy"})
	require.NoError(t, err)

	_, err = testManager().Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := testManager().Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTokenWithoutIdentityClaims(t *testing.T) {
	// Signed with the right secret but carrying no id/username.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = testManager().Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1", Username: "amy"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testManager().Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

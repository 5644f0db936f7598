package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreamTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewStreamTokenManager("", 24)
	assert.Error(t, err)
}

func TestStreamToken_RoundTrip(t *testing.T) {
	manager, err := NewStreamTokenManager("test-secret", 24)
	require.NoError(t, err)

	tokenString, err := manager.Generate("42")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := manager.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "42", claims.Subject)

	// 有效期约 24 小时
	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, float64(24*time.Hour), float64(ttl), float64(time.Minute))
}

func TestStreamToken_DefaultTTL(t *testing.T) {
	manager, err := NewStreamTokenManager("test-secret", 0)
	require.NoError(t, err)

	tokenString, err := manager.Generate("7")
	require.NoError(t, err)

	claims, err := manager.Verify(tokenString)
	require.NoError(t, err)
	assert.InDelta(t, float64(24*time.Hour), float64(time.Until(claims.ExpiresAt.Time)), float64(time.Minute))
}

func TestStreamToken_WrongSecretRejected(t *testing.T) {
	manager, err := NewStreamTokenManager("test-secret", 24)
	require.NoError(t, err)
	other, err := NewStreamTokenManager("other-secret", 24)
	require.NoError(t, err)

	tokenString, err := manager.Generate("42")
	require.NoError(t, err)

	_, err = other.Verify(tokenString)
	assert.Error(t, err)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("jwt-secret", 2, 7)

	tokenString, err := manager.GenerateToken(1, "alice@example.com", "user")
	require.NoError(t, err)

	claims, err := manager.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	manager := NewJWTManager("jwt-secret", 2, 7)
	other := NewJWTManager("other-secret", 2, 7)

	tokenString, err := manager.GenerateToken(1, "alice@example.com", "user")
	require.NoError(t, err)

	_, err = other.VerifyToken(tokenString)
	assert.Error(t, err)
}

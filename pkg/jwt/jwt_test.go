package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	pair, err := GeneratePair(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.UserEmail)
	assert.True(t, claims.IsAccessToken())

	refreshClaims, err := ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, refreshClaims.IsAccessToken())
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	pair, err := GeneratePair(1, "a@b.com")
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	pair, err := GeneratePair(1, "a@b.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken(1, TokenTypeAccess, "a@b.com", time.Minute)
	assert.Error(t, err)
}

func TestGenerateTokenRejectsUnknownType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := GenerateToken(1, "session", "a@b.com", time.Minute)
	assert.Error(t, err)
}

func TestGetTokenRemainingTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(1, TokenTypeAccess, "a@b.com", 10*time.Minute)
	require.NoError(t, err)

	ttl := GetTokenRemainingTTL(token)
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)

	assert.Zero(t, GetTokenRemainingTTL("not-a-token"))
}

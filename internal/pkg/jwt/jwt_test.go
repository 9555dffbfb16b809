package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "alice@example.com", "Alice", true, false, true, testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.MemberID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.IsSuperAdmin)
	assert.True(t, claims.CanAddMembers)
	assert.Equal(t, "cooploan", claims.Issuer)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "a@b.com", "A", false, false, false, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "wrong-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "a@b.com", "A", false, false, false, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.MemberID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	// Signed with a different secret, so the access validator must reject it
	token, err := GenerateRefreshToken(7, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGetExpiryTime(t *testing.T) {
	expiry := GetExpiryTime(7)
	expected := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, expiry, time.Minute)
}

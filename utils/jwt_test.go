package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateTokenPair(t *testing.T) {
	access, refresh, err := GenerateTokenPair(42, "customer", testSecret, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	ac, err := ParseToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), ac.UserID)
	assert.Equal(t, "customer", ac.Role)
	assert.Equal(t, TokenAccess, ac.Typ)

	rc, err := ParseToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, TokenRefresh, rc.Typ)
	assert.True(t, rc.ExpiresAt.After(ac.ExpiresAt.Time))
}

func TestParseTokenWrongSecret(t *testing.T) {
	access, _, err := GenerateTokenPair(1, "owner", testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(access, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := GenerateToken(1, "customer", TokenAccess, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, testSecret)
	assert.Error(t, err)
}

package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestAccessTokenRoundtrip(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, "user-1", "alice", 15*time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, "user-1", "alice", 15*time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "another-secret-also-32-characters!!")
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, "user-1", "alice", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, testSecret)
	assert.Error(t, err)
}

func TestRefreshTokenCarriesUniqueJTI(t *testing.T) {
	t1, err := GenerateRefreshToken(testSecret, "user-1", "alice", time.Hour)
	require.NoError(t, err)
	t2, err := GenerateRefreshToken(testSecret, "user-1", "alice", time.Hour)
	require.NoError(t, err)

	c1, err := ParseRefreshToken(t1, testSecret)
	require.NoError(t, err)
	c2, err := ParseRefreshToken(t2, testSecret)
	require.NoError(t, err)

	assert.NotEmpty(t, c1.ID)
	assert.NotEmpty(t, c2.ID)
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.Equal(t, "user-1", c1.Subject)
}

func TestParseRefreshTokenGarbage(t *testing.T) {
	_, err := ParseRefreshToken("not.a.jwt", testSecret)
	assert.Error(t, err)
}

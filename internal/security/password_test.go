package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hash), "$argon2id$v=19$"))

	ok, err := VerifyPassword("password123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordWrongPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	ok, err := VerifyPassword("password124", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("password123")
	require.NoError(t, err)
	h2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, string(h1), string(h2))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("password123", []byte("not-a-hash"))
	assert.Error(t, err)

	_, err = VerifyPassword("password123", []byte("$bcrypt$v=19$t=3,m=65536,p=2$a$b"))
	assert.Error(t, err)
}

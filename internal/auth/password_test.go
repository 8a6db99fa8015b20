package auth

import (
	"strings"
	"testing"

	"github.com/crucial707/watchlist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSetPassword_VerifyRoundTrip(t *testing.T) {
	plaintexts := []string{"secret", "", " ", "pässwörd", "トトロ", strings.Repeat("a", 72)}

	for _, p := range plaintexts {
		u := &models.User{}
		require.NoError(t, SetPassword(u, p))
		assert.NotEqual(t, p, u.PasswordHash)
		assert.True(t, VerifyPassword(u, p), "plaintext %q", p)
		assert.False(t, VerifyPassword(u, p+"x"), "plaintext %q+x", p)
	}
}

func TestSetPassword_ReplacesHash(t *testing.T) {
	u := &models.User{}
	require.NoError(t, SetPassword(u, "first"))
	old := u.PasswordHash

	require.NoError(t, SetPassword(u, "second"))
	assert.NotEqual(t, old, u.PasswordHash)
	assert.False(t, VerifyPassword(u, "first"))
	assert.True(t, VerifyPassword(u, "second"))
}

func TestSetPassword_Salted(t *testing.T) {
	a, b := &models.User{}, &models.User{}
	require.NoError(t, SetPassword(a, "secret"))
	require.NoError(t, SetPassword(b, "secret"))
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestSetPassword_ErrorKeepsOldHash(t *testing.T) {
	u := &models.User{}
	require.NoError(t, SetPassword(u, "secret"))
	old := u.PasswordHash

	// bcrypt rejects inputs over 72 bytes.
	require.ErrorIs(t, SetPassword(u, strings.Repeat("a", MaxPasswordBytes+1)), bcrypt.ErrPasswordTooLong)
	assert.Equal(t, old, u.PasswordHash)
}

func TestVerifyPassword_RejectsLongerThanLimit(t *testing.T) {
	stored := strings.Repeat("a", MaxPasswordBytes)
	u := &models.User{}
	require.NoError(t, SetPassword(u, stored))

	assert.True(t, VerifyPassword(u, stored))
	assert.False(t, VerifyPassword(u, stored+"-definitely-different"))
	assert.False(t, VerifyPassword(u, stored+"a"))
}

func TestVerifyPassword_FailsClosed(t *testing.T) {
	assert.False(t, VerifyPassword(nil, "secret"))
	assert.False(t, VerifyPassword(&models.User{}, ""))
	assert.False(t, VerifyPassword(&models.User{}, "secret"))
	assert.False(t, VerifyPassword(&models.User{PasswordHash: "not-a-bcrypt-hash"}, "secret"))
	assert.False(t, VerifyPassword(&models.User{PasswordHash: "$2a$10$"}, "secret"))
}

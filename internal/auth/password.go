package auth

import (
	"fmt"

	"github.com/crucial707/watchlist/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt reads in full. Longer
// inputs are rejected by SetPassword and never verify.
const MaxPasswordBytes = 72

// hashCost is lowered by tests.
var hashCost = bcrypt.DefaultCost

// SetPassword replaces u.PasswordHash with a fresh salted bcrypt hash of
// plaintext, which may be at most MaxPasswordBytes long. On error the previous
// hash is left untouched.
func SetPassword(u *models.User, plaintext string) error {
	if len(plaintext) > MaxPasswordBytes {
		return fmt.Errorf("hash password: %w", bcrypt.ErrPasswordTooLong)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether plaintext matches u.PasswordHash.
// An absent or malformed hash never matches.
func VerifyPassword(u *models.User, plaintext string) bool {
	if u == nil || u.PasswordHash == "" || len(plaintext) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

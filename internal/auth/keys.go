package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF info strings, one per cookie type.
const (
	sessionKeyInfo = "watchlist session token"
	flashKeyInfo   = "watchlist flash cookie"
)

// Keys holds the independent signing keys derived from the configured secret.
type Keys struct {
	Session []byte
	Flash   []byte
}

// DeriveKeys expands secret into one 32-byte key per cookie type using
// HKDF-SHA256, so a value signed for one cookie never verifies as the other.
func DeriveKeys(secret []byte) (Keys, error) {
	if len(secret) == 0 {
		return Keys{}, errors.New("derive keys: empty secret")
	}
	session, err := deriveKey(secret, sessionKeyInfo)
	if err != nil {
		return Keys{}, err
	}
	flash, err := deriveKey(secret, flashKeyInfo)
	if err != nil {
		return Keys{}, err
	}
	return Keys{Session: session, Flash: flash}, nil
}

func deriveKey(secret []byte, info string) ([]byte, error) {
	out := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return out, nil
}

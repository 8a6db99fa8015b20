package auth

import (
	"errors"

	"github.com/crucial707/watchlist/internal/forms"
)

var (
	// ErrMissingCredentials is returned by login when username or password is empty.
	ErrMissingCredentials = errors.New("auth: missing credentials")
	// ErrNoSuchUser is returned by login when no administrator exists yet.
	ErrNoSuchUser = errors.New("auth: no such user")
	// ErrBadCredentials is returned by login on a username or password mismatch.
	ErrBadCredentials = errors.New("auth: bad credentials")
	// ErrUnauthenticated is returned by a guarded operation run without an identity.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	// ErrValidation is returned by Rename for an empty or over-long name.
	ErrValidation = forms.ErrInvalid
)

// IsLoginFailure reports whether err should be shown to the user as a
// failed login. NoSuchUser and BadCredentials are deliberately not told apart.
func IsLoginFailure(err error) bool {
	return errors.Is(err, ErrNoSuchUser) || errors.Is(err, ErrBadCredentials)
}

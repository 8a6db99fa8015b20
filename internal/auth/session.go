package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/crucial707/watchlist/internal/forms"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the session cookie used when CookieOptions.Name is empty.
const DefaultCookieName = "watchlist_session"

// UserStore is the persistence the session manager depends on.
// Lookups return sql.ErrNoRows when nothing matches.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	First(ctx context.Context) (*models.User, error)
	UpdateName(ctx context.Context, id int, name string) error
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Identity is the authenticated user behind a request.
type Identity struct {
	ID       int
	Name     string
	Username string
}

func identityOf(u *models.User) *Identity {
	return &Identity{ID: u.ID, Name: u.Name, Username: u.Username}
}

// Manager logs users in and out and maps session tokens back to users.
// The session is a signed HS256 token in a cookie; nothing is kept server-side.
type Manager struct {
	users  UserStore
	secret []byte
	cookie CookieOptions
	now    func() time.Time
}

// NewManager returns a Manager signing sessions with secret, which must not be empty.
func NewManager(users UserStore, secret []byte, opts CookieOptions) *Manager {
	if opts.Name == "" {
		opts.Name = DefaultCookieName
	}
	return &Manager{
		users:  users,
		secret: secret,
		cookie: opts,
		now:    time.Now,
	}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string { return m.cookie.Name }

// Administrator returns the first user, or nil when none exists.
func (m *Manager) Administrator(ctx context.Context) (*models.User, error) {
	u, err := m.users.First(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load administrator: %w", err)
	}
	return u, nil
}

// Authenticate checks username and password against the administrator.
// Username comparison is exact and case-sensitive.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := m.users.First(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSuchUser
	}
	if err != nil {
		return nil, fmt.Errorf("load administrator: %w", err)
	}

	// The hash is checked even on a username mismatch so both failures cost the same.
	passwordOK := VerifyPassword(u, password)
	if u.Username != username || !passwordOK {
		return nil, ErrBadCredentials
	}
	return identityOf(u), nil
}

// Login authenticates and, on success, sets the session cookie on w.
// If ctx carries a request identity (see Identify) it is switched to the new one.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, username, password string) (*Identity, error) {
	id, err := m.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := m.issue(id.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	http.SetCookie(w, m.sessionCookie(token))
	setCurrent(ctx, id)
	return id, nil
}

// Logout expires the session cookie. Calling it without a session is a no-op
// apart from the cookie header.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter) {
	m.clearCookie(w)
	setCurrent(ctx, nil)
}

// Resolve maps a session token to its user. Empty, forged or malformed tokens
// and tokens for users that no longer exist resolve to nil without error.
// Only store failures are returned as errors.
func (m *Manager) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}
	userID, ok := m.parse(token)
	if !ok {
		return nil, nil
	}

	u, err := m.users.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return identityOf(u), nil
}

// Rename changes the display name of id's own record. name must be 1-20
// characters; invalid names return ErrValidation without touching the store.
func (m *Manager) Rename(ctx context.Context, id *Identity, name string) error {
	if id == nil {
		return ErrUnauthenticated
	}
	if err := forms.Validate(forms.Settings{Name: name}); err != nil {
		return err
	}

	err := m.users.UpdateName(ctx, id.ID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnauthenticated
	}
	if err != nil {
		return fmt.Errorf("rename user %d: %w", id.ID, err)
	}
	id.Name = name
	return nil
}

func (m *Manager) issue(userID int) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  strconv.Itoa(userID),
		IssuedAt: jwt.NewNumericDate(m.now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(token string) (int, bool) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return 0, false
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func (m *Manager) tokenFrom(r *http.Request) string {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (m *Manager) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	c := m.sessionCookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}

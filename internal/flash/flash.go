// Package flash carries one-shot user messages across a redirect in a
// signed cookie.
package flash

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const cookieName = "watchlist_flash"

type Store struct {
	cookies *sessions.CookieStore
}

// New returns a Store signing its cookie with secret.
func New(secret []byte, secure bool) *Store {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Add queues msg for the next page the client renders.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msg string) {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		// A tampered or stale cookie still yields a fresh session to write into.
		slog.Debug("flash: discarding unreadable cookie", "error", err)
	}
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: save", "error", err)
	}
}

// Pop returns and clears the queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []string {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		slog.Error("flash: save", "error", err)
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

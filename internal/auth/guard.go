package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Operation is work that may only run on behalf of an authenticated identity.
type Operation func(ctx context.Context, id *Identity) error

// RequireAuthenticated wraps op so it runs only when ctx resolves to an
// identity. Anonymous callers get ErrUnauthenticated and op is not called.
func RequireAuthenticated(op Operation) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		id, err := Current(ctx)
		if err != nil {
			return err
		}
		if id == nil {
			return ErrUnauthenticated
		}
		return op(ctx, id)
	}
}

// Gate is the HTTP form of RequireAuthenticated.
type Gate struct {
	// LoginPath is where anonymous requests are redirected.
	LoginPath string
	// OnReject runs before the redirect, e.g. to queue a flash message.
	OnReject func(w http.ResponseWriter, r *http.Request)
	// OnError handles store failures while resolving the identity.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware gates next behind an authenticated identity. Requests must have
// passed through Manager.Identify.
func (g Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gated := RequireAuthenticated(func(ctx context.Context, _ *Identity) error {
			next.ServeHTTP(w, r.WithContext(ctx))
			return nil
		})

		err := gated(r.Context())
		switch {
		case err == nil:
		case errors.Is(err, ErrUnauthenticated):
			if g.OnReject != nil {
				g.OnReject(w, r)
			}
			http.Redirect(w, r, g.LoginPath, http.StatusFound)
		default:
			if g.OnError != nil {
				g.OnError(w, r, err)
				return
			}
			slog.Error("resolve identity", "path", r.URL.Path, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})
}

package auth

import (
	"context"
	"net/http"
	"sync"
)

type ctxKey struct{}

// resolution memoises the identity of one request.
type resolution struct {
	once    sync.Once
	resolve func() (*Identity, error)
	id      *Identity
	err     error
	done    bool
}

func (res *resolution) get() (*Identity, error) {
	res.once.Do(func() {
		if res.resolve != nil {
			res.id, res.err = res.resolve()
		}
		res.done = true
	})
	return res.id, res.err
}

func (res *resolution) set(id *Identity) {
	res.once.Do(func() {})
	res.id, res.err, res.done = id, nil, true
}

// Identify attaches a lazy identity resolver for the request's session cookie.
// The store is consulted at most once, on the first call to Current.
// A cookie that no longer resolves is cleared so the browser returns to anonymous.
func (m *Manager) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res := &resolution{}
		res.resolve = func() (*Identity, error) {
			token := m.tokenFrom(r)
			id, err := m.Resolve(ctx, token)
			if err == nil && id == nil && token != "" {
				m.clearCookie(w)
			}
			return id, err
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKey{}, res)))
	})
}

// Current returns the identity of the request behind ctx, or nil when the
// caller is anonymous or ctx did not pass through Identify.
func Current(ctx context.Context) (*Identity, error) {
	res, ok := ctx.Value(ctxKey{}).(*resolution)
	if !ok {
		return nil, nil
	}
	return res.get()
}

// Resolved returns the identity of ctx only if it has already been resolved.
// It never consults the store.
func Resolved(ctx context.Context) (*Identity, bool) {
	res, ok := ctx.Value(ctxKey{}).(*resolution)
	if !ok || !res.done {
		return nil, false
	}
	return res.id, true
}

// WithIdentity returns a context whose Current is id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	res := &resolution{}
	res.set(id)
	return context.WithValue(ctx, ctxKey{}, res)
}

func setCurrent(ctx context.Context, id *Identity) {
	if res, ok := ctx.Value(ctxKey{}).(*resolution); ok {
		res.set(id)
	}
}

package middleware

import (
	"net/http"
)

// DefaultMaxFormBytes caps form submissions (64 KiB); every form here is a few short fields.
const DefaultMaxFormBytes = 64 << 10

// MaxBytes limits the body of POST requests. Oversized bodies make form
// parsing fail, which handlers report as a bad request.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFormBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

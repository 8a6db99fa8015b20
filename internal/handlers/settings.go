package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/crucial707/watchlist/internal/auth"
)

// ==========================
// SettingsHandler
// ==========================
type SettingsHandler struct {
	Pages *Pages
	Auth  *auth.Manager
}

// ==========================
// Settings form
// ==========================
func (h *SettingsHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, r, http.StatusOK, "settings", page{})
}

// ==========================
// Update display name
// ==========================
// The name always applies to the caller's own record.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w)
		return
	}
	name := r.PostFormValue("name")

	rename := auth.RequireAuthenticated(func(ctx context.Context, id *auth.Identity) error {
		return h.Auth.Rename(ctx, id, name)
	})

	err := rename(r.Context())
	switch {
	case err == nil:
		h.Pages.Redirect(w, r, "/", MsgSettingsUpdated)
	case errors.Is(err, auth.ErrValidation):
		h.Pages.Redirect(w, r, "/settings", MsgInvalidInput)
	case errors.Is(err, auth.ErrUnauthenticated):
		h.Pages.Redirect(w, r, "/login", MsgLoginRequired)
	default:
		h.Pages.ServerError(w, r, err)
	}
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/watchlist/internal/auth"
	"github.com/crucial707/watchlist/internal/metrics"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ==========================
// AuthHandler
// ==========================
type AuthHandler struct {
	Pages *Pages
	Auth  *auth.Manager
}

// ==========================
// Login form
// ==========================
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, r, http.StatusOK, "login", page{})
}

// ==========================
// Login submit
// ==========================
// Unknown user and wrong password share one message so the form does not
// reveal which part was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	id, err := h.Auth.Login(r.Context(), w, username, password)
	switch {
	case err == nil:
		metrics.RecordLogin(metrics.LoginSuccess)
		slog.Info("login", "request_id", chimw.GetReqID(r.Context()), "user_id", id.ID, "outcome", metrics.LoginSuccess)
		h.Pages.Redirect(w, r, "/", MsgLoginSuccess)
	case errors.Is(err, auth.ErrMissingCredentials):
		metrics.RecordLogin(metrics.LoginMissingCredentials)
		h.Pages.Redirect(w, r, "/login", MsgMissingCredentials)
	case auth.IsLoginFailure(err):
		metrics.RecordLogin(metrics.LoginRejected)
		slog.Warn("login rejected", "request_id", chimw.GetReqID(r.Context()), "username", username, "reason", err)
		h.Pages.Redirect(w, r, "/login", MsgBadCredentials)
	default:
		metrics.RecordLogin(metrics.LoginError)
		h.Pages.ServerError(w, r, err)
	}
}

// ==========================
// Logout
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context(), w)
	h.Pages.Redirect(w, r, "/", MsgGoodbye)
}

// RejectAnonymous queues the login prompt for requests turned away by an auth.Gate.
func (h *AuthHandler) RejectAnonymous(w http.ResponseWriter, r *http.Request) {
	h.Pages.Flash.Add(w, r, MsgLoginRequired)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/watchlist/internal/auth"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// Flash messages shown after redirects.
const (
	MsgMissingCredentials = "Please enter a username and password."
	MsgBadCredentials     = "Invalid username or password."
	MsgLoginRequired      = "Please log in to access this page."
	MsgInvalidInput       = "Invalid input."
	MsgLoginSuccess       = "Login success."
	MsgGoodbye            = "Goodbye."
	MsgItemCreated        = "Item created."
	MsgItemUpdated        = "Item updated."
	MsgItemDeleted        = "Item deleted."
	MsgSettingsUpdated    = "Settings updated."
)

// NotFound renders the 404 page.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.Render(w, r, http.StatusNotFound, "404", page{})
}

// ServerError logs err and renders the 500 page. The page is rendered without
// touching the store, since the store is the usual reason to be here.
func (p *Pages) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"request_id", chimw.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err)
	p.serverErrorPage(w, r)
}

// ServerErrorPage renders the 500 page for a failure already logged, e.g. a
// recovered panic.
func (p *Pages) ServerErrorPage() http.Handler {
	return http.HandlerFunc(p.serverErrorPage)
}

func (p *Pages) serverErrorPage(w http.ResponseWriter, r *http.Request) {
	data := page{}
	if id, ok := auth.Resolved(r.Context()); ok {
		data.User = id
	}
	if err := p.write(w, http.StatusInternalServerError, "500", data); err != nil {
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

// badRequest reports a form that could not be parsed, usually because it
// exceeded the body limit.
func badRequest(w http.ResponseWriter) {
	http.Error(w, "bad form", http.StatusBadRequest)
}

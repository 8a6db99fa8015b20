package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/crucial707/watchlist/internal/auth"
	"github.com/crucial707/watchlist/internal/flash"
	"github.com/crucial707/watchlist/internal/models"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:embed templates
var templatesFS embed.FS

var pageNames = []string{"index", "edit", "login", "settings", "404", "500"}

// page is the data every template sees. Render fills the layout fields;
// handlers set the rest.
type page struct {
	Admin   *models.User
	User    *auth.Identity
	Flashes []string

	Movies []models.Movie
	Movie  models.Movie
}

// Pages renders HTML pages inside the shared layout.
type Pages struct {
	Auth  *auth.Manager
	Flash *flash.Store

	templates map[string]*template.Template
}

// NewPages parses every page template once.
func NewPages(m *auth.Manager, f *flash.Store) (*Pages, error) {
	layout, err := template.ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.Must(layout.Clone()).ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = t
	}

	return &Pages{Auth: m, Flash: f, templates: templates}, nil
}

// Render writes the named page with status. Layout data (administrator,
// current identity, pending flashes) is loaded here.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	admin, err := p.Auth.Administrator(r.Context())
	if err != nil {
		p.ServerError(w, r, err)
		return
	}
	user, err := auth.Current(r.Context())
	if err != nil {
		p.ServerError(w, r, err)
		return
	}

	data.Admin = admin
	data.User = user
	data.Flashes = p.Flash.Pop(w, r)

	if err := p.write(w, status, name, data); err != nil {
		slog.Error("render page", "page", name, "request_id", chimw.GetReqID(r.Context()), "error", err)
		http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func (p *Pages) write(w http.ResponseWriter, status int, name string, data page) error {
	t, ok := p.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Redirect queues msg (if any) and redirects with 302.
func (p *Pages) Redirect(w http.ResponseWriter, r *http.Request, url, msg string) {
	if msg != "" {
		p.Flash.Add(w, r, msg)
	}
	http.Redirect(w, r, url, http.StatusFound)
}

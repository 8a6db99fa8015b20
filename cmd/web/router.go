package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/crucial707/watchlist/internal/auth"
	"github.com/crucial707/watchlist/internal/config"
	"github.com/crucial707/watchlist/internal/flash"
	"github.com/crucial707/watchlist/internal/handlers"
	"github.com/crucial707/watchlist/internal/middleware"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the store, session manager and handlers into one chi router.
func newRouter(database *sql.DB, cfg config.Config) (http.Handler, error) {
	keys, err := auth.DeriveKeys([]byte(cfg.SecretKey))
	if err != nil {
		return nil, err
	}
	secure := cfg.SecureCookies()

	users := repo.NewUserRepo(database)
	movies := repo.NewMovieRepo(database)
	sessions := auth.NewManager(users, keys.Session, auth.CookieOptions{Secure: secure})

	pages, err := handlers.NewPages(sessions, flash.New(keys.Flash, secure))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	movieHandler := &handlers.MovieHandler{Pages: pages, Repo: movies}
	authHandler := &handlers.AuthHandler{Pages: pages, Auth: sessions}
	settingsHandler := &handlers.SettingsHandler{Pages: pages, Auth: sessions}

	gate := auth.Gate{
		LoginPath: "/login",
		OnReject:  authHandler.RejectAnonymous,
		OnError:   pages.ServerError,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(sessions.Identify)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer(pages.ServerErrorPage()))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxFormBytes))

	r.NotFound(pages.NotFound)

	// Health (no auth, no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Get("/", movieHandler.Index)
	r.Post("/", movieHandler.Create)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(gate.Middleware)
		r.Get("/logout", authHandler.Logout)
		r.Get("/settings", settingsHandler.Form)
		r.Post("/settings", settingsHandler.Update)
		r.Get("/movie/edit/{id}", movieHandler.EditForm)
		r.Post("/movie/edit/{id}", movieHandler.Update)
		r.Post("/movie/delete/{id}", movieHandler.Delete)
	})

	return r, nil
}

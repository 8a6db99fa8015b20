package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/watchlist/internal/auth"
	"github.com/crucial707/watchlist/internal/forms"
	"github.com/crucial707/watchlist/internal/metrics"
	"github.com/crucial707/watchlist/internal/models"
	"github.com/crucial707/watchlist/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// MovieHandler
// ==========================
type MovieHandler struct {
	Pages *Pages
	Repo  *repo.MovieRepo
}

// ==========================
// Index: list the catalog
// ==========================
func (h *MovieHandler) Index(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Repo.List(r.Context())
	if err != nil {
		h.Pages.ServerError(w, r, fmt.Errorf("list movies: %w", err))
		return
	}
	h.Pages.Render(w, r, http.StatusOK, "index", page{Movies: movies})
}

// ==========================
// Create Movie (index POST)
// ==========================
// Anonymous submissions are bounced back to the index without a write.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	create := auth.RequireAuthenticated(func(ctx context.Context, _ *auth.Identity) error {
		form, err := movieForm(r)
		if err != nil {
			return err
		}
		if _, err := h.Repo.Create(ctx, form.Title, form.Year); err != nil {
			return fmt.Errorf("create movie: %w", err)
		}
		metrics.RecordMovieMutation("create")
		return nil
	})

	err := create(r.Context())
	switch {
	case err == nil:
		h.Pages.Redirect(w, r, "/", MsgItemCreated)
	case errors.Is(err, auth.ErrUnauthenticated):
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, errBadForm):
		badRequest(w)
	case errors.Is(err, forms.ErrInvalid):
		h.Pages.Redirect(w, r, "/", MsgInvalidInput)
	default:
		h.Pages.ServerError(w, r, err)
	}
}

// ==========================
// Edit Movie form
// ==========================
func (h *MovieHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.load(w, r)
	if !ok {
		return
	}
	h.Pages.Render(w, r, http.StatusOK, "edit", page{Movie: movie})
}

// ==========================
// Update Movie
// ==========================
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.load(w, r)
	if !ok {
		return
	}

	form, err := movieForm(r)
	if errors.Is(err, errBadForm) {
		badRequest(w)
		return
	}
	if err != nil {
		h.Pages.Redirect(w, r, editPath(movie.ID), MsgInvalidInput)
		return
	}

	err = h.Repo.Update(r.Context(), movie.ID, form.Title, form.Year)
	if errors.Is(err, sql.ErrNoRows) {
		h.Pages.NotFound(w, r)
		return
	}
	if err != nil {
		h.Pages.ServerError(w, r, fmt.Errorf("update movie %d: %w", movie.ID, err))
		return
	}
	metrics.RecordMovieMutation("update")
	h.Pages.Redirect(w, r, "/", MsgItemUpdated)
}

// ==========================
// Delete Movie
// ==========================
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		h.Pages.NotFound(w, r)
		return
	}

	err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		h.Pages.NotFound(w, r)
		return
	}
	if err != nil {
		h.Pages.ServerError(w, r, fmt.Errorf("delete movie %d: %w", id, err))
		return
	}
	metrics.RecordMovieMutation("delete")
	h.Pages.Redirect(w, r, "/", MsgItemDeleted)
}

// load fetches the movie named by the {id} URL parameter, writing the 404 or
// 500 page itself when it cannot.
func (h *MovieHandler) load(w http.ResponseWriter, r *http.Request) (models.Movie, bool) {
	id, ok := movieID(r)
	if !ok {
		h.Pages.NotFound(w, r)
		return models.Movie{}, false
	}

	movie, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		h.Pages.NotFound(w, r)
		return models.Movie{}, false
	}
	if err != nil {
		h.Pages.ServerError(w, r, fmt.Errorf("load movie %d: %w", id, err))
		return models.Movie{}, false
	}
	return movie, true
}

func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func editPath(id int) string {
	return "/movie/edit/" + strconv.Itoa(id)
}

var errBadForm = errors.New("unreadable form")

func movieForm(r *http.Request) (forms.Movie, error) {
	if err := r.ParseForm(); err != nil {
		return forms.Movie{}, fmt.Errorf("%w: %v", errBadForm, err)
	}
	form := forms.Movie{
		Title: r.PostFormValue("title"),
		Year:  r.PostFormValue("year"),
	}
	return form, forms.Validate(form)
}

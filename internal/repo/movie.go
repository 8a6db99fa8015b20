package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/watchlist/internal/db"
	"github.com/crucial707/watchlist/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type MovieRepo struct {
	DB db.DBTX
}

// NewMovieRepo accepts a *sql.DB or a *sql.Tx.
func NewMovieRepo(conn db.DBTX) *MovieRepo {
	return &MovieRepo{DB: conn}
}

// ========================
// CREATE MOVIE
// ========================

func (r *MovieRepo) Create(ctx context.Context, title, year string) (models.Movie, error) {
	movie := models.Movie{Title: title, Year: year}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO movies (title, year)
		 VALUES ($1, $2)
		 RETURNING id`,
		title, year,
	).Scan(&movie.ID)
	return movie, err
}

// ========================
// GET MOVIE BY ID
// ========================

func (r *MovieRepo) GetByID(ctx context.Context, id int) (models.Movie, error) {
	var movie models.Movie
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, year
		 FROM movies
		 WHERE id = $1`,
		id,
	).Scan(&movie.ID, &movie.Title, &movie.Year)
	return movie, err
}

// ========================
// UPDATE MOVIE BY ID
// ========================

func (r *MovieRepo) Update(ctx context.Context, id int, title, year string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE movies
		 SET title = $1, year = $2
		 WHERE id = $3`,
		title, year, id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// ========================
// DELETE MOVIE BY ID
// ========================

func (r *MovieRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// ========================
// LIST ALL MOVIES
// ========================

func (r *MovieRepo) List(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, title, year FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// expectOneRow maps "nothing matched" to sql.ErrNoRows.
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

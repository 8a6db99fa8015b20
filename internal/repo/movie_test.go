package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMovieRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO movies \(title, year\)`).
		WithArgs("Leon", "1994").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	movie, err := NewMovieRepo(db).Create(context.Background(), "Leon", "1994")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if movie.ID != 4 || movie.Title != "Leon" || movie.Year != "1994" {
		t.Errorf("unexpected movie: %+v", movie)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMovieRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, year FROM movies ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "year"}).
			AddRow(1, "My Neighbor Totoro", "1988").
			AddRow(2, "WALL-E", "2008"))

	movies, err := NewMovieRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(movies) != 2 || movies[1].Title != "WALL-E" {
		t.Errorf("unexpected movies: %+v", movies)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMovieRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, year\s+FROM movies\s+WHERE id = \$1`).
		WithArgs(7).
		WillReturnError(sql.ErrNoRows)

	if _, err := NewMovieRepo(db).GetByID(context.Background(), 7); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
}

func TestMovieRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE movies\s+SET title = \$1, year = \$2\s+WHERE id = \$3`).
		WithArgs("Mahjong", "1996", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewMovieRepo(db).Update(context.Background(), 5, "Mahjong", "1996"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestMovieRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM movies WHERE id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewMovieRepo(db).Delete(context.Background(), 9); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

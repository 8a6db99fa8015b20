package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var userCols = []string{"id", "name", "username", "password_hash"}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, username, password_hash\s+FROM users\s+WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Admin", "admin", "$2a$10$hash"))

	repo := NewUserRepo(db)
	user, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.ID != 1 || user.Username != "admin" || user.PasswordHash != "$2a$10$hash" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_NullHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, username, password_hash`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(2, "Guest", "", nil))

	user, err := NewUserRepo(db).GetByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.PasswordHash != "" {
		t.Errorf("expected empty hash, got %q", user.PasswordHash)
	}
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, username, password_hash`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	_, err = NewUserRepo(db).GetByID(context.Background(), 999)
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_First(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, username, password_hash\s+FROM users\s+ORDER BY id\s+LIMIT 1`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Admin", "admin", nil))

	user, err := NewUserRepo(db).First(context.Background())
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if user.ID != 1 || user.Name != "Admin" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_UpdateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET name = \$1 WHERE id = \$2`).
		WithArgs("Totoro", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewUserRepo(db).UpdateName(context.Background(), 1, "Totoro"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_UpdateName_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET name`).
		WithArgs("Totoro", 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewUserRepo(db).UpdateName(context.Background(), 42, "Totoro")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
}

func TestUserRepo_SaveAdmin_Creates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, username, password_hash`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users \(name, username, password_hash\)`).
		WithArgs("Admin", "admin", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user, created, err := NewUserRepo(db).SaveAdmin(context.Background(), "admin", "hash")
	if err != nil {
		t.Fatalf("SaveAdmin: %v", err)
	}
	if !created || user.ID != 1 || user.Name != "Admin" {
		t.Errorf("unexpected result: created=%v user=%+v", created, user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_SaveAdmin_Updates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, username, password_hash`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "Totoro", "old", "oldhash"))
	mock.ExpectExec(`UPDATE users SET username = \$1, password_hash = \$2 WHERE id = \$3`).
		WithArgs("admin", "newhash", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, created, err := NewUserRepo(db).SaveAdmin(context.Background(), "admin", "newhash")
	if err != nil {
		t.Fatalf("SaveAdmin: %v", err)
	}
	if created || user.ID != 3 || user.Name != "Totoro" || user.Username != "admin" {
		t.Errorf("unexpected result: created=%v user=%+v", created, user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_SaveAdmin_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, username, password_hash`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Admin", "admin", "hash"))
	mock.ExpectExec(`UPDATE users SET username`).
		WillReturnError(boom)
	mock.ExpectRollback()

	if _, _, err := NewUserRepo(db).SaveAdmin(context.Background(), "admin", "x"); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

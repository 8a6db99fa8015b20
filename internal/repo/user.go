package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/watchlist/internal/db"
	"github.com/crucial707/watchlist/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(conn *sql.DB) *UserRepo {
	return &UserRepo{DB: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var hash sql.NullString
	if err := row.Scan(&user.ID, &user.Name, &user.Username, &hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash.String
	return user, nil
}

// nullableHash stores an absent hash as NULL.
func nullableHash(hash string) any {
	if hash == "" {
		return nil
	}
	return hash
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, username, password_hash
		FROM users
		WHERE id = $1
	`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// First (the administrator)
// ==========================

// First returns the user with the lowest id, or sql.ErrNoRows when the table is empty.
func (r *UserRepo) First(ctx context.Context) (*models.User, error) {
	return firstUser(ctx, r.DB)
}

func firstUser(ctx context.Context, q db.DBTX) (*models.User, error) {
	query := `
		SELECT id, name, username, password_hash
		FROM users
		ORDER BY id
		LIMIT 1
	`
	return scanUser(q.QueryRowContext(ctx, query))
}

// ==========================
// Update Name
// ==========================
func (r *UserRepo) UpdateName(ctx context.Context, id int, name string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ==========================
// Save Admin (upsert first user)
// ==========================

// SaveAdmin sets username and password hash on the first user, creating it
// with the default display name when the table is empty. created reports
// which branch ran. Both branches commit in a single transaction.
func (r *UserRepo) SaveAdmin(ctx context.Context, username, passwordHash string) (user *models.User, created bool, err error) {
	err = db.WithTx(ctx, r.DB, func(ctx context.Context, tx db.DBTX) error {
		existing, err := firstUser(ctx, tx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			user = &models.User{Name: models.DefaultAdminName, Username: username, PasswordHash: passwordHash}
			created = true
			return tx.QueryRowContext(ctx,
				`INSERT INTO users (name, username, password_hash) VALUES ($1, $2, $3) RETURNING id`,
				user.Name, user.Username, nullableHash(user.PasswordHash),
			).Scan(&user.ID)
		case err != nil:
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET username = $1, password_hash = $2 WHERE id = $3`,
			username, nullableHash(passwordHash), existing.ID,
		); err != nil {
			return err
		}
		existing.Username = username
		existing.PasswordHash = passwordHash
		user = existing
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}

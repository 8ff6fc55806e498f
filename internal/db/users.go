package db

import (
	"context"
	"time"

	"github.com/chatlite/chatlite/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, credits, created_at, last_login`

func (db *Postgres) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			credits BIGINT NOT NULL DEFAULT 100 CHECK (credits >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login TIMESTAMPTZ
		)
	`
	_, err := db.Pool.Exec(ctx, query)
	return err
}

func (db *Postgres) CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, NOW())
		RETURNING ` + userColumns
	return db.scanUser(db.Pool.QueryRow(ctx, query, email, passwordHash))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return db.scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return db.scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) (*model.User, error) {
	query := `
		UPDATE users
		SET last_login = $2
		WHERE id = $1
		RETURNING ` + userColumns
	return db.scanUser(db.Pool.QueryRow(ctx, query, userID, at))
}

func (db *Postgres) SetCredits(ctx context.Context, userID int64, credits int64) (*model.User, error) {
	query := `
		UPDATE users
		SET credits = $2
		WHERE id = $1
		RETURNING ` + userColumns
	return db.scanUser(db.Pool.QueryRow(ctx, query, userID, credits))
}

// ConsumeCredit performs a conditional single-credit decrement. It
// returns pgx.ErrNoRows when the user has no credits left (or the row
// is gone), never driving the balance below zero even under concurrent
// calls.
func (db *Postgres) ConsumeCredit(ctx context.Context, userID int64) (int64, error) {
	query := `
		UPDATE users
		SET credits = credits - 1
		WHERE id = $1 AND credits > 0
		RETURNING credits
	`
	var credits int64
	if err := db.Pool.QueryRow(ctx, query, userID).Scan(&credits); err != nil {
		return 0, err
	}
	return credits, nil
}

func (db *Postgres) scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Credits,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func IsNoRows(err error) bool {
	return err == pgx.ErrNoRows
}

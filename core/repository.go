package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRecord is the account projection stored in the persistence layer.
type UserRecord struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ErrDuplicateKey is returned by Insert when the email is already taken.
// The directory's own atomicity is what serializes concurrent registration;
// callers must not rely on a prior lookup.
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines persistence operations for the user directory.
// Find methods return (nil, nil) when no record exists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	Insert(ctx context.Context, u UserRecord) error
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// EnsureSchema creates the users table and its unique email index if absent.
func (r *PgUserRepository) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	_, err := r.db.Exec(ctx, q)
	return err
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*UserRecord, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email=$1`, email)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*UserRecord, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id=$1`, id)
}

func (r *PgUserRepository) findOne(ctx context.Context, query, arg string) (*UserRecord, error) {
	var u UserRecord
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgUserRepository) Insert(ctx context.Context, u UserRecord) error {
	const q = `INSERT INTO users (id, username, email, password_hash) VALUES ($1,$2,$3,$4)`
	if _, err := r.db.Exec(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}

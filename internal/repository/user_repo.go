package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"task_manager/internal/models"
)

// ErrDuplicateEmail reports an insert against an already registered email.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, password_hash) VALUES (?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID.
// Returns ErrDuplicateEmail when the email is already taken.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user including the password hash, for credential
// checks. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}

// GetByID fetches a user without the password hash; this is the lookup the
// auth middleware attaches to the request. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByIDSQL, id).Scan(&u.ID, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return &u, nil
}

// isUniqueViolation detects SQLite unique-constraint failures. The modernc
// driver exposes them only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

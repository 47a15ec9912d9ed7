package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"holdco-backend/internal/model"
)

// Token purposes. One table serves both the signup verification and the
// forgot-password flow; tokens are single-use either way.
const (
	PurposeVerify = "verify"
	PurposeReset  = "reset"
)

var (
	ErrNotFound      = errors.New("auth: not found")
	ErrTokenConsumed = errors.New("auth: token already used")
)

// Store owns the users and auth_tokens tables.
type Store struct {
	DB *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db}
}

// InitSchema creates the auth tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			verified      BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS auth_tokens (
			token      TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			purpose    TEXT NOT NULL,
			used       BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// CreateUser inserts an unverified account.
func (s *Store) CreateUser(ctx context.Context, email, firstName, lastName, passwordHash string) (*model.User, error) {
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.DB.NamedExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, password_hash, verified, created_at)
		VALUES (:id, :email, :first_name, :last_name, :password_hash, :verified, :created_at)
	`, u)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserByEmail looks a user up by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByID looks a user up by ID.
func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// MarkVerified flips the verified flag.
func (s *Store) MarkVerified(ctx context.Context, userID string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE users SET verified = TRUE WHERE id = $1`, userID)
	return err
}

// SetPasswordHash replaces the stored bcrypt hash.
func (s *Store) SetPasswordHash(ctx context.Context, userID, hash string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, userID)
	return err
}

// CreateToken mints a single-use token for the given purpose.
func (s *Store) CreateToken(ctx context.Context, userID, purpose string) (string, error) {
	token := uuid.NewString()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO auth_tokens (token, user_id, purpose) VALUES ($1, $2, $3)
	`, token, userID, purpose)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeToken validates a uid+token pair for a purpose and marks it used.
// A second consume of the same token fails with ErrTokenConsumed.
func (s *Store) ConsumeToken(ctx context.Context, userID, token, purpose string) error {
	var used bool
	err := s.DB.GetContext(ctx, &used, `
		SELECT used FROM auth_tokens
		WHERE token = $1 AND user_id = $2 AND purpose = $3
	`, token, userID, purpose)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if used {
		return ErrTokenConsumed
	}
	_, err = s.DB.ExecContext(ctx, `UPDATE auth_tokens SET used = TRUE WHERE token = $1`, token)
	return err
}

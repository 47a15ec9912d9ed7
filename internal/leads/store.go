package leads

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"holdco-backend/internal/model"
)

// Store persists accepted leads to Postgres.
type Store struct {
	DB *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db}
}

// InitSchema creates the leads table if it does not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS leads (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Insert writes one lead row and returns it with ID and timestamp filled.
func (s *Store) Insert(ctx context.Context, kind model.LeadKind, name, email string, payload []byte) (*model.Lead, error) {
	lead := &model.Lead{
		ID:        uuid.NewString(),
		Kind:      kind,
		Name:      name,
		Email:     email,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.DB.NamedExecContext(ctx, `
		INSERT INTO leads (id, kind, name, email, payload, created_at)
		VALUES (:id, :kind, :name, :email, :payload, :created_at)
	`, lead)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// Recent returns the newest leads of a kind, for the dashboard page.
func (s *Store) Recent(ctx context.Context, kind model.LeadKind, limit int) ([]model.Lead, error) {
	var out []model.Lead
	err := s.DB.SelectContext(ctx, &out, `
		SELECT * FROM leads
		WHERE kind = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, kind, limit)
	return out, err
}

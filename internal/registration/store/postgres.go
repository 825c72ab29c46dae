package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"regdesk/internal/registration/models"
	"regdesk/pkg/platform/sentinel"
)

// PostgresStore persists registrants in PostgreSQL. Unique indexes on email
// and admission_no make Create a conditional insert: the second writer in a
// race gets sentinel.ErrConflict instead of a second row.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmailOrAdmissionNo(ctx context.Context, email, admissionNo string) (*models.Registrant, error) {
	query := `
		SELECT id, name, admission_no, branch, phone, email, created_at
		FROM registrants
		WHERE email = $1 OR admission_no = $2
	`
	var r models.Registrant
	err := s.db.QueryRowContext(ctx, query, email, admissionNo).Scan(
		&r.ID, &r.Name, &r.AdmissionNo, &r.Branch, &r.Phone, &r.Email, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registrant: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) Create(ctx context.Context, registrant *models.Registrant) error {
	query := `
		INSERT INTO registrants (id, name, admission_no, branch, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		registrant.ID,
		registrant.Name,
		registrant.AdmissionNo,
		registrant.Branch,
		registrant.Phone,
		registrant.Email,
		registrant.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert registrant: %w", err)
	}
	return nil
}

// EnsureSchema applies the registrants DDL. Production deployments run the
// files under migrations/ instead; tests call this directly.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS registrants (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			admission_no TEXT NOT NULL,
			branch TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS registrants_email_key ON registrants (email);
		CREATE UNIQUE INDEX IF NOT EXISTS registrants_admission_no_key ON registrants (admission_no);
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure registrants schema: %w", err)
	}
	return nil
}

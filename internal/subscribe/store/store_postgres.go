package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"praxis/internal/subscribe/models"
)

// Postgres persists the submission log in PostgreSQL.
// This store is pure I/O; validation and list routing belong in the service.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed submission log.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to Postgres and ensures the schema exists.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure subscriptions schema: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS subscription_log (
	id         UUID PRIMARY KEY,
	email      TEXT NOT NULL,
	source     TEXT NOT NULL,
	list_id    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

func (s *Postgres) Create(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO subscription_log (id, email, source, list_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, sub.ID, sub.Email, sub.Source, sub.ListID, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *Postgres) Recent(ctx context.Context, limit int) ([]*models.Submission, error) {
	query := `
		SELECT id, email, source, list_id, created_at
		FROM subscription_log
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []*models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Source, &sub.ListID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

package postgres

import (
	"context"
	"database/sql"

	"rosapi/internal/model"
	"rosapi/internal/repository"
)

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RecordPostgres struct {
	db *sql.DB
}

// NewRecordPostgres creates a new RecordPostgres repository.
func NewRecordPostgres(db *sql.DB) *RecordPostgres {
	return &RecordPostgres{db: db}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

// Upsert writes the record keyed by (owner, repository, id).
func (r *RecordPostgres) Upsert(ctx context.Context, rec *model.ROSRecord) error {
	const q = `
		INSERT INTO ros_records (owner, repository, id, branch, state, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner, repository, id) DO UPDATE
		SET branch = EXCLUDED.branch, state = EXCLUDED.state, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, q,
		rec.Owner,
		rec.Repository,
		rec.ID,
		rec.Branch,
		string(rec.State),
		rec.UpdatedAt,
	)
	return err
}

// Get fetches a single record.
func (r *RecordPostgres) Get(ctx context.Context, owner, repo, id string) (*model.ROSRecord, error) {
	const q = `
		SELECT owner, repository, id, branch, state, updated_at
		FROM ros_records
		WHERE owner = $1 AND repository = $2 AND id = $3
	`
	var (
		rec   model.ROSRecord
		state string
	)
	err := r.db.QueryRowContext(ctx, q, owner, repo, id).Scan(
		&rec.Owner,
		&rec.Repository,
		&rec.ID,
		&rec.Branch,
		&state,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.State = model.ROSState(state)
	return &rec, nil
}

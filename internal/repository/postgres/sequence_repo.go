package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bananabill/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a new PostgreSQL-backed SequenceRepository.
func NewSequenceRepo(db *sqlx.DB) port.SequenceRepository {
	return &sequenceRepo{db: db}
}

// Next returns the next value for the named sequence, starting at 1. The
// upsert is a single statement so concurrent callers never see the same
// value.
func (r *sequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	var seq int64
	err := r.db.GetContext(ctx, &seq, `
		INSERT INTO bill_sequences (key, seq) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET seq = bill_sequences.seq + 1
		RETURNING seq`,
		key)
	if err != nil {
		return 0, fmt.Errorf("sequenceRepo.Next: %w", err)
	}
	return seq, nil
}

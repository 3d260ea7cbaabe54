package postgres

import (
	"context"
	"fmt"

	"github.com/clinova/clinic-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implements the per-clinic invoice sequence on PostgreSQL.
// Always bind it to a transaction: the upsert takes a row lock that must
// live until the surrounding invoice insert commits.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository builds the sequence adapter. Pass a tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextNumber increments and returns the clinic's invoice counter in one
// statement. The first call for a clinic creates the row at 1. Concurrent
// transactions block on the row lock, so no two commits mint the same
// number for a clinic.
func (r *SequenceRepo) NextNumber(ctx context.Context, clinicID string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (clinic_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (clinic_id)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(ctx, query, clinicID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de códigos internos (fila única de barcode_settings).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// ClaimRange avanza next_sequence en count con un solo UPDATE ... RETURNING; el lock de fila
// serializa reservas concurrentes y nunca se solapan rangos.
func (r *SequenceRepo) ClaimRange(ctx context.Context, count int64) (int64, error) {
	if count <= 0 {
		return 0, domain.ErrInvalidInput
	}
	var start int64
	err := r.q.QueryRow(ctx, `
		UPDATE barcode_settings SET next_sequence = next_sequence + $1::bigint
		WHERE id = 1
		RETURNING next_sequence - $1::bigint`, count).Scan(&start)
	if err != nil {
		return 0, fmt.Errorf("claim sequence range: %w", err)
	}
	return start, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var _ repository.CostLedgerRepository = (*CostLedgerRepo)(nil)

// CostLedgerRepo libro de costos sobre PostgreSQL (solo INSERT).
type CostLedgerRepo struct {
	q Querier
}

// NewCostLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostLedgerRepository(q Querier) *CostLedgerRepo {
	return &CostLedgerRepo{q: q}
}

// Create inserta un asiento.
func (r *CostLedgerRepo) Create(ctx context.Context, e *entity.CostLedgerEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	var variantID *string
	if e.VariantID != "" {
		variantID = &e.VariantID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO cost_ledger (id, product_id, variant_id, type, ref_table, ref_id, qty, unit_cost_ars, total_cost_ars, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.ProductID, variantID, e.Type, e.RefTable, e.RefID, e.Qty, e.UnitCostARS, e.TotalCostARS, e.Notes, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByRef asientos de una referencia en orden de alta.
func (r *CostLedgerRepo) ListByRef(ctx context.Context, refTable, refID string) ([]*entity.CostLedgerEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, variant_id, type, ref_table, ref_id, qty, unit_cost_ars, total_cost_ars, notes, created_at
		FROM cost_ledger WHERE ref_table = $1 AND ref_id = $2
		ORDER BY line`, refTable, refID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostLedgerEntry
	for rows.Next() {
		var e entity.CostLedgerEntry
		var variantID *string
		if err := rows.Scan(&e.ID, &e.ProductID, &variantID, &e.Type, &e.RefTable, &e.RefID,
			&e.Qty, &e.UnitCostARS, &e.TotalCostARS, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if variantID != nil {
			e.VariantID = *variantID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

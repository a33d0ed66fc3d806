package repository

import (
	"context"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// CostLedgerRepository libro de costos (solo inserción).
type CostLedgerRepository interface {
	Create(ctx context.Context, entry *entity.CostLedgerEntry) error
	ListByRef(ctx context.Context, refTable, refID string) ([]*entity.CostLedgerEntry, error)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// BulkProductRepository puerto de persistencia de productos a granel.
type BulkProductRepository interface {
	Create(ctx context.Context, product *entity.BulkProduct) error
	GetByID(ctx context.Context, id string) (*entity.BulkProduct, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.BulkProduct, error)
	UpdateStock(ctx context.Context, id string, stockKg decimal.Decimal) error
}

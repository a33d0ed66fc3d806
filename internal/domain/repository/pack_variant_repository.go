package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// PackVariantRepository puerto de persistencia de variantes envasadas.
// Los Get devuelven (nil, nil) si la variante no existe.
type PackVariantRepository interface {
	Create(ctx context.Context, variant *entity.PackVariant) error
	GetByID(ctx context.Context, id string) (*entity.PackVariant, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.PackVariant, error)
	// GetByCode busca por código interno o por código de balanza.
	GetByCode(ctx context.Context, code string) (*entity.PackVariant, error)
	// SetBarcode escribe el código interno; vacío lo limpia.
	SetBarcode(ctx context.Context, id, ean13 string) error
	SetFakeScale(ctx context.Context, id string, code *entity.ScaleBarcode) error
	UpdateStock(ctx context.Context, id string, stockPacks int64, avgPackCost decimal.Decimal) error
}

package repository

import (
	"context"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// InternalBarcodeRepository puerto del pool de códigos internos.
type InternalBarcodeRepository interface {
	InsertBatch(ctx context.Context, codes []*entity.InternalBarcode) error
	GetByEAN13(ctx context.Context, ean13 string) (*entity.InternalBarcode, error)
	GetByEAN13ForUpdate(ctx context.Context, ean13 string) (*entity.InternalBarcode, error)
	// ClaimOldestFree bloquea y devuelve el código FREE más antiguo que ninguna otra
	// transacción tenga tomado; (nil, nil) si no hay.
	ClaimOldestFree(ctx context.Context) (*entity.InternalBarcode, error)
	// Update persiste Status, VariantID y AssignedAt.
	Update(ctx context.Context, code *entity.InternalBarcode) error
	List(ctx context.Context, status entity.BarcodeStatus, limit, offset int) ([]*entity.InternalBarcode, error)
}

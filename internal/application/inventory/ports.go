package inventory

import (
	"context"

	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el descuento de stock y los asientos del libro de costos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// AuditRecorder registra planes calculados y confirmados.
type AuditRecorder interface {
	Record(ctx context.Context, rec entity.AuditRecord)
}

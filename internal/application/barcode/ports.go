package barcode

import (
	"context"

	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// LabelPublisher entrega pedidos de etiqueta al subsistema de impresión.
type LabelPublisher interface {
	Publish(ctx context.Context, jobs []entity.LabelJob) error
}

// AuditRecorder registra eventos informativos del pool.
type AuditRecorder interface {
	Record(ctx context.Context, rec entity.AuditRecord)
}

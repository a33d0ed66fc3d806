package repository

import (
	"context"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// PluRepository puerto de la tabla PLU. Create devuelve domain.ErrDuplicate si la clave existe.
type PluRepository interface {
	Create(ctx context.Context, record *entity.PluRecord) error
	GetByPLU(ctx context.Context, plu string) (*entity.PluRecord, error)
}

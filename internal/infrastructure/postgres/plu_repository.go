package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var _ repository.PluRepository = (*PluRepo)(nil)

// PluRepo tabla PLU sobre PostgreSQL.
type PluRepo struct {
	q Querier
}

// NewPluRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPluRepository(q Querier) *PluRepo {
	return &PluRepo{q: q}
}

// Create persiste una clave PLU; ErrDuplicate si ya existe.
func (r *PluRepo) Create(ctx context.Context, rec *entity.PluRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO plu_records (plu, product_id, encoding, created_at) VALUES ($1, $2, $3, $4)`,
		rec.PLU, rec.ProductID, string(rec.Encoding), rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plu: %w", err)
	}
	return nil
}

// GetByPLU obtiene el registro de una clave PLU.
func (r *PluRepo) GetByPLU(ctx context.Context, plu string) (*entity.PluRecord, error) {
	var rec entity.PluRecord
	var encoding string
	err := r.q.QueryRow(ctx, `SELECT plu, product_id, encoding, created_at FROM plu_records WHERE plu = $1`, plu).
		Scan(&rec.PLU, &rec.ProductID, &encoding, &rec.CreatedAt)
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plu: %w", err)
	}
	rec.Encoding = entity.ScaleScheme(encoding)
	return &rec, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var _ repository.BulkProductRepository = (*BulkProductRepo)(nil)

// BulkProductRepo productos a granel sobre PostgreSQL.
type BulkProductRepo struct {
	q Querier
}

// NewBulkProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBulkProductRepository(q Querier) *BulkProductRepo {
	return &BulkProductRepo{q: q}
}

// Create persiste un producto a granel.
func (r *BulkProductRepo) Create(ctx context.Context, p *entity.BulkProduct) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.UpdatedAt = time.Now()
	_, err := r.q.Exec(ctx, `
		INSERT INTO bulk_products (id, name, stock, cost_ars, price_per_kg, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Stock, p.CostARS, p.PricePerKg, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bulk product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *BulkProductRepo) GetByID(ctx context.Context, id string) (*entity.BulkProduct, error) {
	return r.getOne(ctx, `SELECT id, name, stock, cost_ars, price_per_kg, updated_at FROM bulk_products WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila del producto hasta el fin de la tx.
func (r *BulkProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.BulkProduct, error) {
	return r.getOne(ctx, `SELECT id, name, stock, cost_ars, price_per_kg, updated_at FROM bulk_products WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStock fija el stock a granel en kg.
func (r *BulkProductRepo) UpdateStock(ctx context.Context, id string, stockKg decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE bulk_products SET stock = $2, updated_at = now() WHERE id = $1`, id, stockKg)
	if err != nil {
		return fmt.Errorf("update bulk stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BulkProductRepo) getOne(ctx context.Context, query, id string) (*entity.BulkProduct, error) {
	var p entity.BulkProduct
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Stock, &p.CostARS, &p.PricePerKg, &p.UpdatedAt)
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bulk product: %w", err)
	}
	return &p, nil
}

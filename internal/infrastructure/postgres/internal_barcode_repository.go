package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var _ repository.InternalBarcodeRepository = (*InternalBarcodeRepo)(nil)

// InternalBarcodeRepo pool de códigos internos sobre PostgreSQL. seq (BIGSERIAL) da el orden FIFO.
type InternalBarcodeRepo struct {
	q Querier
}

// NewInternalBarcodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInternalBarcodeRepository(q Querier) *InternalBarcodeRepo {
	return &InternalBarcodeRepo{q: q}
}

const barcodeColumns = `ean13, seq, status, variant_id, notes, created_at, assigned_at`

// InsertBatch inserta los códigos en el orden recibido y completa Seq en cada uno.
func (r *InternalBarcodeRepo) InsertBatch(ctx context.Context, codes []*entity.InternalBarcode) error {
	if len(codes) == 0 {
		return nil
	}
	eans := make([]string, len(codes))
	notes := make([]string, len(codes))
	byCode := make(map[string]*entity.InternalBarcode, len(codes))
	for i, c := range codes {
		eans[i] = c.EAN13
		notes[i] = c.Notes
		byCode[c.EAN13] = c
	}
	rows, err := r.q.Query(ctx, `
		INSERT INTO internal_barcodes (ean13, status, notes, created_at)
		SELECT c.ean13, 'FREE', c.notes, $3
		FROM unnest($1::text[], $2::text[]) WITH ORDINALITY AS c(ean13, notes, ord)
		ORDER BY c.ord
		RETURNING ean13, seq`, eans, notes, codes[0].CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código interno repetido", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert barcodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var seq int64
		if err := rows.Scan(&code, &seq); err != nil {
			return fmt.Errorf("scan barcode seq: %w", err)
		}
		if c, ok := byCode[code]; ok {
			c.Seq = seq
		}
	}
	if err := rows.Err(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código interno repetido", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert barcodes: %w", err)
	}
	return nil
}

// GetByEAN13 obtiene un código del pool.
func (r *InternalBarcodeRepo) GetByEAN13(ctx context.Context, code string) (*entity.InternalBarcode, error) {
	return r.getOne(ctx, `SELECT `+barcodeColumns+` FROM internal_barcodes WHERE ean13 = $1`, code)
}

// GetByEAN13ForUpdate obtiene y bloquea un código del pool.
func (r *InternalBarcodeRepo) GetByEAN13ForUpdate(ctx context.Context, code string) (*entity.InternalBarcode, error) {
	return r.getOne(ctx, `SELECT `+barcodeColumns+` FROM internal_barcodes WHERE ean13 = $1 FOR UPDATE`, code)
}

// ClaimOldestFree bloquea el FREE más antiguo; SKIP LOCKED hace que dos asignaciones
// concurrentes nunca tomen el mismo código.
func (r *InternalBarcodeRepo) ClaimOldestFree(ctx context.Context) (*entity.InternalBarcode, error) {
	return r.getOne(ctx, `
		SELECT `+barcodeColumns+` FROM internal_barcodes
		WHERE status = 'FREE'
		ORDER BY seq
		LIMIT 1
		FOR UPDATE SKIP LOCKED`)
}

// Update persiste estado, variante y fecha de asignación.
func (r *InternalBarcodeRepo) Update(ctx context.Context, code *entity.InternalBarcode) error {
	var variantID *string
	if code.VariantID != "" {
		variantID = &code.VariantID
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE internal_barcodes SET status = $2, variant_id = $3, assigned_at = $4
		WHERE ean13 = $1`, code.EAN13, string(code.Status), variantID, code.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la variante ya tiene un código asignado", domain.ErrDuplicate)
		}
		return fmt.Errorf("update barcode: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el pool por orden de alta; status vacío trae todos.
func (r *InternalBarcodeRepo) List(ctx context.Context, status entity.BarcodeStatus, limit, offset int) ([]*entity.InternalBarcode, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+barcodeColumns+` FROM internal_barcodes
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY seq
		LIMIT $2 OFFSET $3`, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list barcodes: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InternalBarcode, 0, limit)
	for rows.Next() {
		b, err := scanBarcode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan barcode: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *InternalBarcodeRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InternalBarcode, error) {
	b, err := scanBarcode(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get barcode: %w", err)
	}
	return b, nil
}

func scanBarcode(row pgx.Row) (*entity.InternalBarcode, error) {
	var (
		b          entity.InternalBarcode
		status     string
		variantID  *string
		assignedAt *time.Time
	)
	if err := row.Scan(&b.EAN13, &b.Seq, &status, &variantID, &b.Notes, &b.CreatedAt, &assignedAt); err != nil {
		return nil, err
	}
	b.Status = entity.BarcodeStatus(status)
	if variantID != nil {
		b.VariantID = *variantID
	}
	b.AssignedAt = assignedAt
	return &b, nil
}

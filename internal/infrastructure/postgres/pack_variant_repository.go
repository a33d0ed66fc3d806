package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

var _ repository.PackVariantRepository = (*PackVariantRepo)(nil)

// PackVariantRepo implementación del puerto PackVariantRepository sobre PostgreSQL (usable con pool o tx).
type PackVariantRepo struct {
	q Querier
}

// NewPackVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackVariantRepository(q Querier) *PackVariantRepo {
	return &PackVariantRepo{q: q}
}

const variantColumns = `id, product_id, name, content_kg, barcode, fake_scale_barcode, fake_scale_scheme,
	fake_scale_prefix, stock_packs, consume_mode, price_mode, fixed_price, avg_pack_cost_ars, created_at, updated_at`

// Create persiste una variante nueva. Si no trae ID se genera.
func (r *PackVariantRepo) Create(ctx context.Context, v *entity.PackVariant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	var fixed decimal.NullDecimal
	if v.FixedPrice != nil {
		fixed = decimal.NewNullDecimal(*v.FixedPrice)
	}
	var barcode, fakeCode, fakeScheme *string
	var fakePrefix *int16
	if v.Barcode != "" {
		barcode = &v.Barcode
	}
	if v.FakeScale != nil {
		code, scheme, prefix := v.FakeScale.Code, string(v.FakeScale.Scheme), int16(v.FakeScale.Prefix)
		fakeCode, fakeScheme, fakePrefix = &code, &scheme, &prefix
	}
	query := `
		INSERT INTO pack_variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ProductID, v.Name, v.ContentKg, barcode, fakeCode, fakeScheme, fakePrefix,
		v.StockPacks, string(v.ConsumeMode.OrDefault()), string(priceModeOrDefault(v.PriceMode)), fixed,
		v.AvgPackCostARS, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pack variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *PackVariantRepo) GetByID(ctx context.Context, id string) (*entity.PackVariant, error) {
	return r.getOne(ctx, `SELECT `+variantColumns+` FROM pack_variants WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE). Solo tiene efecto dentro de una tx.
func (r *PackVariantRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PackVariant, error) {
	return r.getOne(ctx, `SELECT `+variantColumns+` FROM pack_variants WHERE id = $1 FOR UPDATE`, id)
}

// GetByCode busca por código interno o de balanza.
func (r *PackVariantRepo) GetByCode(ctx context.Context, code string) (*entity.PackVariant, error) {
	if code == "" {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+variantColumns+` FROM pack_variants
		WHERE barcode = $1 OR fake_scale_barcode = $1 LIMIT 1`, code)
}

// SetBarcode escribe o limpia (ean13 vacío) el código interno.
func (r *PackVariantRepo) SetBarcode(ctx context.Context, id, ean13 string) error {
	var code *string
	if ean13 != "" {
		if err := r.ensureCodeFree(ctx, id, ean13); err != nil {
			return err
		}
		code = &ean13
	}
	tag, err := r.q.Exec(ctx, `UPDATE pack_variants SET barcode = $2, updated_at = now() WHERE id = $1`, id, code)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("set barcode: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

// SetFakeScale guarda el código de balanza junto con su esquema y prefijo; nil lo limpia.
func (r *PackVariantRepo) SetFakeScale(ctx context.Context, id string, code *entity.ScaleBarcode) error {
	var fakeCode, fakeScheme *string
	var fakePrefix *int16
	if code != nil {
		if err := r.ensureCodeFree(ctx, id, code.Code); err != nil {
			return err
		}
		c, s, p := code.Code, string(code.Scheme), int16(code.Prefix)
		fakeCode, fakeScheme, fakePrefix = &c, &s, &p
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE pack_variants
		SET fake_scale_barcode = $2, fake_scale_scheme = $3, fake_scale_prefix = $4, updated_at = now()
		WHERE id = $1`, id, fakeCode, fakeScheme, fakePrefix)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("set fake scale barcode: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

// UpdateStock actualiza stock de packs y costo promedio por pack.
func (r *PackVariantRepo) UpdateStock(ctx context.Context, id string, stockPacks int64, avgPackCost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE pack_variants SET stock_packs = $2, avg_pack_cost_ars = $3, updated_at = now()
		WHERE id = $1`, id, stockPacks, avgPackCost)
	if err != nil {
		return fmt.Errorf("update pack stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVariantNotFound
	}
	return nil
}

// ensureCodeFree verifica que ninguna otra variante use code como interno ni como de balanza.
func (r *PackVariantRepo) ensureCodeFree(ctx context.Context, id, code string) error {
	var taken bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM pack_variants
			WHERE id <> $1 AND (barcode = $2 OR fake_scale_barcode = $2))`, id, code).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check barcode: %w", err)
	}
	if taken {
		return domain.ErrDuplicate
	}
	return nil
}

func (r *PackVariantRepo) getOne(ctx context.Context, query string, arg string) (*entity.PackVariant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pack variant: %w", err)
	}
	return v, nil
}

func scanVariant(row pgx.Row) (*entity.PackVariant, error) {
	var (
		v                    entity.PackVariant
		barcode              *string
		fakeCode, fakeScheme *string
		fakePrefix           *int16
		consumeMode          string
		priceMode            string
		fixed                decimal.NullDecimal
	)
	err := row.Scan(
		&v.ID, &v.ProductID, &v.Name, &v.ContentKg, &barcode, &fakeCode, &fakeScheme, &fakePrefix,
		&v.StockPacks, &consumeMode, &priceMode, &fixed, &v.AvgPackCostARS, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		v.Barcode = *barcode
	}
	if fakeCode != nil && fakeScheme != nil {
		v.FakeScale = &entity.ScaleBarcode{Code: *fakeCode, Scheme: entity.ScaleScheme(*fakeScheme)}
		if fakePrefix != nil {
			v.FakeScale.Prefix = int(*fakePrefix)
		}
	}
	v.ConsumeMode = entity.ConsumeMode(consumeMode)
	v.PriceMode = entity.PriceMode(priceMode)
	if fixed.Valid {
		price := fixed.Decimal
		v.FixedPrice = &price
	}
	return &v, nil
}

func priceModeOrDefault(m entity.PriceMode) entity.PriceMode {
	if m == entity.PriceModeFixed {
		return m
	}
	return entity.PriceModePerKg
}

package barcode

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/ean13"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
	"github.com/jhoicas/granel-api/internal/domain/scalecode"
)

// ScanKind qué se encontró al escanear.
type ScanKind string

// Tipos de resultado de Scan.
const (
	ScanVariant ScanKind = "VARIANT"
	ScanPlu     ScanKind = "PLU"
)

// ScanResult código escaneado resuelto.
type ScanResult struct {
	Kind      ScanKind
	Code      string
	Variant   *entity.PackVariant
	Product   *entity.BulkProduct
	UnitPrice *decimal.Decimal
	Scale     *scalecode.Decoded // si el código es el de balanza de la variante
	Plu       *PluResult
}

// ScanUseCase resuelve un código leído en caja: primero coincidencia exacta con una variante,
// después PLU indirecto.
type ScanUseCase struct {
	repos repository.Repos
	plu   *PluUseCase
}

// NewScanUseCase construye el caso de uso.
func NewScanUseCase(repos repository.Repos, plu *PluUseCase) *ScanUseCase {
	return &ScanUseCase{repos: repos, plu: plu}
}

// Scan resuelve code. Si no tiene forma EAN-13 válida devuelve domain.ErrMalformed;
// si no hay coincidencia, domain.ErrNotFound.
func (uc *ScanUseCase) Scan(ctx context.Context, code string) (*ScanResult, error) {
	code = strings.TrimSpace(code)
	if err := ean13.Validate(code); err != nil {
		return nil, err
	}

	variant, err := uc.repos.Variants.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if variant != nil {
		out := &ScanResult{Kind: ScanVariant, Code: code, Variant: variant}
		product, err := uc.repos.Products.GetByID(ctx, variant.ProductID)
		if err != nil {
			return nil, err
		}
		out.Product = product
		if price, ok := variant.UnitPrice(product); ok {
			out.UnitPrice = &price
		}
		if variant.FakeScale != nil && variant.FakeScale.Code == code {
			decoded, err := scalecode.Decode(code, variant.FakeScale.Scheme)
			if err != nil {
				return nil, err
			}
			out.Scale = decoded
		}
		return out, nil
	}

	parsed, err := uc.plu.Parse(ctx, code)
	if err != nil {
		return nil, err
	}
	if parsed.Status == PluFound {
		return &ScanResult{Kind: ScanPlu, Code: code, Product: parsed.Product, Plu: parsed}, nil
	}
	return nil, domain.ErrNotFound
}

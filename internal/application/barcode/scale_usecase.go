package barcode

import (
	"context"
	"fmt"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
	"github.com/jhoicas/granel-api/internal/domain/scalecode"
	"github.com/jhoicas/granel-api/pkg/config"
)

// ScaleUseCase genera y lee los códigos de balanza autodescriptivos de las variantes.
type ScaleUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	cfg      config.BarcodeConfig
}

// NewScaleUseCase construye el caso de uso.
func NewScaleUseCase(txRunner TxRunner, repos repository.Repos, cfg config.BarcodeConfig) *ScaleUseCase {
	return &ScaleUseCase{txRunner: txRunner, repos: repos, cfg: cfg}
}

// GenerateScaleInput entrada de GenerateScaleBarcode. Scheme vacío y Prefix nil toman los defaults.
type GenerateScaleInput struct {
	VariantID string
	Scheme    entity.ScaleScheme
	Prefix    *int
}

// GenerateScaleBarcode arma el código de balanza de la variante y lo guarda junto con su esquema.
// Para PRICE_EMBEDDED usa el precio fijo del pack o, si no tiene, precio por kg × contenido.
func (uc *ScaleUseCase) GenerateScaleBarcode(ctx context.Context, in GenerateScaleInput) (*entity.ScaleBarcode, error) {
	scheme := in.Scheme
	if scheme == "" {
		scheme = entity.ScaleScheme(uc.cfg.DefaultScheme)
	}
	if !scheme.IsValid() {
		return nil, fmt.Errorf("%w: esquema %q", domain.ErrInvalidInput, scheme)
	}
	prefix := uc.cfg.DefaultPrefix
	if in.Prefix != nil {
		prefix = *in.Prefix
	}

	var out *entity.ScaleBarcode
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		variant, err := repos.Variants.GetByIDForUpdate(ctx, in.VariantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrVariantNotFound
		}
		if variant.HasAnyBarcode() {
			return domain.ErrAlreadyHasBarcode
		}
		contentKg := variant.ContentKg
		req := scalecode.Request{Prefix: prefix, Scheme: scheme, ContentKg: &contentKg}
		if scheme == entity.SchemePriceEmbedded {
			if variant.PriceMode == entity.PriceModeFixed && variant.FixedPrice != nil {
				price := *variant.FixedPrice
				req.PriceARS = &price
			} else {
				product, err := repos.Products.GetByID(ctx, variant.ProductID)
				if err != nil {
					return err
				}
				if product != nil && product.PricePerKg.IsPositive() {
					unit := product.PricePerKg
					req.UnitPrice = &unit
				}
			}
		}
		code, err := scalecode.Build(req)
		if err != nil {
			return err
		}
		out = &entity.ScaleBarcode{Code: code, Scheme: scheme, Prefix: prefix}
		return repos.Variants.SetFakeScale(ctx, variant.ID, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeScaleBarcode lee el código de balanza guardado en la variante según su esquema guardado.
func (uc *ScaleUseCase) DecodeScaleBarcode(ctx context.Context, variantID string) (*scalecode.Decoded, error) {
	variant, err := uc.repos.Variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrVariantNotFound
	}
	if variant.FakeScale == nil {
		return nil, fmt.Errorf("%w: la variante no tiene código de balanza", domain.ErrNotFound)
	}
	return scalecode.Decode(variant.FakeScale.Code, variant.FakeScale.Scheme)
}

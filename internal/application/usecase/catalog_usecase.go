package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/application/dto"
	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

// CatalogUseCase alta y consulta de productos a granel y variantes envasadas.
// Stock y costo después del alta se manejan con envasados y ventas.
type CatalogUseCase struct {
	repos repository.Repos
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repos repository.Repos) *CatalogUseCase {
	return &CatalogUseCase{repos: repos}
}

// CreateProduct crea un producto a granel.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.StockKg.IsNegative() || in.CostARS.IsNegative() || in.PricePerKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.BulkProduct{
		Name:       in.Name,
		Stock:      in.StockKg,
		CostARS:    in.CostARS,
		PricePerKg: in.PricePerKg,
		UpdatedAt:  time.Now(),
	}
	if err := uc.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetProduct obtiene un producto; nil si no existe.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// CreateVariant crea una variante envasada de un producto existente. Los códigos se asignan después.
func (uc *CatalogUseCase) CreateVariant(ctx context.Context, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if in.Name == "" || !in.ContentKg.IsPositive() || in.StockPacks < 0 {
		return nil, domain.ErrInvalidInput
	}
	mode := entity.ConsumeMode(in.ConsumeMode)
	if in.ConsumeMode != "" && !mode.IsValid() {
		return nil, fmt.Errorf("%w: modo de consumo %q", domain.ErrInvalidInput, in.ConsumeMode)
	}
	priceMode := entity.PriceModePerKg
	if in.PriceMode != "" {
		priceMode = entity.PriceMode(in.PriceMode)
		if priceMode != entity.PriceModePerKg && priceMode != entity.PriceModeFixed {
			return nil, fmt.Errorf("%w: modo de precio %q", domain.ErrInvalidInput, in.PriceMode)
		}
	}
	if priceMode == entity.PriceModeFixed && (in.FixedPrice == nil || !in.FixedPrice.IsPositive()) {
		return nil, fmt.Errorf("%w: precio fijo requerido", domain.ErrInvalidInput)
	}
	product, err := uc.repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	variant := &entity.PackVariant{
		ProductID:      product.ID,
		Name:           in.Name,
		ContentKg:      in.ContentKg,
		StockPacks:     in.StockPacks,
		ConsumeMode:    mode.OrDefault(),
		PriceMode:      priceMode,
		FixedPrice:     in.FixedPrice,
		AvgPackCostARS: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repos.Variants.Create(ctx, variant); err != nil {
		return nil, err
	}
	return ToVariantResponse(variant), nil
}

// GetVariant obtiene una variante; nil si no existe.
func (uc *CatalogUseCase) GetVariant(ctx context.Context, id string) (*dto.VariantResponse, error) {
	variant, err := uc.repos.Variants.GetByID(ctx, id)
	if err != nil || variant == nil {
		return nil, err
	}
	return ToVariantResponse(variant), nil
}

// ToProductResponse convierte la entidad al DTO.
func ToProductResponse(p *entity.BulkProduct) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		StockKg:    p.Stock,
		CostARS:    p.CostARS,
		PricePerKg: p.PricePerKg,
	}
}

// ToVariantResponse convierte la entidad al DTO.
func ToVariantResponse(v *entity.PackVariant) *dto.VariantResponse {
	out := &dto.VariantResponse{
		ID:             v.ID,
		ProductID:      v.ProductID,
		Name:           v.Name,
		ContentKg:      v.ContentKg,
		Barcode:        v.Barcode,
		StockPacks:     v.StockPacks,
		ConsumeMode:    string(v.ConsumeMode.OrDefault()),
		PriceMode:      string(v.PriceMode),
		FixedPrice:     v.FixedPrice,
		AvgPackCostARS: v.AvgPackCostARS,
	}
	if v.FakeScale != nil {
		out.FakeScale = &dto.ScaleBarcodeResponse{Code: v.FakeScale.Code, Scheme: string(v.FakeScale.Scheme), Prefix: v.FakeScale.Prefix}
	}
	return out
}

package barcode

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
	"github.com/jhoicas/granel-api/internal/domain/scalecode"
	"github.com/jhoicas/granel-api/pkg/config"
)

// PluStatus resultado de interpretar un código como PLU indirecto.
type PluStatus string

// Resultados posibles de Parse. Ninguno es un error.
const (
	PluNotScaleCode PluStatus = "NOT_SCALE_CODE"
	PluUnknown      PluStatus = "UNKNOWN_PLU"
	PluFound        PluStatus = "FOUND"
)

// weightScale decimales del peso derivado de un precio.
const weightScale = 3

// PluResult código PLU interpretado.
type PluResult struct {
	Status   PluStatus
	PLU      string
	Value    int64
	Record   *entity.PluRecord
	Product  *entity.BulkProduct
	WeightKg decimal.Decimal
	PriceARS decimal.Decimal
}

// PluUseCase tabla PLU y lectura de códigos de balanza indirectos.
type PluUseCase struct {
	repos        repository.Repos
	priceDivisor decimal.Decimal
	now          func() time.Time
}

// NewPluUseCase construye el caso de uso. El divisor de precio sale de BARCODE_PLU_PRICE_DIVISOR.
func NewPluUseCase(repos repository.Repos, cfg config.BarcodeConfig) *PluUseCase {
	divisor := cfg.PLUPriceDivisor
	if divisor <= 0 {
		divisor = 1000
	}
	return &PluUseCase{
		repos:        repos,
		priceDivisor: decimal.NewFromInt(int64(divisor)),
		now:          time.Now,
	}
}

// CreatePluRecord da de alta una clave PLU de 5 dígitos para un producto a granel.
func (uc *PluUseCase) CreatePluRecord(ctx context.Context, plu, productID string, encoding entity.ScaleScheme) (*entity.PluRecord, error) {
	if !scalecode.ValidPLU(plu) {
		return nil, fmt.Errorf("%w: el PLU debe tener %d dígitos", domain.ErrInvalidInput, scalecode.PLULength)
	}
	if !encoding.IsValid() {
		return nil, fmt.Errorf("%w: esquema %q", domain.ErrInvalidInput, encoding)
	}
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rec := &entity.PluRecord{PLU: plu, ProductID: productID, Encoding: encoding, CreatedAt: uc.now()}
	if err := uc.repos.Plu.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Parse interpreta un código de la familia 2 como PLU indirecto. Un código que no es de balanza
// o cuyo PLU no está registrado no es un error: se informa en Status.
func (uc *PluUseCase) Parse(ctx context.Context, code string) (*PluResult, error) {
	fields, ok := scalecode.SplitPlu(code)
	if !ok {
		return &PluResult{Status: PluNotScaleCode}, nil
	}
	out := &PluResult{Status: PluUnknown, PLU: fields.PLU, Value: fields.Value}
	rec, err := uc.repos.Plu.GetByPLU(ctx, fields.PLU)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return out, nil
	}
	out.Status = PluFound
	out.Record = rec

	product, err := uc.repos.Products.GetByID(ctx, rec.ProductID)
	if err != nil {
		return nil, err
	}
	out.Product = product

	value := decimal.NewFromInt(fields.Value)
	switch rec.Encoding {
	case entity.SchemeWeightEmbedded:
		out.WeightKg = value.Div(decimal.NewFromInt(1000))
	case entity.SchemePriceEmbedded:
		out.PriceARS = value.Div(uc.priceDivisor)
		if product != nil && !product.PricePerKg.IsZero() {
			out.WeightKg = out.PriceARS.Div(product.PricePerKg).Round(weightScale)
		}
	}
	return out, nil
}

// EncodePluInput entrada de Encode. Se usa WeightKg o PriceARS según el esquema del PLU.
type EncodePluInput struct {
	PLU       string
	SubFamily byte
	WeightKg  *decimal.Decimal
	PriceARS  *decimal.Decimal
}

// Encode arma un código PLU indirecto (gramos o centavos) para imprimir en la balanza.
func (uc *PluUseCase) Encode(ctx context.Context, in EncodePluInput) (string, error) {
	if !scalecode.ValidPLU(in.PLU) {
		return "", fmt.Errorf("%w: PLU %q", domain.ErrInvalidInput, in.PLU)
	}
	rec, err := uc.repos.Plu.GetByPLU(ctx, in.PLU)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", domain.ErrNotFound
	}
	value, err := scalecode.EncodeValue(rec.Encoding, in.WeightKg, in.PriceARS)
	if err != nil {
		return "", err
	}
	sub := in.SubFamily
	if sub == 0 {
		sub = '0'
	}
	return scalecode.BuildPlu(sub, in.PLU, value)
}

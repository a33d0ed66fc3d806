package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/application/dto"
	"github.com/jhoicas/granel-api/internal/application/usecase"
	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCatalog() *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(memory.New(1).Repos())
}

func TestCreateVariant_DefaultsDeModos(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Yerba", StockKg: d("5"), CostARS: d("900"), PricePerKg: d("1500")})
	require.NoError(t, err)

	v, err := uc.CreateVariant(ctx, dto.CreateVariantRequest{ProductID: p.ID, Name: "Yerba 1 kg", ContentKg: d("1")})
	require.NoError(t, err)
	assert.Equal(t, "MIXED", v.ConsumeMode)
	assert.Equal(t, "PER_KG", v.PriceMode)
	assert.Empty(t, v.Barcode)
	assert.Nil(t, v.FakeScale)

	got, err := uc.GetVariant(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ProductID)
}

func TestCreateVariant_Errores(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Arroz", PricePerKg: d("1000")})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.CreateVariantRequest
		want error
	}{
		{"contenido cero", dto.CreateVariantRequest{ProductID: p.ID, Name: "x", ContentKg: d("0")}, domain.ErrInvalidInput},
		{"modo de consumo", dto.CreateVariantRequest{ProductID: p.ID, Name: "x", ContentKg: d("1"), ConsumeMode: "OTRO"}, domain.ErrInvalidInput},
		{"precio fijo sin valor", dto.CreateVariantRequest{ProductID: p.ID, Name: "x", ContentKg: d("1"), PriceMode: "FIXED"}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CreateVariantRequest{ProductID: "nada", Name: "x", ContentKg: d("1")}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateVariant(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGetProduct_InexistenteDevuelveNil(t *testing.T) {
	p, err := newCatalog().GetProduct(context.Background(), "nada")
	require.NoError(t, err)
	assert.Nil(t, p)
}

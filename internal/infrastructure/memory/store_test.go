package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/repository"
	"github.com/jhoicas/granel-api/internal/infrastructure/memory"
)

func TestRun_DeshaceCambiosSiFalla(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	p := &entity.BulkProduct{Name: "Arroz", Stock: decimal.NewFromInt(5)}
	require.NoError(t, s.Repos().Products.Create(ctx, p))

	boom := errors.New("falla")
	err := s.Run(ctx, func(repos repository.Repos) error {
		if _, err := repos.Sequences.ClaimRange(ctx, 10); err != nil {
			return err
		}
		if err := repos.Products.UpdateStock(ctx, p.ID, decimal.NewFromInt(1)); err != nil {
			return err
		}
		entry := entity.NewCostLedgerEntry(p.ID, entity.LedgerMerma, entity.RefPackaging, "ENV", decimal.NewFromInt(-4), decimal.Zero, p.UpdatedAt)
		if err := repos.Ledger.Create(ctx, entry); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(1), s.NextSequence())
	ledger, err := s.Repos().Ledger.ListByRef(ctx, entity.RefPackaging, "ENV")
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestVariants_CodigoUnicoEntreVariantes(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	repos := s.Repos()
	a := &entity.PackVariant{ProductID: "p", Name: "A", ContentKg: decimal.NewFromInt(1)}
	b := &entity.PackVariant{ProductID: "p", Name: "B", ContentKg: decimal.NewFromInt(1)}
	require.NoError(t, repos.Variants.Create(ctx, a))
	require.NoError(t, repos.Variants.Create(ctx, b))

	require.NoError(t, repos.Variants.SetBarcode(ctx, a.ID, "0400000000015"))
	assert.ErrorIs(t, repos.Variants.SetBarcode(ctx, b.ID, "0400000000015"), domain.ErrDuplicate)
	assert.ErrorIs(t, repos.Variants.SetFakeScale(ctx, b.ID, &entity.ScaleBarcode{Code: "0400000000015"}), domain.ErrDuplicate)

	found, err := repos.Variants.GetByCode(ctx, "0400000000015")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	// las lecturas devuelven copias
	found.Barcode = "otro"
	again, err := repos.Variants.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "0400000000015", again.Barcode)
}

func TestStock_NuncaNegativo(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	repos := s.Repos()
	p := &entity.BulkProduct{Name: "Arroz", Stock: decimal.NewFromInt(5)}
	require.NoError(t, repos.Products.Create(ctx, p))
	v := &entity.PackVariant{ProductID: p.ID, Name: "A", ContentKg: decimal.NewFromInt(1)}
	require.NoError(t, repos.Variants.Create(ctx, v))

	assert.ErrorIs(t, repos.Products.UpdateStock(ctx, p.ID, decimal.NewFromInt(-1)), domain.ErrInvalidInput)
	assert.ErrorIs(t, repos.Variants.UpdateStock(ctx, v.ID, -1, decimal.Zero), domain.ErrInvalidInput)
}

func TestBarcodes_UnSoloAsignadoPorVariante(t *testing.T) {
	s := memory.New(1)
	ctx := context.Background()
	repos := s.Repos()
	codes := []*entity.InternalBarcode{
		{EAN13: "0400000000015", Status: entity.BarcodeFree},
		{EAN13: "0400000000022", Status: entity.BarcodeFree},
	}
	require.NoError(t, repos.Barcodes.InsertBatch(ctx, codes))
	assert.Equal(t, int64(1), codes[0].Seq)
	assert.Equal(t, int64(2), codes[1].Seq)
	assert.ErrorIs(t, repos.Barcodes.InsertBatch(ctx, codes[:1]), domain.ErrDuplicate)

	codes[0].Status, codes[0].VariantID = entity.BarcodeAssigned, "v1"
	require.NoError(t, repos.Barcodes.Update(ctx, codes[0]))
	codes[1].Status, codes[1].VariantID = entity.BarcodeAssigned, "v1"
	assert.ErrorIs(t, repos.Barcodes.Update(ctx, codes[1]), domain.ErrDuplicate)
}

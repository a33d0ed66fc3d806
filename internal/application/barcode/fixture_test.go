package barcode_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/granel-api/internal/application/barcode"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/infrastructure/audit"
	"github.com/jhoicas/granel-api/internal/infrastructure/labels"
	"github.com/jhoicas/granel-api/internal/infrastructure/memory"
	"github.com/jhoicas/granel-api/pkg/config"
	"github.com/jhoicas/granel-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testConfig() config.BarcodeConfig {
	return config.BarcodeConfig{
		DefaultScheme:   config.SchemeWeightEmbedded,
		DefaultPrefix:   20,
		InternalPrefix:  "0400",
		PLUPriceDivisor: 1000,
	}
}

type fixture struct {
	store  *memory.Store
	labels *labels.Memory
	audit  *audit.Memory
	pool   *barcode.PoolUseCase
	scale  *barcode.ScaleUseCase
	plu    *barcode.PluUseCase
	scan   *barcode.ScanUseCase
}

func newFixture(t *testing.T, firstSeq int64, cfg config.BarcodeConfig) *fixture {
	t.Helper()
	store := memory.New(firstSeq)
	repos := store.Repos()
	f := &fixture{store: store, labels: &labels.Memory{}, audit: audit.NewMemory()}
	f.pool = barcode.NewPoolUseCase(store, repos, cfg, f.labels, f.audit, logger.Nop().Component("test"))
	f.scale = barcode.NewScaleUseCase(store, repos, cfg)
	f.plu = barcode.NewPluUseCase(repos, cfg)
	f.scan = barcode.NewScanUseCase(repos, f.plu)
	return f
}

// product crea un producto a granel con precio por kg.
func (f *fixture) product(t *testing.T, pricePerKg string) *entity.BulkProduct {
	t.Helper()
	p := &entity.BulkProduct{
		Name:       "Harina 000",
		Stock:      d("10"),
		CostARS:    d("800"),
		PricePerKg: d(pricePerKg),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), p))
	return p
}

// variant crea una variante de contentKg del producto dado.
func (f *fixture) variant(t *testing.T, productID, contentKg string) *entity.PackVariant {
	t.Helper()
	v := &entity.PackVariant{
		ProductID:   productID,
		Name:        "Harina 000",
		ContentKg:   d(contentKg),
		StockPacks:  2,
		ConsumeMode: entity.ConsumeMixed,
		PriceMode:   entity.PriceModePerKg,
	}
	require.NoError(t, f.store.Repos().Variants.Create(context.Background(), v))
	return v
}

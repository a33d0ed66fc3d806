package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/inventory"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

// PackagingUseCase arma packs a partir del granel.
type PackagingUseCase struct {
	txRunner TxRunner
	audit    AuditRecorder
	now      func() time.Time
}

// NewPackagingUseCase construye el caso de uso.
func NewPackagingUseCase(txRunner TxRunner, audit AuditRecorder) *PackagingUseCase {
	return &PackagingUseCase{txRunner: txRunner, audit: audit, now: time.Now}
}

// PackageInput datos de un envasado. WasteKg es la merma del proceso.
type PackageInput struct {
	Ref       string
	VariantID string
	Packs     int64
	WasteKg   decimal.Decimal
}

// PackageResult estado después del envasado.
type PackageResult struct {
	Ref            string
	StockPacks     int64
	AvgPackCostARS decimal.Decimal
	BulkStockKg    decimal.Decimal
	Entries        []*entity.CostLedgerEntry
}

// Package descuenta packs × contenido + merma del granel, suma los packs a la variante y
// actualiza su costo promedio por pack, todo en una transacción.
func (uc *PackagingUseCase) Package(ctx context.Context, in PackageInput) (*PackageResult, error) {
	if in.Ref == "" || in.VariantID == "" || in.Packs <= 0 || in.WasteKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	out := &PackageResult{Ref: in.Ref}

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		out.Entries = nil
		variant, err := repos.Variants.GetByIDForUpdate(ctx, in.VariantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrVariantNotFound
		}
		if !variant.ContentKg.IsPositive() {
			return fmt.Errorf("%w: la variante %s no tiene contenido en kg", domain.ErrInvalidInput, variant.ID)
		}
		product, err := repos.Products.GetByIDForUpdate(ctx, variant.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		packs := decimal.NewFromInt(in.Packs)
		packedKg := variant.ContentKg.Mul(packs)
		drawnKg := packedKg.Add(in.WasteKg)
		if product.Stock.LessThan(drawnKg) {
			return domain.ErrInsufficientBulkStock
		}

		out.BulkStockKg = product.Stock.Sub(drawnKg)
		if err := repos.Products.UpdateStock(ctx, product.ID, out.BulkStockKg); err != nil {
			return err
		}

		incomingPackCost := product.CostARS.Mul(variant.ContentKg)
		out.AvgPackCostARS = inventory.CostCalculator(
			decimal.NewFromInt(variant.StockPacks), variant.AvgPackCostARS, packs, incomingPackCost)
		out.StockPacks = variant.StockPacks + in.Packs
		if err := repos.Variants.UpdateStock(ctx, variant.ID, out.StockPacks, out.AvgPackCostARS); err != nil {
			return err
		}

		consume := entity.NewCostLedgerEntry(product.ID, entity.LedgerPackagingConsume, entity.RefPackaging, in.Ref, packedKg.Neg(), product.CostARS, now)
		consume.VariantID = variant.ID
		if err := repos.Ledger.Create(ctx, consume); err != nil {
			return err
		}
		out.Entries = append(out.Entries, consume)

		if in.WasteKg.IsPositive() {
			waste := entity.NewCostLedgerEntry(product.ID, entity.LedgerMerma, entity.RefPackaging, in.Ref, in.WasteKg.Neg(), product.CostARS, now)
			waste.VariantID = variant.ID
			if err := repos.Ledger.Create(ctx, waste); err != nil {
				return err
			}
			out.Entries = append(out.Entries, waste)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Record(ctx, entity.AuditRecord{
			Action:   entity.AuditPackaged,
			RefTable: entity.RefPackaging,
			RefID:    in.Ref,
			Fields: map[string]any{
				"variant_id":  in.VariantID,
				"packs":       in.Packs,
				"waste_kg":    in.WasteKg.String(),
				"stock_packs": out.StockPacks,
			},
			At: now,
		})
	}
	return out, nil
}

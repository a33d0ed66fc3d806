package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
	"github.com/jhoicas/granel-api/internal/domain/inventory"
	"github.com/jhoicas/granel-api/internal/domain/repository"
)

// ConsumptionUseCase resuelve y confirma ventas de packs contra el stock de packs y de granel.
// Los errores se informan tal cual; nada se reintenta para no duplicar asientos.
type ConsumptionUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	chain    []inventory.CostBasisStrategy
	audit    AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewConsumptionUseCase construye el caso de uso con la cadena de costo por defecto.
func NewConsumptionUseCase(txRunner TxRunner, repos repository.Repos, audit AuditRecorder, log zerolog.Logger) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		txRunner: txRunner,
		repos:    repos,
		chain:    inventory.DefaultCostBasisChain(),
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Resolve calcula el plan para vender qtyPacks packs de la variante. No modifica stock.
func (uc *ConsumptionUseCase) Resolve(ctx context.Context, variantID string, qtyPacks int64) (entity.ConsumptionPlan, error) {
	variant, err := uc.repos.Variants.GetByID(ctx, variantID)
	if err != nil {
		return entity.ConsumptionPlan{}, err
	}
	if variant == nil {
		return entity.ConsumptionPlan{}, domain.ErrVariantNotFound
	}
	product, err := uc.repos.Products.GetByID(ctx, variant.ProductID)
	if err != nil {
		return entity.ConsumptionPlan{}, err
	}
	plan, err := inventory.Resolve(variant, product, qtyPacks)
	if err != nil {
		return entity.ConsumptionPlan{}, err
	}
	uc.record(ctx, entity.AuditRecord{
		Action: entity.AuditPlanResolved,
		Fields: planFields(plan),
		At:     uc.now(),
	})
	return plan, nil
}

// CommitResult asientos generados al confirmar un plan.
type CommitResult struct {
	SaleRef  string
	Plan     entity.ConsumptionPlan
	Entries  []*entity.CostLedgerEntry
	Strategy string // estrategia de costo usada para los packs; vacío si no hubo packs
}

// Commit aplica el plan en una sola transacción: bloquea variante y producto, revalida el stock
// y descuenta packs y granel con sus asientos SALE_COGS. Si el stock cambió devuelve domain.ErrStalePlan.
func (uc *ConsumptionUseCase) Commit(ctx context.Context, saleRef string, plan entity.ConsumptionPlan) (*CommitResult, error) {
	if saleRef == "" {
		return nil, fmt.Errorf("%w: falta la referencia de venta", domain.ErrInvalidInput)
	}
	if err := inventory.ValidatePlan(plan); err != nil {
		return nil, err
	}
	now := uc.now()
	result := &CommitResult{SaleRef: saleRef, Plan: plan}
	var attempts []inventory.Attempt

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		result.Entries = nil
		variant, err := repos.Variants.GetByIDForUpdate(ctx, plan.VariantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrVariantNotFound
		}
		product, err := repos.Products.GetByIDForUpdate(ctx, plan.ProductID)
		if err != nil {
			return err
		}
		if product == nil || variant.ProductID != product.ID {
			return domain.ErrStalePlan
		}
		if err := inventory.CheckStillValid(plan, variant, product); err != nil {
			return err
		}

		if plan.PackUnits > 0 {
			var basis inventory.CostBasis
			basis, attempts = inventory.ResolveCostBasis(uc.chain, variant, product)
			result.Strategy = basis.Strategy
			if err := repos.Variants.UpdateStock(ctx, variant.ID, variant.StockPacks-plan.PackUnits, variant.AvgPackCostARS); err != nil {
				return err
			}
			qty := plan.ContentKg.Mul(decimal.NewFromInt(plan.PackUnits)).Neg()
			entry := entity.NewCostLedgerEntry(product.ID, entity.LedgerSaleCOGS, entity.RefSale, saleRef, qty, basis.UnitCostPerKg(plan.ContentKg), now)
			// el total sale del costo por pack; el unitario por kg redondeado es informativo
			entry.TotalCostARS = basis.PackCost.Mul(decimal.NewFromInt(plan.PackUnits)).Neg()
			entry.VariantID = variant.ID
			entry.Notes = "packs; costo " + basis.Strategy
			if err := repos.Ledger.Create(ctx, entry); err != nil {
				return err
			}
			result.Entries = append(result.Entries, entry)
		}

		if plan.BulkKg.IsPositive() {
			if err := repos.Products.UpdateStock(ctx, product.ID, product.Stock.Sub(plan.BulkKg)); err != nil {
				return err
			}
			entry := entity.NewCostLedgerEntry(product.ID, entity.LedgerSaleCOGS, entity.RefSale, saleRef, plan.BulkKg.Neg(), product.CostARS, now)
			entry.VariantID = variant.ID
			entry.Notes = "granel"
			if err := repos.Ledger.Create(ctx, entry); err != nil {
				return err
			}
			result.Entries = append(result.Entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(attempts) > 0 {
		uc.record(ctx, entity.AuditRecord{
			Action:   entity.AuditCostBasis,
			RefTable: entity.RefSale,
			RefID:    saleRef,
			Fields:   attemptFields(result.Strategy, attempts),
			At:       now,
		})
	}
	uc.record(ctx, entity.AuditRecord{
		Action:   entity.AuditPlanCommitted,
		RefTable: entity.RefSale,
		RefID:    saleRef,
		Fields:   planFields(plan),
		At:       now,
	})
	return result, nil
}

// Consume resuelve y confirma en un paso. No reintenta: un ErrStalePlan llega al caller.
func (uc *ConsumptionUseCase) Consume(ctx context.Context, saleRef, variantID string, qtyPacks int64) (*CommitResult, error) {
	plan, err := uc.Resolve(ctx, variantID, qtyPacks)
	if err != nil {
		return nil, err
	}
	return uc.Commit(ctx, saleRef, plan)
}

// ListLedger asientos de una venta o envasado.
func (uc *ConsumptionUseCase) ListLedger(ctx context.Context, refTable, refID string) ([]*entity.CostLedgerEntry, error) {
	if refTable != entity.RefSale && refTable != entity.RefPackaging {
		return nil, fmt.Errorf("%w: tabla de referencia %q", domain.ErrInvalidInput, refTable)
	}
	if refID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repos.Ledger.ListByRef(ctx, refTable, refID)
}

func (uc *ConsumptionUseCase) record(ctx context.Context, rec entity.AuditRecord) {
	if uc.audit != nil {
		uc.audit.Record(ctx, rec)
	}
}

func planFields(plan entity.ConsumptionPlan) map[string]any {
	return map[string]any{
		"variant_id": plan.VariantID,
		"product_id": plan.ProductID,
		"qty_packs":  plan.QtyPacks,
		"plan_kind":  string(plan.Kind),
		"pack_units": plan.PackUnits,
		"bulk_kg":    plan.BulkKg.String(),
	}
}

func attemptFields(chosen string, attempts []inventory.Attempt) map[string]any {
	tried := make([]string, 0, len(attempts))
	for _, a := range attempts {
		status := "sin datos"
		if a.OK {
			status = a.PackCost.String()
		}
		tried = append(tried, a.Strategy+"="+status)
	}
	return map[string]any{"strategy": chosen, "attempts": tried}
}

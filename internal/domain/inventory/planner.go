package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// Resolve decide de dónde sale una venta de qtyPacks packs según el modo de consumo de la variante.
// Función pura: no toca stock ni registra nada.
//
//	SOLO_PACK:   exige StockPacks >= qty.
//	SOLO_GRANEL: exige granel >= qty × contenido.
//	MIXED:       packs disponibles primero; el faltante (qty - packs) × contenido sale del granel.
func Resolve(variant *entity.PackVariant, product *entity.BulkProduct, qtyPacks int64) (entity.ConsumptionPlan, error) {
	if variant == nil {
		return entity.ConsumptionPlan{}, domain.ErrVariantNotFound
	}
	if product == nil {
		return entity.ConsumptionPlan{}, fmt.Errorf("%w: producto a granel %s", domain.ErrNotFound, variant.ProductID)
	}
	if qtyPacks <= 0 {
		return entity.ConsumptionPlan{}, fmt.Errorf("%w: cantidad de packs %d", domain.ErrInvalidInput, qtyPacks)
	}
	if !variant.ContentKg.IsPositive() {
		return entity.ConsumptionPlan{}, fmt.Errorf("%w: la variante %s no tiene contenido en kg", domain.ErrInvalidInput, variant.ID)
	}

	plan := entity.ConsumptionPlan{
		VariantID: variant.ID,
		ProductID: product.ID,
		QtyPacks:  qtyPacks,
		ContentKg: variant.ContentKg,
	}
	neededKg := plan.NeededKg()
	stockPacks := variant.StockPacks
	if stockPacks < 0 {
		stockPacks = 0
	}

	switch variant.ConsumeMode.OrDefault() {
	case entity.ConsumeSoloPack:
		if stockPacks < qtyPacks {
			return entity.ConsumptionPlan{}, domain.ErrInsufficientPackStock
		}
		plan.Kind, plan.PackUnits, plan.BulkKg = entity.PlanPackOnly, qtyPacks, decimal.Zero
	case entity.ConsumeSoloGranel:
		if product.Stock.LessThan(neededKg) {
			return entity.ConsumptionPlan{}, domain.ErrInsufficientBulkStock
		}
		plan.Kind, plan.PackUnits, plan.BulkKg = entity.PlanBulkOnly, 0, neededKg
	default:
		if stockPacks >= qtyPacks {
			plan.Kind, plan.PackUnits, plan.BulkKg = entity.PlanPackOnly, qtyPacks, decimal.Zero
			break
		}
		shortfallKg := variant.ContentKg.Mul(decimal.NewFromInt(qtyPacks - stockPacks))
		if product.Stock.LessThan(shortfallKg) {
			return entity.ConsumptionPlan{}, domain.ErrInsufficientStock
		}
		plan.Kind, plan.PackUnits, plan.BulkKg = entity.PlanMixed, stockPacks, shortfallKg
	}
	return plan, nil
}

// CheckStillValid verifica al confirmar que el plan es el que saldría hoy con el stock bloqueado.
// Un plan que el modo de consumo no admite es ErrInvalidInput; uno que ya no coincide es ErrStalePlan.
func CheckStillValid(plan entity.ConsumptionPlan, variant *entity.PackVariant, product *entity.BulkProduct) error {
	if variant.ID != plan.VariantID || product.ID != plan.ProductID || !variant.ContentKg.Equal(plan.ContentKg) {
		return domain.ErrStalePlan
	}
	mode := variant.ConsumeMode.OrDefault()
	if !KindAllowed(mode, plan.Kind) {
		return fmt.Errorf("%w: plan %s no admitido en modo %s", domain.ErrInvalidInput, plan.Kind, mode)
	}
	if plan.PackUnits > variant.StockPacks || plan.BulkKg.GreaterThan(product.Stock) {
		return domain.ErrStalePlan
	}
	fresh, err := Resolve(variant, product, plan.QtyPacks)
	if err != nil {
		return domain.ErrStalePlan
	}
	if fresh.Kind != plan.Kind || fresh.PackUnits != plan.PackUnits || !fresh.BulkKg.Equal(plan.BulkKg) {
		return domain.ErrStalePlan
	}
	return nil
}

// KindAllowed indica si el modo de consumo admite un plan de ese tipo.
func KindAllowed(mode entity.ConsumeMode, kind entity.PlanKind) bool {
	switch mode.OrDefault() {
	case entity.ConsumeSoloPack:
		return kind == entity.PlanPackOnly
	case entity.ConsumeSoloGranel:
		return kind == entity.PlanBulkOnly
	default:
		return kind == entity.PlanPackOnly || kind == entity.PlanMixed
	}
}

// ValidatePlan verifica la coherencia interna de un plan recibido de afuera.
func ValidatePlan(plan entity.ConsumptionPlan) error {
	if plan.VariantID == "" || plan.ProductID == "" || plan.QtyPacks <= 0 || !plan.ContentKg.IsPositive() {
		return domain.ErrInvalidInput
	}
	if plan.PackUnits < 0 || plan.PackUnits > plan.QtyPacks || plan.BulkKg.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !plan.PhysicalKg().Equal(plan.NeededKg()) {
		return fmt.Errorf("%w: el plan no cubre %s kg", domain.ErrInvalidInput, plan.NeededKg())
	}
	switch plan.Kind {
	case entity.PlanPackOnly:
		if plan.PackUnits != plan.QtyPacks {
			return domain.ErrInvalidInput
		}
	case entity.PlanBulkOnly:
		if plan.PackUnits != 0 {
			return domain.ErrInvalidInput
		}
	case entity.PlanMixed:
	default:
		return fmt.Errorf("%w: tipo de plan %q", domain.ErrInvalidInput, plan.Kind)
	}
	return nil
}

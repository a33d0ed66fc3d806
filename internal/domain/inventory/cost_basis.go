package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// costScale decimales del costo unitario en los asientos.
const costScale = 6

// CostBasis resultado de una estrategia de costo por pack.
type CostBasis struct {
	Strategy string
	PackCost decimal.Decimal // ARS por pack
}

// UnitCostPerKg costo por kg derivado del costo por pack.
func (b CostBasis) UnitCostPerKg(contentKg decimal.Decimal) decimal.Decimal {
	if !contentKg.IsPositive() {
		return decimal.Zero
	}
	return b.PackCost.Div(contentKg).Round(costScale)
}

// CostBasisStrategy calcula el costo de un pack; ok=false si no tiene datos para hacerlo.
type CostBasisStrategy interface {
	Name() string
	PackCost(variant *entity.PackVariant, product *entity.BulkProduct) (decimal.Decimal, bool)
}

// AveragePackCost costo promedio ponderado registrado en la variante por los envasados.
type AveragePackCost struct{}

func (AveragePackCost) Name() string { return "AVERAGE_PACK_COST" }

func (AveragePackCost) PackCost(variant *entity.PackVariant, _ *entity.BulkProduct) (decimal.Decimal, bool) {
	if variant == nil || !variant.AvgPackCostARS.IsPositive() {
		return decimal.Zero, false
	}
	return variant.AvgPackCostARS, true
}

// PricePerKgContent precio por kg del granel × contenido del pack.
type PricePerKgContent struct{}

func (PricePerKgContent) Name() string { return "PRICE_PER_KG_X_CONTENT" }

func (PricePerKgContent) PackCost(variant *entity.PackVariant, product *entity.BulkProduct) (decimal.Decimal, bool) {
	if variant == nil || product == nil || !product.PricePerKg.IsPositive() {
		return decimal.Zero, false
	}
	return product.PricePerKg.Mul(variant.ContentKg), true
}

// DefaultCostBasisChain orden en que se prueban las estrategias para packs vendidos.
func DefaultCostBasisChain() []CostBasisStrategy {
	return []CostBasisStrategy{AveragePackCost{}, PricePerKgContent{}}
}

// Attempt resultado de probar una estrategia, para auditoría.
type Attempt struct {
	Strategy string
	OK       bool
	PackCost decimal.Decimal
}

// ResolveCostBasis prueba las estrategias en orden y devuelve la primera que aplica junto con
// todos los intentos. Sin estrategia aplicable el costo es cero con estrategia "NONE".
func ResolveCostBasis(chain []CostBasisStrategy, variant *entity.PackVariant, product *entity.BulkProduct) (CostBasis, []Attempt) {
	attempts := make([]Attempt, 0, len(chain))
	for _, s := range chain {
		cost, ok := s.PackCost(variant, product)
		attempts = append(attempts, Attempt{Strategy: s.Name(), OK: ok, PackCost: cost})
		if ok {
			return CostBasis{Strategy: s.Name(), PackCost: cost}, attempts
		}
	}
	return CostBasis{Strategy: "NONE", PackCost: decimal.Zero}, attempts
}

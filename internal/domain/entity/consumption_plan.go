package entity

import "github.com/shopspring/decimal"

// PlanKind origen del stock en un plan de consumo.
type PlanKind string

// Tipos de plan.
const (
	PlanPackOnly PlanKind = "PACK_ONLY"
	PlanBulkOnly PlanKind = "BULK_ONLY"
	PlanMixed    PlanKind = "MIXED"
)

// ConsumptionPlan resultado de resolver una venta de N packs: cuántos packs armados
// se descuentan y cuántos kg salen del granel.
type ConsumptionPlan struct {
	VariantID string
	ProductID string
	QtyPacks  int64
	ContentKg decimal.Decimal
	Kind      PlanKind
	PackUnits int64
	BulkKg    decimal.Decimal
}

// NeededKg kg totales que representa la venta.
func (p ConsumptionPlan) NeededKg() decimal.Decimal {
	return p.ContentKg.Mul(decimal.NewFromInt(p.QtyPacks))
}

// PhysicalKg kg que efectivamente salen del stock (packs + granel).
func (p ConsumptionPlan) PhysicalKg() decimal.Decimal {
	return p.ContentKg.Mul(decimal.NewFromInt(p.PackUnits)).Add(p.BulkKg)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro de costos.
const (
	LedgerPackagingConsume = "PACKAGING_CONSUME" // granel consumido al envasar
	LedgerMerma            = "MERMA"             // pérdida en el envasado
	LedgerSaleCOGS         = "SALE_COGS"         // costo de mercadería vendida
)

// Tablas de referencia de los asientos.
const (
	RefSale      = "sales"
	RefPackaging = "packaging_runs"
)

// CostLedgerEntry asiento del libro de costos. Solo se agregan, nunca se modifican.
// Qty negativo es salida; TotalCostARS = Qty × UnitCostARS.
type CostLedgerEntry struct {
	ID           string
	ProductID    string
	VariantID    string
	Type         string
	RefTable     string
	RefID        string
	Qty          decimal.Decimal // kg
	UnitCostARS  decimal.Decimal // por kg
	TotalCostARS decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}

// NewCostLedgerEntry arma un asiento calculando el total a partir de cantidad y costo unitario.
func NewCostLedgerEntry(productID, entryType, refTable, refID string, qty, unitCost decimal.Decimal, now time.Time) *CostLedgerEntry {
	return &CostLedgerEntry{
		ProductID:    productID,
		Type:         entryType,
		RefTable:     refTable,
		RefID:        refID,
		Qty:          qty,
		UnitCostARS:  unitCost,
		TotalCostARS: qty.Mul(unitCost),
		CreatedAt:    now,
	}
}

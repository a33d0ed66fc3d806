package entity

import "time"

// Acciones registradas en la auditoría.
const (
	AuditBarcodesAllocated = "BARCODES_ALLOCATED"
	AuditBarcodeAssigned   = "BARCODE_ASSIGNED"
	AuditBarcodeReleased   = "BARCODE_RELEASED"
	AuditPlanResolved      = "PLAN_RESOLVED"
	AuditPlanCommitted     = "PLAN_COMMITTED"
	AuditCostBasis         = "COST_BASIS"
	AuditPackaged          = "PACKAGED"
)

// AuditRecord registro informativo; no es fuente de verdad del stock.
type AuditRecord struct {
	Action   string
	RefTable string
	RefID    string
	Fields   map[string]any
	At       time.Time
}

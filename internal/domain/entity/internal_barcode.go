package entity

import "time"

// BarcodeStatus estado de un código interno del pool.
type BarcodeStatus string

// Estados del ciclo de vida: FREE -> ASSIGNED -> FREE | RETIRED. RETIRED es terminal.
const (
	BarcodeFree     BarcodeStatus = "FREE"
	BarcodeAssigned BarcodeStatus = "ASSIGNED"
	BarcodeRetired  BarcodeStatus = "RETIRED"
)

// IsValid indica si el estado es conocido.
func (s BarcodeStatus) IsValid() bool {
	switch s {
	case BarcodeFree, BarcodeAssigned, BarcodeRetired:
		return true
	}
	return false
}

// InternalBarcode código EAN-13 de uso interno del local.
// VariantID está presente si y solo si Status es ASSIGNED.
type InternalBarcode struct {
	EAN13      string
	Seq        int64 // orden de inserción (FIFO)
	Status     BarcodeStatus
	VariantID  string
	Notes      string
	CreatedAt  time.Time
	AssignedAt *time.Time
}

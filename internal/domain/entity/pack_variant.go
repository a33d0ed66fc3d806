package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumeMode política de consumo de una variante al venderla.
type ConsumeMode string

// Modos de consumo.
const (
	ConsumeSoloPack   ConsumeMode = "SOLO_PACK"   // solo packs armados
	ConsumeSoloGranel ConsumeMode = "SOLO_GRANEL" // siempre desde el granel
	ConsumeMixed      ConsumeMode = "MIXED"       // packs primero, faltante desde granel
)

// IsValid indica si el modo es conocido.
func (m ConsumeMode) IsValid() bool {
	switch m {
	case ConsumeSoloPack, ConsumeSoloGranel, ConsumeMixed:
		return true
	}
	return false
}

// OrDefault devuelve MIXED cuando el modo está vacío o es desconocido.
func (m ConsumeMode) OrDefault() ConsumeMode {
	if m.IsValid() {
		return m
	}
	return ConsumeMixed
}

// PriceMode cómo se calcula el precio de venta del pack.
type PriceMode string

// Modos de precio.
const (
	PriceModePerKg PriceMode = "PER_KG" // precio por kg del granel × contenido
	PriceModeFixed PriceMode = "FIXED"  // precio fijo del pack
)

// PackVariant es una presentación envasada de un producto a granel (ej. "bolsa 500 g de harina").
// StockPacks son unidades ya armadas; el resto del stock vive en el granel (BulkProduct.Stock).
type PackVariant struct {
	ID             string
	ProductID      string // producto a granel padre
	Name           string
	ContentKg      decimal.Decimal // kg por pack
	Barcode        string          // EAN-13 interno asignado; vacío si no tiene
	FakeScale      *ScaleBarcode   // código de balanza autodescriptivo; nil si no tiene
	StockPacks     int64
	ConsumeMode    ConsumeMode
	PriceMode      PriceMode
	FixedPrice     *decimal.Decimal
	AvgPackCostARS decimal.Decimal // costo promedio ponderado por pack; cero si nunca se envasó
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasAnyBarcode indica si la variante ya lleva un código interno o de balanza.
func (v *PackVariant) HasAnyBarcode() bool {
	return v.Barcode != "" || (v.FakeScale != nil && v.FakeScale.Code != "")
}

// UnitPrice precio de venta de un pack según su modo de precio.
// Devuelve false si no se puede determinar.
func (v *PackVariant) UnitPrice(product *BulkProduct) (decimal.Decimal, bool) {
	if v.PriceMode == PriceModeFixed && v.FixedPrice != nil {
		return *v.FixedPrice, true
	}
	if product != nil && product.PricePerKg.GreaterThan(decimal.Zero) && v.ContentKg.GreaterThan(decimal.Zero) {
		return product.PricePerKg.Mul(v.ContentKg), true
	}
	return decimal.Zero, false
}

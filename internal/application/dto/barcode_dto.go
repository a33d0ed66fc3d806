package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocateBarcodesRequest body para POST /api/barcodes/batch.
type AllocateBarcodesRequest struct {
	Count int    `json:"count"`
	Notes string `json:"notes,omitempty"`
}

// AssignBarcodeRequest body para POST /api/barcodes/assign.
type AssignBarcodeRequest struct {
	VariantID string `json:"variant_id"`
}

// ReleaseBarcodeRequest body para POST /api/barcodes/{ean13}/release.
type ReleaseBarcodeRequest struct {
	Retire bool `json:"retire"`
}

// BarcodeResponse código del pool.
type BarcodeResponse struct {
	EAN13      string     `json:"ean13"`
	Seq        int64      `json:"seq"`
	Status     string     `json:"status"`
	VariantID  string     `json:"variant_id,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
}

// BarcodeListResponse listado paginado del pool.
type BarcodeListResponse struct {
	Items []BarcodeResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// GenerateScaleBarcodeRequest body para POST /api/variants/{id}/scale-barcode.
// Campos vacíos toman los defaults de configuración.
type GenerateScaleBarcodeRequest struct {
	Scheme string `json:"scheme,omitempty"`
	Prefix *int   `json:"prefix,omitempty"`
}

// ScaleBarcodeResponse código de balanza con su esquema.
type ScaleBarcodeResponse struct {
	Code   string `json:"code"`
	Scheme string `json:"scheme"`
	Prefix int    `json:"prefix"`
}

// DecodedScaleResponse lectura de un código de balanza.
type DecodedScaleResponse struct {
	Code     string           `json:"code"`
	Scheme   string           `json:"scheme"`
	Prefix   int              `json:"prefix"`
	Value    int64            `json:"value"`
	WeightKg *decimal.Decimal `json:"weight_kg,omitempty"`
	PriceARS *decimal.Decimal `json:"price_ars,omitempty"`
}

// CreatePluRequest body para POST /api/plu.
type CreatePluRequest struct {
	PLU       string `json:"plu"`
	ProductID string `json:"product_id"`
	Encoding  string `json:"encoding"`
}

// PluResponse registro PLU.
type PluResponse struct {
	PLU       string    `json:"plu"`
	ProductID string    `json:"product_id"`
	Encoding  string    `json:"encoding"`
	CreatedAt time.Time `json:"created_at"`
}

// EncodePluRequest body para POST /api/plu/encode.
type EncodePluRequest struct {
	PLU       string           `json:"plu"`
	SubFamily string           `json:"sub_family,omitempty"`
	WeightKg  *decimal.Decimal `json:"weight_kg,omitempty"`
	PriceARS  *decimal.Decimal `json:"price_ars,omitempty"`
}

// PluParseResponse resultado de interpretar un código PLU.
type PluParseResponse struct {
	Status    string           `json:"status"`
	PLU       string           `json:"plu,omitempty"`
	Value     int64            `json:"value,omitempty"`
	ProductID string           `json:"product_id,omitempty"`
	Encoding  string           `json:"encoding,omitempty"`
	WeightKg  *decimal.Decimal `json:"weight_kg,omitempty"`
	PriceARS  *decimal.Decimal `json:"price_ars,omitempty"`
}

// ScanResponse código escaneado en caja.
type ScanResponse struct {
	Kind      string                `json:"kind"`
	Code      string                `json:"code"`
	Variant   *VariantResponse      `json:"variant,omitempty"`
	ProductID string                `json:"product_id,omitempty"`
	UnitPrice *decimal.Decimal      `json:"unit_price,omitempty"`
	Scale     *DecodedScaleResponse `json:"scale,omitempty"`
	Plu       *PluParseResponse     `json:"plu,omitempty"`
}

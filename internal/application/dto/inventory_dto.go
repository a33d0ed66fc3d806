package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	StockKg    decimal.Decimal `json:"stock_kg"`
	CostARS    decimal.Decimal `json:"cost_ars"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// ProductResponse producto a granel.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	StockKg    decimal.Decimal `json:"stock_kg"`
	CostARS    decimal.Decimal `json:"cost_ars"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// CreateVariantRequest body para POST /api/variants.
type CreateVariantRequest struct {
	ProductID   string           `json:"product_id"`
	Name        string           `json:"name"`
	ContentKg   decimal.Decimal  `json:"content_kg"`
	StockPacks  int64            `json:"stock_packs"`
	ConsumeMode string           `json:"consume_mode,omitempty"`
	PriceMode   string           `json:"price_mode,omitempty"`
	FixedPrice  *decimal.Decimal `json:"fixed_price,omitempty"`
}

// VariantResponse variante envasada.
type VariantResponse struct {
	ID             string                `json:"id"`
	ProductID      string                `json:"product_id"`
	Name           string                `json:"name"`
	ContentKg      decimal.Decimal       `json:"content_kg"`
	Barcode        string                `json:"barcode,omitempty"`
	FakeScale      *ScaleBarcodeResponse `json:"fake_scale_barcode,omitempty"`
	StockPacks     int64                 `json:"stock_packs"`
	ConsumeMode    string                `json:"consume_mode"`
	PriceMode      string                `json:"price_mode"`
	FixedPrice     *decimal.Decimal      `json:"fixed_price,omitempty"`
	AvgPackCostARS decimal.Decimal       `json:"avg_pack_cost_ars"`
}

// ResolvePlanRequest body para POST /api/inventory/plans.
type ResolvePlanRequest struct {
	VariantID string `json:"variant_id"`
	QtyPacks  int64  `json:"qty_packs"`
}

// PlanDTO plan de consumo; viaja de ida y vuelta entre resolve y commit.
type PlanDTO struct {
	VariantID string          `json:"variant_id"`
	ProductID string          `json:"product_id"`
	QtyPacks  int64           `json:"qty_packs"`
	ContentKg decimal.Decimal `json:"content_kg"`
	Kind      string          `json:"kind"`
	PackUnits int64           `json:"pack_units"`
	BulkKg    decimal.Decimal `json:"bulk_kg"`
}

// CommitPlanRequest body para POST /api/inventory/commit.
type CommitPlanRequest struct {
	SaleRef string  `json:"sale_ref"`
	Plan    PlanDTO `json:"plan"`
}

// ConsumeRequest body para POST /api/inventory/consume.
type ConsumeRequest struct {
	SaleRef   string `json:"sale_ref"`
	VariantID string `json:"variant_id"`
	QtyPacks  int64  `json:"qty_packs"`
}

// LedgerEntryResponse asiento del libro de costos.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id,omitempty"`
	Type         string          `json:"type"`
	RefTable     string          `json:"ref_table"`
	RefID        string          `json:"ref_id"`
	Qty          decimal.Decimal `json:"qty"`
	UnitCostARS  decimal.Decimal `json:"unit_cost_ars"`
	TotalCostARS decimal.Decimal `json:"total_cost_ars"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CommitResponse resultado de confirmar un plan.
type CommitResponse struct {
	SaleRef  string                `json:"sale_ref"`
	Plan     PlanDTO               `json:"plan"`
	Strategy string                `json:"cost_strategy,omitempty"`
	Entries  []LedgerEntryResponse `json:"entries"`
}

// PackagingRequest body para POST /api/inventory/packaging.
type PackagingRequest struct {
	Ref       string          `json:"ref"`
	VariantID string          `json:"variant_id"`
	Packs     int64           `json:"packs"`
	WasteKg   decimal.Decimal `json:"waste_kg"`
}

// PackagingResponse resultado del envasado.
type PackagingResponse struct {
	Ref            string                `json:"ref"`
	StockPacks     int64                 `json:"stock_packs"`
	AvgPackCostARS decimal.Decimal       `json:"avg_pack_cost_ars"`
	BulkStockKg    decimal.Decimal       `json:"bulk_stock_kg"`
	Entries        []LedgerEntryResponse `json:"entries"`
}

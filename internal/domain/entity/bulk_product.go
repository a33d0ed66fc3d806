package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkProduct producto a granel. Stock en kg; CostARS es costo por kg.
type BulkProduct struct {
	ID         string
	Name       string
	Stock      decimal.Decimal // kg, nunca negativo
	CostARS    decimal.Decimal // costo unitario por kg
	PricePerKg decimal.Decimal // precio de venta por kg
	UpdatedAt  time.Time
}

package entity

import "github.com/shopspring/decimal"

// LabelJob pedido de impresión de etiqueta para el subsistema de etiquetas.
// ContentKg es opcional; si viene se agrega al texto de la etiqueta.
type LabelJob struct {
	Description string
	EAN13       string
	Copies      int
	ContentKg   *decimal.Decimal
}

package entity

import "time"

// PluRecord relaciona una clave PLU de 5 dígitos con el producto y el esquema de la balanza.
type PluRecord struct {
	PLU       string
	ProductID string
	Encoding  ScaleScheme
	CreatedAt time.Time
}

package entity

// ScaleScheme indica qué dato lleva embebido un código de balanza.
type ScaleScheme string

// Esquemas de código de balanza.
const (
	SchemeWeightEmbedded ScaleScheme = "WEIGHT_EMBEDDED" // gramos en los dígitos 7..11
	SchemePriceEmbedded  ScaleScheme = "PRICE_EMBEDDED"  // importe en los dígitos 7..11
)

// IsValid indica si el esquema es conocido.
func (s ScaleScheme) IsValid() bool {
	return s == SchemeWeightEmbedded || s == SchemePriceEmbedded
}

// String devuelve el nombre del esquema.
func (s ScaleScheme) String() string {
	return string(s)
}

// ScaleBarcode es el código de balanza "fake" de una variante junto con el esquema y prefijo
// con que se generó. El código solo no distingue peso de precio: el esquema viaja siempre con él.
type ScaleBarcode struct {
	Code   string
	Scheme ScaleScheme
	Prefix int
}

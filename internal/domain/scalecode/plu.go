package scalecode

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/ean13"
	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// PLULength cantidad de dígitos de la clave PLU.
const PLULength = 5

// PluFields campos de un código PLU indirecto.
type PluFields struct {
	SubFamily byte
	PLU       string
	Value     int64
}

// SplitPlu separa un código de la familia 2 en PLU y valor. ok=false si no es código de balanza
// o si el dígito verificador no cierra; no es un error, el código puede ser de otro tipo o una mala lectura.
func SplitPlu(code string) (PluFields, bool) {
	if !IsScaleFamily(code) || !ean13.IsValid(code) {
		return PluFields{}, false
	}
	value, _ := strconv.ParseInt(code[7:12], 10, 64)
	return PluFields{SubFamily: code[1], PLU: code[2:7], Value: value}, true
}

// ValidPLU indica si plu tiene exactamente 5 dígitos.
func ValidPLU(plu string) bool {
	return len(plu) == PLULength && ean13.AllDigits(plu)
}

// BuildPlu arma un código PLU indirecto de 13 dígitos.
func BuildPlu(subFamily byte, plu string, value int64) (string, error) {
	if subFamily < '0' || subFamily > '9' {
		return "", fmt.Errorf("%w: subfamilia %q", domain.ErrInvalidInput, subFamily)
	}
	if !ValidPLU(plu) {
		return "", fmt.Errorf("%w: PLU %q", domain.ErrInvalidInput, plu)
	}
	if value > maxValue {
		return "", fmt.Errorf("%w: valor %d no entra en %d dígitos", domain.ErrInvalidInput, value, valueWidth)
	}
	digits, err := ean13.ZeroPad(value, valueWidth)
	if err != nil {
		return "", err
	}
	return ean13.ToEAN13("2" + string(subFamily) + plu + digits)
}

// EncodeValue valor de 5 dígitos de un código PLU con las mismas reglas que el autodescriptivo:
// gramos para peso, centavos para precio.
func EncodeValue(scheme entity.ScaleScheme, weightKg, priceARS *decimal.Decimal) (int64, error) {
	return embeddedValue(Request{Scheme: scheme, ContentKg: weightKg, PriceARS: priceARS})
}

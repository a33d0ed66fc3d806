// Package scalecode arma y lee códigos de balanza EAN-13 de uso interno (prefijos GS1 20..29).
//
// Autodescriptivo: prefijo(2) + "00000"(5) + valor(5) + dígito.
// PLU indirecto:   "2" + subfamilia(1) + PLU(5) + valor(5) + dígito.
package scalecode

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/granel-api/internal/domain"
	"github.com/jhoicas/granel-api/internal/domain/ean13"
	"github.com/jhoicas/granel-api/internal/domain/entity"
)

// Rango GS1 de prefijos de uso interno.
const (
	MinPrefix = 20
	MaxPrefix = 29
)

const (
	fillerZone = "00000"
	valueWidth = 5
	maxValue   = 99999
)

var (
	gramsPerKg    = decimal.NewFromInt(1000)
	centsPerPeso  = decimal.NewFromInt(100)
	maxValueAsDec = decimal.NewFromInt(maxValue)
)

// Request datos para armar un código autodescriptivo.
// Para WEIGHT_EMBEDDED se usa ContentKg. Para PRICE_EMBEDDED se usa PriceARS o, si falta,
// UnitPrice × ContentKg.
type Request struct {
	Prefix    int
	Scheme    entity.ScaleScheme
	ContentKg *decimal.Decimal
	PriceARS  *decimal.Decimal
	UnitPrice *decimal.Decimal
}

// BuildBase12 arma los 12 dígitos sin verificador.
func BuildBase12(req Request) (string, error) {
	if req.Prefix < MinPrefix || req.Prefix > MaxPrefix {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidPrefix, req.Prefix)
	}
	value, err := embeddedValue(req)
	if err != nil {
		return "", err
	}
	digits, err := ean13.ZeroPad(value, valueWidth)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(req.Prefix) + fillerZone + digits, nil
}

// Build arma el código completo de 13 dígitos.
func Build(req Request) (string, error) {
	base, err := BuildBase12(req)
	if err != nil {
		return "", err
	}
	return ean13.ToEAN13(base)
}

func embeddedValue(req Request) (int64, error) {
	var raw decimal.Decimal
	switch req.Scheme {
	case entity.SchemeWeightEmbedded:
		if req.ContentKg == nil {
			return 0, fmt.Errorf("%w: contentKg", domain.ErrMissingField)
		}
		raw = req.ContentKg.Mul(gramsPerKg)
	case entity.SchemePriceEmbedded:
		switch {
		case req.PriceARS != nil:
			raw = req.PriceARS.Mul(centsPerPeso)
		case req.UnitPrice != nil && req.ContentKg != nil:
			raw = req.UnitPrice.Mul(*req.ContentKg).Mul(centsPerPeso)
		default:
			return 0, fmt.Errorf("%w: price o unitPrice+contentKg", domain.ErrMissingField)
		}
	default:
		return 0, fmt.Errorf("%w: esquema %q", domain.ErrInvalidInput, req.Scheme)
	}
	raw = raw.Round(0)
	if raw.IsNegative() || raw.GreaterThan(maxValueAsDec) {
		return 0, fmt.Errorf("%w: valor %s no entra en %d dígitos", domain.ErrInvalidInput, raw, valueWidth)
	}
	return raw.IntPart(), nil
}

// IsScaleFamily indica si code tiene la forma ^2[0-9]{12}$.
func IsScaleFamily(code string) bool {
	return len(code) == ean13.Length && code[0] == '2' && ean13.AllDigits(code)
}

// Decoded valor leído de un código autodescriptivo, interpretado según el esquema guardado.
type Decoded struct {
	Code     string
	Prefix   int
	Scheme   entity.ScaleScheme
	Value    int64
	WeightKg decimal.Decimal // solo WEIGHT_EMBEDDED
	PriceARS decimal.Decimal // solo PRICE_EMBEDDED
}

// Decode lee un código autodescriptivo. El esquema no se deduce de los dígitos:
// lo aporta quien guarda el código junto a él.
func Decode(code string, scheme entity.ScaleScheme) (*Decoded, error) {
	if !IsScaleFamily(code) {
		return nil, fmt.Errorf("%w: %q no es un código de balanza", domain.ErrMalformed, code)
	}
	if err := ean13.Validate(code); err != nil {
		return nil, err
	}
	if !scheme.IsValid() {
		return nil, fmt.Errorf("%w: esquema %q", domain.ErrInvalidInput, scheme)
	}
	prefix, _ := strconv.Atoi(code[0:2])
	value, _ := strconv.ParseInt(code[7:12], 10, 64)
	out := &Decoded{Code: code, Prefix: prefix, Scheme: scheme, Value: value}
	if scheme == entity.SchemeWeightEmbedded {
		out.WeightKg = decimal.NewFromInt(value).Div(gramsPerKg)
	} else {
		out.PriceARS = decimal.NewFromInt(value).Div(centsPerPeso)
	}
	return out, nil
}

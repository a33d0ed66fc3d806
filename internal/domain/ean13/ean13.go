// Package ean13: dígito verificador EAN-13.
// Pesos 1 y 3 alternados sobre los 12 primeros dígitos (posición par ×1, impar ×3);
// dígito = (10 - suma mod 10) mod 10.
package ean13

import (
	"fmt"

	"github.com/jhoicas/granel-api/internal/domain"
)

// Longitudes del código.
const (
	BaseLength = 12
	Length     = 13
)

// ComputeCheckDigit calcula el dígito verificador de una base de 12 dígitos ASCII.
func ComputeCheckDigit(base12 string) (byte, error) {
	if len(base12) != BaseLength || !allDigits(base12) {
		return 0, fmt.Errorf("%w: la base debe tener %d dígitos, se recibió %q", domain.ErrMalformed, BaseLength, base12)
	}
	var sum int
	for i := 0; i < BaseLength; i++ {
		d := int(base12[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10), nil
}

// ToEAN13 agrega el dígito verificador a la base de 12 dígitos.
func ToEAN13(base12 string) (string, error) {
	check, err := ComputeCheckDigit(base12)
	if err != nil {
		return "", err
	}
	return base12 + string(check), nil
}

// Validate exige exactamente 13 dígitos ASCII y dígito verificador correcto.
func Validate(code string) error {
	if len(code) != Length || !allDigits(code) {
		return fmt.Errorf("%w: se esperaban %d dígitos, se recibió %q", domain.ErrMalformed, Length, code)
	}
	expected, _ := ComputeCheckDigit(code[:BaseLength])
	if code[BaseLength] != expected {
		return fmt.Errorf("%w: dígito verificador esperado %c, recibido %c", domain.ErrMalformed, expected, code[BaseLength])
	}
	return nil
}

// IsValid versión booleana de Validate.
func IsValid(code string) bool {
	return Validate(code) == nil
}

// ZeroPad completa n con ceros a la izquierda hasta width dígitos.
// Devuelve error si n es negativo o no entra en width dígitos.
func ZeroPad(n int64, width int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: valor negativo %d", domain.ErrInvalidInput, n)
	}
	s := fmt.Sprintf("%0*d", width, n)
	if len(s) > width {
		return "", fmt.Errorf("%w: %d no entra en %d dígitos", domain.ErrInvalidInput, n, width)
	}
	return s, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// AllDigits indica si s no vacío contiene solo dígitos ASCII.
func AllDigits(s string) bool {
	return s != "" && allDigits(s)
}

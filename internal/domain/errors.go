package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Códigos de balanza y EAN-13.
var (
	ErrInvalidPrefix = errors.New("prefijo de balanza fuera de rango [20,29]")
	ErrMissingField  = errors.New("falta peso o precio para el esquema elegido")
	ErrMalformed     = errors.New("código EAN-13 mal formado")
)

// Pool de códigos internos.
var (
	ErrVariantNotFound   = errors.New("variante no encontrada")
	ErrAlreadyHasBarcode = errors.New("la variante ya tiene código de barras")
	ErrPoolExhausted     = errors.New("sin códigos libres")
	ErrSequenceExhausted = errors.New("secuencia de códigos internos agotada")
)

// Planificador de consumo pack/granel.
var (
	ErrInsufficientPackStock = errors.New("stock de packs insuficiente")
	ErrInsufficientBulkStock = errors.New("stock a granel insuficiente")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrStalePlan             = errors.New("el stock cambió desde que se calculó el plan")
)

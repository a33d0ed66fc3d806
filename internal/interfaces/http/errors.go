package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/granel-api/internal/application/dto"
	"github.com/jhoicas/granel-api/internal/domain"
)

// errorStatus asocia cada error de dominio con su status HTTP y código estable.
// El orden importa: los errores más específicos van primero.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidPrefix, fiber.StatusBadRequest, "INVALID_PREFIX"},
	{domain.ErrMissingField, fiber.StatusBadRequest, "MISSING_FIELD"},
	{domain.ErrMalformed, fiber.StatusBadRequest, "MALFORMED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrVariantNotFound, fiber.StatusNotFound, "VARIANT_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAlreadyHasBarcode, fiber.StatusConflict, "ALREADY_HAS_BARCODE"},
	{domain.ErrPoolExhausted, fiber.StatusConflict, "POOL_EXHAUSTED"},
	{domain.ErrSequenceExhausted, fiber.StatusConflict, "SEQUENCE_EXHAUSTED"},
	{domain.ErrInsufficientPackStock, fiber.StatusConflict, "INSUFFICIENT_PACK_STOCK"},
	{domain.ErrInsufficientBulkStock, fiber.StatusConflict, "INSUFFICIENT_BULK_STOCK"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrStalePlan, fiber.StatusConflict, "STALE_PLAN"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// respondError escribe el error con el status de la tabla; lo desconocido es 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

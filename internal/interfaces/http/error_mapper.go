package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP con cuerpo uniforme.
// Si el error es un LineError, la respuesta identifica la línea culpable.
func writeError(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Message: err.Error()}

	var le *domain.LineError
	if errors.As(err, &le) {
		line := le.Line
		resp.Line = &line
		resp.ItemID = le.ItemID
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, resp.Code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, resp.Code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, resp.Code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrDuplicate):
		status, resp.Code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, resp.Code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrStorageUnavailable):
		status, resp.Code = fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"
	case errors.Is(err, domain.ErrInvariantViolation):
		status, resp.Code = fiber.StatusInternalServerError, "INVARIANT_VIOLATION"
	default:
		status, resp.Code = fiber.StatusInternalServerError, "INTERNAL"
	}
	return c.Status(status).JSON(resp)
}

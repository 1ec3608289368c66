package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/domain"
)

// writeError traduce errores de dominio a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		status, code = fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status, code = fiber.StatusServiceUnavailable, "TIMEOUT"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// mutationResult responde una mutación del store: 404 si el id no existía, status si se aplicó.
// Un fallo de persistencia no cambia el status; se informa con persisted=false.
func mutationResult(c *fiber.Ctx, o *inventory.Outcome, status int, notFoundMsg string) error {
	if o == nil || !o.Applied {
		return notFound(c, notFoundMsg)
	}
	resp := dto.MutationResponse{ID: o.EntityID, Persisted: o.Persisted, Reverted: o.Reverted}
	if o.Err != nil {
		resp.Warning = "cambio no persistido: " + o.Err.Error()
	}
	return c.Status(status).JSON(resp)
}

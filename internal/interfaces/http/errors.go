package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// errorStatus traduce un error de dominio a status HTTP y cuerpo de error.
// Lo que no es un resultado de negocio se responde con un mensaje genérico.
func errorStatus(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: domain.ErrProductNotFound.Error()}
	case errors.Is(err, domain.ErrWarehouseNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "WAREHOUSE_NOT_FOUND", Message: domain.ErrWarehouseNotFound.Error()}
	case errors.Is(err, domain.ErrNoEligibleOrder):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "NO_ELIGIBLE_ORDER", Message: domain.ErrNoEligibleOrder.Error()}
	case errors.Is(err, domain.ErrAlreadyFulfilled):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_FULFILLED", Message: domain.ErrAlreadyFulfilled.Error()}
	case errors.Is(err, ErrIdempotencyKeyReused):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "IDEMPOTENCY_KEY_REUSED", Message: ErrIdempotencyKeyReused.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrUnauthorized.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno, intente más tarde"}
	}
}

func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("falla interna")
	}
	return c.Status(status).JSON(body)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id debe ser un entero positivo"})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

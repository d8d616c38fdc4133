package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	domainerr "github.com/Sandeje96/gestion-pedidos/internal/domain"
)

// respondError traduce errores de dominio a códigos HTTP. Todo lo que no
// matchea un sentinel conocido es un 500 genérico: el detalle queda en el log,
// no en la respuesta.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domainerr.ErrInvalidInput),
		errors.Is(err, domainerr.ErrEstadoInvalido),
		errors.Is(err, domainerr.ErrRutaInvalida),
		errors.Is(err, domainerr.ErrNoEsOperario),
		errors.Is(err, domainerr.ErrClienteInactivo):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	case errors.Is(err, domainerr.ErrUnauthorized),
		errors.Is(err, domainerr.ErrUsuarioNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "Credenciales inválidas",
		})
	case errors.Is(err, domainerr.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: err.Error(),
		})
	case errors.Is(err, domainerr.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	case errors.Is(err, domainerr.ErrUsernameYaExiste),
		errors.Is(err, domainerr.ErrDuplicate),
		errors.Is(err, domainerr.ErrPedidoArchivado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CONFLICT",
			Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Error interno del servidor",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

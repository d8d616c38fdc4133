package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/application/usecase"
)

// ProductoHandler endpoints del catálogo de productos. Accesible para ambos
// roles: el vendedor lo usa al cargar pedidos, la fábrica lo mantiene.
type ProductoHandler struct {
	uc  *usecase.ProductoUseCase
	log zerolog.Logger
}

// NewProductoHandler construye el handler del catálogo.
func NewProductoHandler(uc *usecase.ProductoUseCase, log zerolog.Logger) *ProductoHandler {
	return &ProductoHandler{uc: uc, log: log}
}

// Listar GET /api/productos?disponibles=true
func (h *ProductoHandler) Listar(c *fiber.Ctx) error {
	lista, err := h.uc.Listar(c.Context(), c.QueryBool("disponibles"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lista)
}

// Crear POST /api/productos
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var req dto.GuardarProductoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	producto, err := h.uc.Crear(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	h.log.Info().Str("producto_id", producto.ID).Str("nombre", producto.Nombre).Msg("Producto creado")
	return c.Status(fiber.StatusCreated).JSON(producto)
}

// Editar PUT /api/productos/:id
func (h *ProductoHandler) Editar(c *fiber.Ctx) error {
	var req dto.GuardarProductoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	producto, err := h.uc.Editar(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(producto)
}

// Eliminar DELETE /api/productos/:id
func (h *ProductoHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

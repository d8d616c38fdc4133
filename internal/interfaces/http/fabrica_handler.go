package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/application/fabrica"
)

// FabricaHandler endpoints del panel de fábrica.
type FabricaHandler struct {
	uc  *fabrica.UseCase
	log zerolog.Logger
}

// NewFabricaHandler construye el handler de fábrica.
func NewFabricaHandler(uc *fabrica.UseCase, log zerolog.Logger) *FabricaHandler {
	return &FabricaHandler{uc: uc, log: log}
}

// Panel GET /api/fabrica/panel
func (h *FabricaHandler) Panel(c *fiber.Ctx) error {
	panel, err := h.uc.Panel(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Error armando panel de fábrica")
		return respondError(c, err)
	}
	return c.JSON(panel)
}

// ListarPedidos GET /api/fabrica/pedidos?estado=&cliente_id=
func (h *FabricaHandler) ListarPedidos(c *fiber.Ctx) error {
	lista, err := h.uc.ListarPedidos(c.Context(), c.Query("estado"), c.Query("cliente_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lista)
}

// ActualizarPedido PUT /api/fabrica/pedidos/:id
func (h *FabricaHandler) ActualizarPedido(c *fiber.Ctx) error {
	var req dto.ActualizarPedidoFabricaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	pedido, err := h.uc.ActualizarPedido(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}

	h.log.Info().Str("pedido_id", pedido.ID).Str("estado", pedido.Estado).Msg("Pedido actualizado por fábrica")
	return c.JSON(pedido)
}

// MarcarVisto POST /api/fabrica/pedidos/:id/marcar-visto
func (h *FabricaHandler) MarcarVisto(c *fiber.Ctx) error {
	pedido, err := h.uc.MarcarVisto(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pedido)
}

// AsignarOperario POST /api/fabrica/pedidos/:id/asignar
func (h *FabricaHandler) AsignarOperario(c *fiber.Ctx) error {
	var req dto.AsignarOperarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	pedido, err := h.uc.AsignarOperario(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pedido)
}

// Operarios GET /api/fabrica/operarios
func (h *FabricaHandler) Operarios(c *fiber.Ctx) error {
	lista, err := h.uc.Operarios(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lista)
}

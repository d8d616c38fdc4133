package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/application/ventas"
)

// VentasHandler endpoints del panel del vendedor.
type VentasHandler struct {
	uc  *ventas.UseCase
	log zerolog.Logger
}

// NewVentasHandler construye el handler de ventas.
func NewVentasHandler(uc *ventas.UseCase, log zerolog.Logger) *VentasHandler {
	return &VentasHandler{uc: uc, log: log}
}

// Panel GET /api/ventas/panel
func (h *VentasHandler) Panel(c *fiber.Ctx) error {
	panel, err := h.uc.Panel(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Error armando panel de ventas")
		return respondError(c, err)
	}
	return c.JSON(panel)
}

// CrearCliente POST /api/ventas/clientes
func (h *VentasHandler) CrearCliente(c *fiber.Ctx) error {
	var req dto.GuardarClienteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	cliente, err := h.uc.CrearCliente(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	h.log.Info().Str("cliente_id", cliente.ID).Str("ruta", cliente.Ruta).Msg("Cliente creado")
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// EditarCliente PUT /api/ventas/clientes/:id
func (h *VentasHandler) EditarCliente(c *fiber.Ctx) error {
	var req dto.GuardarClienteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	cliente, err := h.uc.EditarCliente(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cliente)
}

// EliminarCliente DELETE /api/ventas/clientes/:id
func (h *VentasHandler) EliminarCliente(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.EliminarCliente(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("cliente_id", id).Msg("Cliente eliminado junto a sus pedidos")
	return c.SendStatus(fiber.StatusNoContent)
}

// PedidosDeCliente GET /api/ventas/clientes/:id/pedidos
func (h *VentasHandler) PedidosDeCliente(c *fiber.Ctx) error {
	lista, err := h.uc.PedidosDeCliente(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lista)
}

// CrearPedido POST /api/ventas/pedidos
func (h *VentasHandler) CrearPedido(c *fiber.Ctx) error {
	var req dto.CrearPedidoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	pedido, err := h.uc.CrearPedido(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	h.log.Info().Str("pedido_id", pedido.ID).Str("cliente_id", pedido.ClienteID).Msg("Pedido creado")
	return c.Status(fiber.StatusCreated).JSON(pedido)
}

// EditarPedido PUT /api/ventas/pedidos/:id
func (h *VentasHandler) EditarPedido(c *fiber.Ctx) error {
	var req dto.EditarPedidoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	pedido, err := h.uc.EditarPedido(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pedido)
}

// EliminarPedido DELETE /api/ventas/pedidos/:id
func (h *VentasHandler) EliminarPedido(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.EliminarPedido(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("pedido_id", id).Msg("Pedido eliminado")
	return c.SendStatus(fiber.StatusNoContent)
}

// MarcarLeido POST /api/ventas/pedidos/:id/marcar-leido
func (h *VentasHandler) MarcarLeido(c *fiber.Ctx) error {
	pedido, err := h.uc.MarcarLeido(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pedido)
}

// CerrarSemana POST /api/ventas/cerrar-semana
func (h *VentasHandler) CerrarSemana(c *fiber.Ctx) error {
	resp, err := h.uc.CerrarSemana(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Error cerrando la semana")
		return respondError(c, err)
	}

	h.log.Info().Str("semana", resp.Semana).Int64("total", resp.TotalArchivados).Msg("Semana cerrada")
	return c.JSON(resp)
}

// LimpiarAntiguos POST /api/ventas/limpiar-antiguos
func (h *VentasHandler) LimpiarAntiguos(c *fiber.Ctx) error {
	resp, err := h.uc.LimpiarAntiguos(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Error en la limpieza de pedidos antiguos")
		return respondError(c, err)
	}

	h.log.Info().Int64("total", resp.TotalEliminados).Msg("Limpieza de pedidos antiguos")
	return c.JSON(resp)
}

// HistorialSemanas GET /api/ventas/historial-semanas
func (h *VentasHandler) HistorialSemanas(c *fiber.Ctx) error {
	lista, err := h.uc.HistorialSemanas(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lista)
}

// VerSemana GET /api/ventas/semanas/:semana
func (h *VentasHandler) VerSemana(c *fiber.Ctx) error {
	porRuta, err := h.uc.VerSemana(c.Context(), c.Params("semana"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(porRuta)
}

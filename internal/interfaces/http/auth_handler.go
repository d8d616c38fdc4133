package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Sandeje96/gestion-pedidos/internal/application/auth"
	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
)

// AuthHandler endpoints públicos de registro y login.
type AuthHandler struct {
	uc  *auth.UseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de autenticación.
func NewAuthHandler(uc *auth.UseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Registrar POST /api/auth/registro
func (h *AuthHandler) Registrar(c *fiber.Ctx) error {
	var req dto.RegistroRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	usuario, err := h.uc.Registrar(c.Context(), req)
	if err != nil {
		h.log.Warn().Err(err).Str("username", req.Username).Msg("Registro rechazado")
		return respondError(c, err)
	}

	h.log.Info().Str("usuario_id", usuario.ID).Str("rol", usuario.Rol).Msg("Usuario registrado")
	return c.Status(fiber.StatusCreated).JSON(usuario)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	resp, err := h.uc.Login(c.Context(), req)
	if err != nil {
		h.log.Warn().Err(err).Str("username", req.Username).Msg("Login fallido")
		return respondError(c, err)
	}

	h.log.Info().Str("usuario_id", resp.Usuario.ID).Msg("Login exitoso")
	return c.JSON(resp)
}

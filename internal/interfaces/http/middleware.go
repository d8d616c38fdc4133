package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/pkg/jwt"
)

// Claves usadas en fiber.Ctx.Locals para el usuario autenticado.
const (
	localUserID = "user_id"
	localNombre = "nombre"
	localRol    = "rol"
)

// AuthMiddleware valida el token Bearer y deja userID, nombre y rol en Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "Falta el header Authorization",
			})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "Formato de Authorization inválido, se espera 'Bearer <token>'",
			})
		}

		userID, nombre, rol, err := jwt.Parse(jwtSecret, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "Token inválido o expirado",
			})
		}

		c.Locals(localUserID, userID)
		c.Locals(localNombre, nombre)
		c.Locals(localRol, rol)
		return c.Next()
	}
}

// RequireRole corta la petición si el rol autenticado no está en la lista.
// Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "No se pudo determinar el rol del usuario",
			})
		}
		for _, r := range roles {
			if r == rol {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "El rol no tiene acceso a este recurso",
		})
	}
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}

// GetNombre devuelve el nombre del usuario autenticado.
func GetNombre(c *fiber.Ctx) string {
	if v, ok := c.Locals(localNombre).(string); ok {
		return v
	}
	return ""
}

// GetRol devuelve el rol del usuario autenticado.
func GetRol(c *fiber.Ctx) string {
	if v, ok := c.Locals(localRol).(string); ok {
		return v
	}
	return ""
}

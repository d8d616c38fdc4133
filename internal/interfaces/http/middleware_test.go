package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/pkg/jwt"
)

const testSecret = "secreto-de-test"

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/ventas",
		AuthMiddleware(testSecret),
		RequireRole(entity.RolVendedor),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": GetUserID(c),
				"nombre":  GetNombre(c),
				"rol":     GetRol(c),
			})
		})
	return app
}

func token(t *testing.T, rol string) string {
	t.Helper()
	tok, err := jwt.Generate(testSecret, "u1", "Sofía", rol, "test", 60)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddlewareSinHeader(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/ventas", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareFormatoInvalido(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/ventas", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareTokenInvalido(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/ventas", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareFirmaIncorrecta(t *testing.T) {
	app := newTestApp()
	ajeno, err := jwt.Generate("otro-secreto", "u1", "Sofía", entity.RolVendedor, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ventas", nil)
	req.Header.Set("Authorization", "Bearer "+ajeno)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleRechazaOtroRol(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/ventas", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, entity.RolOperario))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRolePermiteRolCorrecto(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest("GET", "/ventas", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, entity.RolVendedor))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/Sandeje96/gestion-pedidos/internal/application/dto"
	"github.com/Sandeje96/gestion-pedidos/internal/domain/entity"
	"github.com/Sandeje96/gestion-pedidos/internal/infrastructure/ws"
	"github.com/Sandeje96/gestion-pedidos/pkg/jwt"
)

// Handlers agrupa los handlers que monta el router.
type Handlers struct {
	Auth     *AuthHandler
	Ventas   *VentasHandler
	Fabrica  *FabricaHandler
	Producto *ProductoHandler
}

// SetupRoutes monta todas las rutas de la API sobre la app Fiber.
// El reparto por rol es por grupo: /api/ventas solo vendedores, /api/fabrica
// solo operarios, /api/productos ambos.
func SetupRoutes(app *fiber.App, h Handlers, hub *ws.Hub, jwtSecret string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas públicas
	authGroup := api.Group("/auth")
	authGroup.Post("/registro", h.Auth.Registrar)
	authGroup.Post("/login", h.Auth.Login)

	// Panel del vendedor
	ventasGroup := api.Group("/ventas", AuthMiddleware(jwtSecret), RequireRole(entity.RolVendedor))
	ventasGroup.Get("/panel", h.Ventas.Panel)
	ventasGroup.Post("/clientes", h.Ventas.CrearCliente)
	ventasGroup.Put("/clientes/:id", h.Ventas.EditarCliente)
	ventasGroup.Delete("/clientes/:id", h.Ventas.EliminarCliente)
	ventasGroup.Get("/clientes/:id/pedidos", h.Ventas.PedidosDeCliente)
	ventasGroup.Post("/pedidos", h.Ventas.CrearPedido)
	ventasGroup.Put("/pedidos/:id", h.Ventas.EditarPedido)
	ventasGroup.Delete("/pedidos/:id", h.Ventas.EliminarPedido)
	ventasGroup.Post("/pedidos/:id/marcar-leido", h.Ventas.MarcarLeido)
	ventasGroup.Post("/cerrar-semana", h.Ventas.CerrarSemana)
	ventasGroup.Post("/limpiar-antiguos", h.Ventas.LimpiarAntiguos)
	ventasGroup.Get("/historial-semanas", h.Ventas.HistorialSemanas)
	ventasGroup.Get("/semanas/:semana", h.Ventas.VerSemana)

	// Panel de fábrica
	fabricaGroup := api.Group("/fabrica", AuthMiddleware(jwtSecret), RequireRole(entity.RolOperario))
	fabricaGroup.Get("/panel", h.Fabrica.Panel)
	fabricaGroup.Get("/pedidos", h.Fabrica.ListarPedidos)
	fabricaGroup.Put("/pedidos/:id", h.Fabrica.ActualizarPedido)
	fabricaGroup.Post("/pedidos/:id/marcar-visto", h.Fabrica.MarcarVisto)
	fabricaGroup.Post("/pedidos/:id/asignar", h.Fabrica.AsignarOperario)
	fabricaGroup.Get("/operarios", h.Fabrica.Operarios)

	// Catálogo de productos, compartido por ambos roles
	productosGroup := api.Group("/productos", AuthMiddleware(jwtSecret), RequireRole(entity.RolVendedor, entity.RolOperario))
	productosGroup.Get("/", h.Producto.Listar)
	productosGroup.Post("/", h.Producto.Crear)
	productosGroup.Put("/:id", h.Producto.Editar)
	productosGroup.Delete("/:id", h.Producto.Eliminar)

	// WebSocket de eventos en vivo. El token viaja como query param porque los
	// navegadores no permiten headers custom en el handshake.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if _, _, _, err := jwt.Parse(jwtSecret, c.Query("token")); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "Token inválido o expirado",
			})
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(hub.ManejarConexion))
}

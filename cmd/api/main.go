package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Sandeje96/gestion-pedidos/internal/application/auth"
	"github.com/Sandeje96/gestion-pedidos/internal/application/fabrica"
	"github.com/Sandeje96/gestion-pedidos/internal/application/pedidos"
	"github.com/Sandeje96/gestion-pedidos/internal/application/usecase"
	"github.com/Sandeje96/gestion-pedidos/internal/application/ventas"
	"github.com/Sandeje96/gestion-pedidos/internal/infrastructure/postgres"
	"github.com/Sandeje96/gestion-pedidos/internal/infrastructure/ws"
	httpRouter "github.com/Sandeje96/gestion-pedidos/internal/interfaces/http"
	"github.com/Sandeje96/gestion-pedidos/pkg/config"
	"github.com/Sandeje96/gestion-pedidos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := ws.NewHub(log.Zerolog())

	engine := pedidos.NewEngine(txRunner, pedidoRepo, clienteRepo, usuarioRepo, hub, log)

	ventasUC := ventas.NewUseCase(engine, clienteRepo, pedidoRepo, cfg.Pedidos.RetencionDias)
	fabricaUC := fabrica.NewUseCase(engine, pedidoRepo, usuarioRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.SetupRoutes(app, httpRouter.Handlers{
		Auth:     httpRouter.NewAuthHandler(authUC, log.Zerolog()),
		Ventas:   httpRouter.NewVentasHandler(ventasUC, log.Zerolog()),
		Fabrica:  httpRouter.NewFabricaHandler(fabricaUC, log.Zerolog()),
		Producto: httpRouter.NewProductoHandler(productoUC, log.Zerolog()),
	}, hub, cfg.JWT.Secret)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/insumos-api/internal/application/analytics"
	"github.com/jhoicas/insumos-api/internal/application/canastillas"
	"github.com/jhoicas/insumos-api/internal/application/consumo"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/application/pedidos"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	httpRouter "github.com/jhoicas/insumos-api/internal/interfaces/http"
	"github.com/jhoicas/insumos-api/pkg/cache"
	"github.com/jhoicas/insumos-api/pkg/config"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Str("cache", cfg.Cache.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var queryCache cache.Cache = cache.NewMemory()
	if cfg.Cache.Driver == config.CacheRedis {
		client, err := cache.ConnectRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		queryCache = cache.NewRedis(client, cfg.App.Name+":")
	}

	loc := cfg.App.Location()
	stockUC := inventory.NewStockUseCase(
		store.Zonas, store.Materiales, store.Stock, store.Reservas, store.Movimientos,
		queryCache,
		inventory.StockConfig{
			TTL:      cfg.Cache.TTL(),
			Umbrales: domaininv.Umbrales{Critico: cfg.Consumo.DiasCritico, Bajo: cfg.Consumo.DiasBajo},
			Location: loc,
		},
		log.Named("stock"),
	)
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.TxRunner, store.Materiales, stockUC, loc)
	zonaUC := usecase.NewZonaUseCase(store.Zonas)
	materialUC := usecase.NewMaterialUseCase(store.Materiales, store.Zonas, store.TxRunner, stockUC)
	pedidoUC := pedidos.NewPedidoUseCase(
		store.TxRunner, store.Pedidos, store.Materiales, store.Zonas, registerMovementUC, stockUC, loc,
	)
	consumoUC := consumo.NewConsumoUseCase(
		store.TxRunner, store.Materiales, store.Consumos, store.Reservas, registerMovementUC, stockUC, loc,
		log.Named("consumo"),
	)
	prestamoUC := canastillas.NewPrestamoUseCase(store.TxRunner, store.Prestamos, store.Zonas)
	dashboardUC := appanalytics.NewDashboardUseCase(store.Zonas, store.Analytics, store.Pedidos, stockUC, loc)

	// Consumo automático diario
	if cfg.Consumo.AutoEnabled {
		scheduler := consumo.NewScheduler(consumoUC, cfg.Consumo.RunHour, loc, log.Named("scheduler"))
		go scheduler.Run(ctx)
		log.Info().Int("hora", cfg.Consumo.RunHour).Str("tz", loc.String()).Msg("consumo automático programado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    2 * 1024 * 1024, // firmas PNG en base64
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Insumos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ZonaUC:           zonaUC,
		MaterialUC:       materialUC,
		RegisterMovement: registerMovementUC,
		StockUC:          stockUC,
		PedidoUC:         pedidoUC,
		ConsumoUC:        consumoUC,
		PrestamoUC:       prestamoUC,
		DashboardUC:      dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

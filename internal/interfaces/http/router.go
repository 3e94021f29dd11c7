package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/insumos-api/internal/application/analytics"
	"github.com/jhoicas/insumos-api/internal/application/canastillas"
	"github.com/jhoicas/insumos-api/internal/application/consumo"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/application/pedidos"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ZonaUC           *usecase.ZonaUseCase
	MaterialUC       *usecase.MaterialUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockUC          *inventory.StockUseCase
	PedidoUC         *pedidos.PedidoUseCase
	ConsumoUC        *consumo.ConsumoUseCase
	PrestamoUC       *canastillas.PrestamoUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	zonaHandler := NewZonaHandler(deps.ZonaUC)
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.StockUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockUC)
	pedidoHandler := NewPedidoHandler(deps.PedidoUC)
	consumoHandler := NewConsumoHandler(deps.ConsumoUC)
	canastillaHandler := NewCanastillaHandler(deps.PrestamoUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	// Zonas y recursos anidados por zona
	zonas := api.Group("/zonas")
	zonas.Get("/", zonaHandler.List)
	zonas.Post("/", adminOnly, zonaHandler.Create)
	zonas.Get("/:id", zonaHandler.GetByID)
	zonas.Get("/:zonaID/materiales", materialHandler.List)
	zonas.Post("/:zonaID/materiales", materialHandler.Create)
	zonas.Get("/:zonaID/inventario", inventoryHandler.GetInventarioZona)
	zonas.Get("/:zonaID/pedidos", pedidoHandler.List)
	zonas.Post("/:zonaID/pedidos", pedidoHandler.Create)
	zonas.Get("/:zonaID/consumos", consumoHandler.ListByZona)
	zonas.Get("/:zonaID/reservas", consumoHandler.ListReservas)
	zonas.Get("/:zonaID/canastillas/saldos", canastillaHandler.Saldos)
	zonas.Get("/:zonaID/canastillas", canastillaHandler.List)
	zonas.Post("/:zonaID/canastillas", canastillaHandler.Prestar)
	zonas.Get("/:zonaID/dashboard", dashboardHandler.GetZona)

	// Materiales
	materiales := api.Group("/materiales")
	materiales.Get("/:id", materialHandler.GetByID)
	materiales.Patch("/:id", materialHandler.Update)
	materiales.Delete("/:id", materialHandler.Deactivate)
	materiales.Get("/:id/conversion", materialHandler.Convert)
	materiales.Get("/:id/movimientos", inventoryHandler.ListMovimientos)

	// Inventario
	api.Post("/inventario/movimientos", inventoryHandler.RegisterMovement)

	// Pedidos
	pedidosGroup := api.Group("/pedidos")
	pedidosGroup.Get("/:id", pedidoHandler.GetByID)
	pedidosGroup.Put("/:id/items", pedidoHandler.ReplaceItems)
	pedidosGroup.Post("/:id/enviar", pedidoHandler.Enviar)
	pedidosGroup.Post("/:id/recibir", pedidoHandler.Recibir)
	pedidosGroup.Post("/:id/completar", pedidoHandler.Completar)
	pedidosGroup.Post("/:id/cancelar", pedidoHandler.Cancelar)

	// Consumos y reservas
	api.Post("/consumos", consumoHandler.RegistrarManual)
	api.Post("/consumos/automatico/ejecutar", adminOnly, consumoHandler.Ejecutar)
	api.Post("/reservas", consumoHandler.Reservar)
	api.Post("/reservas/liberar", consumoHandler.Liberar)

	// Canastillas
	canastillasGroup := api.Group("/canastillas")
	canastillasGroup.Get("/:id", canastillaHandler.GetByID)
	canastillasGroup.Post("/:id/devoluciones", canastillaHandler.Devolver)
}

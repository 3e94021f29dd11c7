package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/analytics"
	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	"github.com/jhoicas/insumos-api/internal/infrastructure/memory"
	"github.com/jhoicas/insumos-api/pkg/cache"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

func TestDashboard_GetZona(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Zonas().Create(ctx, &entity.Zona{ID: "z1", Codigo: entity.ZonaPanificadora, Nombre: "Panificadora", Activa: true}))
	for _, m := range []*entity.Material{
		{ID: "a", ZonaID: "z1", Codigo: "A", Nombre: "Azúcar", NombreClave: "azucar", Unidad: entity.UnidadKg, ConsumoDiario: decimal.NewFromInt(10), Activo: true},
		{ID: "b", ZonaID: "z1", Codigo: "B", Nombre: "Bolsas", NombreClave: "bolsas", Unidad: entity.UnidadUnidad, Activo: true},
		{ID: "c", ZonaID: "z1", Codigo: "C", Nombre: "Cajas", NombreClave: "cajas", Unidad: entity.UnidadUnidad, ConsumoDiario: decimal.NewFromInt(1), Activo: true},
	} {
		require.NoError(t, s.Materiales().Create(ctx, m))
	}
	// azúcar: 20 kg a 10 kg/día → crítico; cajas: sin stock → agotado; bolsas: sin consumo
	require.NoError(t, s.Movimientos().Create(ctx, &entity.Movimiento{ID: "m1", MaterialID: "a", ZonaID: "z1", Cantidad: decimal.NewFromInt(20), Fecha: time.Now()}))
	require.NoError(t, s.Movimientos().Create(ctx, &entity.Movimiento{ID: "m2", MaterialID: "b", ZonaID: "z1", Cantidad: decimal.NewFromInt(500), Fecha: time.Now()}))
	require.NoError(t, s.Pedidos().Create(ctx, &entity.Pedido{ID: "p1", ZonaID: "z1", Numero: "PED-000001", Estado: entity.PedidoEnviado}))
	require.NoError(t, s.Pedidos().Create(ctx, &entity.Pedido{ID: "p2", ZonaID: "z1", Numero: "PED-000002", Estado: entity.PedidoCompletado}))
	require.NoError(t, s.Prestamos().Create(ctx, &entity.Prestamo{ID: "c1", ZonaID: "z1", CantidadPrestada: 12, CantidadDevuelta: 2, Estado: entity.PrestamoParcial}))

	stock := inventory.NewStockUseCase(s.Zonas(), s.Materiales(), s.Stock(), s.Reservas(), s.Movimientos(), cache.NewMemory(),
		inventory.StockConfig{TTL: time.Minute, Location: time.UTC}, logger.Nop())
	uc := analytics.NewDashboardUseCase(s.Zonas(), s.Analytics(), s.Pedidos(), stock, time.UTC)

	out, err := uc.GetZona(ctx, auth.Actor{UserID: "u", Role: entity.RoleBodega, ZonaID: "z1"}, "z1")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Materiales)
	assert.Equal(t, 1, out.PedidosPendientes)
	assert.Equal(t, 10, out.CanastillasPrestadas)
	assert.Equal(t, 1, out.CoberturaPorEstado[domaininv.CoberturaCritico])
	assert.Equal(t, 1, out.CoberturaPorEstado[domaininv.CoberturaAgotado])
	assert.Equal(t, 1, out.CoberturaPorEstado[domaininv.CoberturaSinConsumo])
	require.Len(t, out.Alertas, 2)

	_, err = uc.GetZona(ctx, auth.Actor{UserID: "u", Role: entity.RoleBodega, ZonaID: "z9"}, "z1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetZona(ctx, auth.Actor{UserID: "u", Role: entity.RoleAdmin}, "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	"github.com/jhoicas/insumos-api/internal/infrastructure/memory"
	"github.com/jhoicas/insumos-api/pkg/cache"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var bodega = auth.Actor{UserID: "u-bodega", Role: entity.RoleBodega, ZonaID: "z1"}

type fixture struct {
	store    *memory.Store
	cache    *cache.Memory
	stock    *inventory.StockUseCase
	register *inventory.RegisterMovementUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Zonas().Create(ctx, &entity.Zona{ID: "z1", Codigo: entity.ZonaDesprese, Nombre: "Desprese", Activa: true}))
	require.NoError(t, s.Materiales().Create(ctx, &entity.Material{
		ID: "sal", ZonaID: "z1", Codigo: "SAL", Nombre: "Sal", NombreClave: "sal",
		Unidad: entity.UnidadBulto, PesoPorBulto: decimal.NewFromInt(50),
		ConsumoDiario: decimal.NewFromInt(1), Activo: true,
	}))

	c := cache.NewMemory()
	stock := inventory.NewStockUseCase(s.Zonas(), s.Materiales(), s.Stock(), s.Reservas(), s.Movimientos(), c,
		inventory.StockConfig{TTL: time.Minute, Location: time.UTC}, logger.Nop())
	register := inventory.NewRegisterMovementUseCase(s, s.Materiales(), stock, time.UTC)
	return &fixture{store: s, cache: c, stock: stock, register: register}
}

func (f *fixture) saldo(t *testing.T, materialID string) decimal.Decimal {
	t.Helper()
	q, err := f.store.Stock().Get(context.Background(), materialID)
	require.NoError(t, err)
	return q
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaEnKgSeGuardaEnBultos(t *testing.T) {
	f := newFixture(t)
	mov, err := f.register.RegisterMovement(context.Background(), bodega, dto.RegisterMovementRequest{
		MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("125"), Unidad: entity.UnidadKg,
	})
	require.NoError(t, err)
	assert.True(t, dec("2.5").Equal(mov.Cantidad), "125 kg / 50 kg por bulto")
	assert.Equal(t, entity.UnidadBulto, mov.Unidad)
	assert.Equal(t, entity.MotivoManual, mov.Motivo)
	assert.True(t, dec("2.5").Equal(f.saldo(t, "sal")))
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("3")})
	require.NoError(t, err)

	_, err = f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoSalida, Cantidad: dec("3.5")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoAjuste, Cantidad: dec("-4")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("3").Equal(f.saldo(t, "sal")))

	mov, err := f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoSalida, Cantidad: dec("3")})
	require.NoError(t, err)
	assert.True(t, dec("-3").Equal(mov.Cantidad), "las salidas se guardan con signo negativo")
	assert.True(t, f.saldo(t, "sal").IsZero())
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := map[string]struct {
		req  dto.RegisterMovementRequest
		want error
	}{
		"tipo invalido":      {dto.RegisterMovementRequest{MaterialID: "sal", Tipo: "transfer", Cantidad: dec("1")}, domain.ErrInvalidInput},
		"entrada negativa":   {dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("-1")}, domain.ErrInvalidInput},
		"ajuste cero":        {dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoAjuste, Cantidad: decimal.Zero}, domain.ErrInvalidInput},
		"material no existe": {dto.RegisterMovementRequest{MaterialID: "x", Tipo: entity.MovimientoEntrada, Cantidad: dec("1")}, domain.ErrNotFound},
		"litros a bultos":    {dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("1"), Unidad: entity.UnidadLitro}, domain.ErrUnsupportedConversion},
		"fecha invalida":     {dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("1"), Fecha: "16/10/2026"}, domain.ErrInvalidInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.register.RegisterMovement(ctx, bodega, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	otraZona := auth.Actor{UserID: "u", Role: entity.RoleProduccion, ZonaID: "z2"}
	_, err := f.register.RegisterMovement(ctx, otraZona, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario de zona y cache
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInventarioZona_CoberturaYCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("2")})
	require.NoError(t, err)

	inv, err := f.stock.GetInventarioZona(ctx, bodega, "z1")
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.True(t, dec("2").Equal(item.Stock))
	require.NotNil(t, item.StockKg)
	assert.True(t, dec("100").Equal(*item.StockKg))
	require.NotNil(t, item.DiasCobertura)
	assert.True(t, dec("2").Equal(*item.DiasCobertura))
	assert.Equal(t, domaininv.CoberturaCritico, item.Estado)
	assert.Equal(t, 1, f.cache.Len(), "la respuesta queda en cache")

	// una nueva entrada invalida la clave de la zona
	_, err = f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("8")})
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.Len())

	inv, err = f.stock.GetInventarioZona(ctx, bodega, "z1")
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(inv.Items[0].Stock))
	assert.Equal(t, domaininv.CoberturaOK, inv.Items[0].Estado)
}

func TestGetInventarioZona_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := auth.Actor{UserID: "a", Role: entity.RoleAdmin}

	_, err := f.stock.GetInventarioZona(ctx, admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.stock.GetInventarioZona(ctx, bodega, "z2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListMovimientos_RangoInclusivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, fecha := range []string{"2026-10-14", "2026-10-15", "2026-10-16"} {
		_, err := f.register.RegisterMovement(ctx, bodega, dto.RegisterMovementRequest{MaterialID: "sal", Tipo: entity.MovimientoEntrada, Cantidad: dec("1"), Fecha: fecha})
		require.NoError(t, err)
	}

	out, err := f.stock.ListMovimientos(ctx, bodega, "sal", "2026-10-15", "2026-10-16", 0, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "2026-10-16", dto.FormatFecha(out.Items[0].Fecha), "más reciente primero")
	assert.Equal(t, 20, out.Page.Limit)
}

func TestConvert(t *testing.T) {
	f := newFixture(t)
	out, err := f.stock.Convert(context.Background(), bodega, "sal", dec("3"), entity.UnidadBulto, entity.UnidadKg)
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(out.Resultado))

	_, err = f.stock.Convert(context.Background(), bodega, "sal", dec("3"), entity.UnidadLitro, entity.UnidadKg)
	assert.ErrorIs(t, err, domain.ErrUnsupportedConversion)
}

package consumo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/consumo"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/infrastructure/memory"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	produccion = auth.Actor{UserID: "u-prod", Role: entity.RoleProduccion, ZonaID: "z1"}
	admin      = auth.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
)

type nopInvalidator struct{}

func (nopInvalidator) InvalidateZona(context.Context, string) {}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dia(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC) }

func newConsumoUC(t *testing.T) (*consumo.ConsumoUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	materiales := []*entity.Material{
		{ID: "masa", ZonaID: "z1", Codigo: "MAS", Nombre: "Masa", NombreClave: "masa", Unidad: entity.UnidadKg,
			ConsumoDiario: dec("10"), ConsumoAutomatico: true, Activo: true},
		{ID: "levadura", ZonaID: "z1", Codigo: "LEV", Nombre: "Levadura", NombreClave: "levadura", Unidad: entity.UnidadKg,
			ConsumoDiario: dec("2"), ConsumoAutomatico: true, Activo: true},
		{ID: "harina", ZonaID: "z1", Codigo: "HAR", Nombre: "Harina", NombreClave: "harina", Unidad: entity.UnidadBulto,
			PesoPorBulto: dec("50"), ConsumoDiario: dec("1"), Activo: true},
	}
	for _, m := range materiales {
		require.NoError(t, s.Materiales().Create(ctx, m))
	}
	reg := inventory.NewRegisterMovementUseCase(s, s.Materiales(), nopInvalidator{}, time.UTC)
	uc := consumo.NewConsumoUseCase(s, s.Materiales(), s.Consumos(), s.Reservas(), reg, nopInvalidator{}, time.UTC, logger.Nop())

	_, err := reg.RegisterMovement(ctx, admin, dto.RegisterMovementRequest{MaterialID: "masa", Tipo: entity.MovimientoEntrada, Cantidad: dec("100")})
	require.NoError(t, err)
	_, err = reg.RegisterMovement(ctx, admin, dto.RegisterMovementRequest{MaterialID: "harina", Tipo: entity.MovimientoEntrada, Cantidad: dec("4")})
	require.NoError(t, err)
	return uc, s
}

func registrador(s *memory.Store) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(s, s.Materiales(), nopInvalidator{}, time.UTC)
}

func stock(t *testing.T, s *memory.Store, materialID string) decimal.Decimal {
	t.Helper()
	q, err := s.Stock().Get(context.Background(), materialID)
	require.NoError(t, err)
	return q
}

func reserva(t *testing.T, s *memory.Store, materialID string) decimal.Decimal {
	t.Helper()
	r, err := s.Reservas().GetForUpdate(context.Background(), materialID)
	require.NoError(t, err)
	return r.Cantidad
}

func resultado(t *testing.T, out *dto.ConsumoAutomaticoResponse, materialID string) dto.ConsumoAutomaticoItem {
	t.Helper()
	for _, it := range out.Items {
		if it.MaterialID == materialID {
			return it
		}
	}
	t.Fatalf("sin resultado para %s", materialID)
	return dto.ConsumoAutomaticoItem{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo manual
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarManual_DescuentaStockYRegistra(t *testing.T) {
	uc, s := newConsumoUC(t)
	ctx := context.Background()

	out, err := uc.RegistrarManual(ctx, produccion, dto.RegisterConsumoRequest{
		MaterialID: "harina", Cantidad: dec("75"), Unidad: entity.UnidadKg, Fecha: "2026-10-15",
	})
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(out.Cantidad))
	assert.Equal(t, entity.ConsumoManual, out.Origen)
	assert.Equal(t, "2026-10-15", out.Fecha)
	assert.True(t, dec("2.5").Equal(stock(t, s, "harina")))

	_, err = uc.RegistrarManual(ctx, produccion, dto.RegisterConsumoRequest{MaterialID: "harina", Cantidad: dec("3")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := uc.ListByZona(ctx, produccion, "z1", "2026-10-15", "2026-10-15")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, out.ID, list[0].ID)

	_, err = uc.ListByZona(ctx, produccion, "z1", "2026-10-16", "2026-10-15")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestReservarYLiberar(t *testing.T) {
	uc, s := newConsumoUC(t)
	ctx := context.Background()

	res, err := uc.Reservar(ctx, produccion, dto.ReservaRequest{MaterialID: "masa", Cantidad: dec("30")})
	require.NoError(t, err)
	assert.True(t, dec("30").Equal(res.Cantidad))
	assert.True(t, dec("70").Equal(stock(t, s, "masa")), "la reserva sale del stock general")

	_, err = uc.Reservar(ctx, produccion, dto.ReservaRequest{MaterialID: "masa", Cantidad: dec("71")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("30").Equal(reserva(t, s, "masa")))

	_, err = uc.Reservar(ctx, produccion, dto.ReservaRequest{MaterialID: "harina", Cantidad: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "harina no tiene consumo automático")

	_, err = uc.Liberar(ctx, produccion, dto.ReservaRequest{MaterialID: "masa", Cantidad: dec("31")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	res, err = uc.Liberar(ctx, produccion, dto.ReservaRequest{MaterialID: "masa", Cantidad: dec("5")})
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(res.Cantidad))
	assert.True(t, dec("75").Equal(stock(t, s, "masa")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo automático
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicar_DescuentaReservaUnaVezPorDia(t *testing.T) {
	uc, s := newConsumoUC(t)
	ctx := context.Background()
	_, err := uc.Reservar(ctx, produccion, dto.ReservaRequest{MaterialID: "masa", Cantidad: dec("25")})
	require.NoError(t, err)

	// viernes 16
	out, err := uc.Aplicar(ctx, dia(16))
	require.NoError(t, err)
	assert.False(t, out.Omitido)
	assert.Equal(t, 1, out.Aplicados)
	masa := resultado(t, out, "masa")
	assert.Equal(t, dto.ResultadoAplicado, masa.Resultado)
	assert.True(t, dec("10").Equal(masa.Consumido))
	assert.True(t, dec("15").Equal(masa.ReservaRestante))
	assert.Equal(t, dto.ResultadoSinReserva, resultado(t, out, "levadura").Resultado)
	assert.Len(t, out.Items, 2, "harina no es automática")

	// segunda ejecución del mismo día: idempotente
	out, err = uc.Aplicar(ctx, dia(16))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Aplicados)
	assert.Equal(t, dto.ResultadoYaAplicado, resultado(t, out, "masa").Resultado)
	assert.True(t, dec("15").Equal(reserva(t, s, "masa")))

	// sábado 17 y lunes 19 (el domingo se omite); el lunes solo quedan 5
	_, err = uc.Aplicar(ctx, dia(17))
	require.NoError(t, err)
	out, err = uc.Aplicar(ctx, dia(18))
	require.NoError(t, err)
	assert.True(t, out.Omitido)
	assert.Empty(t, out.Items)
	out, err = uc.Aplicar(ctx, dia(19))
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(resultado(t, out, "masa").Consumido))
	assert.True(t, reserva(t, s, "masa").IsZero())

	out, err = uc.Aplicar(ctx, dia(20))
	require.NoError(t, err)
	assert.Equal(t, dto.ResultadoSinReserva, resultado(t, out, "masa").Resultado)

	// el consumo automático no toca el stock general
	assert.True(t, dec("75").Equal(stock(t, s, "masa")))

	consumos, err := s.Consumos().ListByZona(ctx, "z1", dia(1), dia(31))
	require.NoError(t, err)
	assert.Len(t, consumos, 3)
}

type registroInvalidaciones struct{ zonas []string }

func (r *registroInvalidaciones) InvalidateZona(_ context.Context, zonaID string) {
	r.zonas = append(r.zonas, zonaID)
}

// cancelarTrasRun cancela el contexto del caller al terminar la primera transacción.
type cancelarTrasRun struct {
	inventory.TxRunner
	cancel context.CancelFunc
}

func (c cancelarTrasRun) Run(ctx context.Context, fn func(ctx context.Context, r inventory.TxRepos) error) error {
	err := c.TxRunner.Run(ctx, fn)
	c.cancel()
	return err
}

func TestAplicar_CanceladoInvalidaZonasYaAplicadas(t *testing.T) {
	uc, s := newConsumoUC(t)
	ctx := context.Background()
	_, err := uc.Reservar(ctx, produccion, dto.ReservaRequest{MaterialID: "masa", Cantidad: dec("25")})
	require.NoError(t, err)
	_, err = registrador(s).RegisterMovement(ctx, admin, dto.RegisterMovementRequest{MaterialID: "levadura", Tipo: entity.MovimientoEntrada, Cantidad: dec("5")})
	require.NoError(t, err)
	_, err = uc.Reservar(ctx, produccion, dto.ReservaRequest{MaterialID: "levadura", Cantidad: dec("5")})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	inv := &registroInvalidaciones{}
	corte := consumo.NewConsumoUseCase(
		cancelarTrasRun{TxRunner: s, cancel: cancel}, s.Materiales(), s.Consumos(), s.Reservas(), registrador(s), inv, time.UTC, logger.Nop(),
	)

	// Levadura se procesa primero (orden por nombre) y la corrida se corta antes de Masa
	out, err := corte.Aplicar(runCtx, dia(16))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
	assert.Equal(t, []string{"z1"}, inv.zonas)
	assert.True(t, dec("3").Equal(reserva(t, s, "levadura")))
	assert.True(t, dec("25").Equal(reserva(t, s, "masa")))
}

func TestEjecutar_SoloAdmin(t *testing.T) {
	uc, _ := newConsumoUC(t)
	_, err := uc.Ejecutar(context.Background(), produccion, dto.EjecutarConsumoRequest{Fecha: "2026-10-16"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Ejecutar(context.Background(), admin, dto.EjecutarConsumoRequest{Fecha: "2026-10-18"})
	require.NoError(t, err)
	assert.True(t, out.Omitido)
	assert.Equal(t, "2026-10-18", out.Fecha)
}

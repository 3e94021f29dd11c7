package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type invalidaciones struct{ zonas []string }

func (i *invalidaciones) InvalidateZona(_ context.Context, zonaID string) {
	i.zonas = append(i.zonas, zonaID)
}

var admin = auth.Actor{UserID: "u-admin", Role: entity.RoleAdmin}

func newMaterialUC(t *testing.T) (*usecase.MaterialUseCase, *memory.Store, *invalidaciones) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Zonas().Create(context.Background(), &entity.Zona{ID: "z1", Codigo: entity.ZonaPanificadora, Nombre: "Panificadora", Activa: true}))
	inv := &invalidaciones{}
	return usecase.NewMaterialUseCase(s.Materiales(), s.Zonas(), s, inv), s, inv
}

func harina() dto.CreateMaterialRequest {
	return dto.CreateMaterialRequest{
		Codigo:        "HAR-01",
		Nombre:        "  harina   de TRIGO ",
		Unidad:        entity.UnidadBulto,
		PesoPorBulto:  decimal.NewFromInt(50),
		ConsumoDiario: decimal.NewFromInt(4),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialUseCase_Create_NormalizaNombre(t *testing.T) {
	uc, _, inv := newMaterialUC(t)

	out, err := uc.Create(context.Background(), admin, "z1", harina())
	require.NoError(t, err)
	assert.Equal(t, "Harina De Trigo", out.Nombre)
	assert.True(t, out.Activo)
	assert.Equal(t, []string{"z1"}, inv.zonas)
}

func TestMaterialUseCase_Create_DuplicadoPorClave(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	_, err := uc.Create(context.Background(), admin, "z1", harina())
	require.NoError(t, err)

	dup := harina()
	dup.Codigo = "HAR-02"
	dup.Nombre = "Harína de trigo"
	_, err = uc.Create(context.Background(), admin, "z1", dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialUseCase_Create_Validaciones(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	cases := map[string]func(r *dto.CreateMaterialRequest){
		"bulto sin peso":         func(r *dto.CreateMaterialRequest) { r.PesoPorBulto = decimal.Zero },
		"unidad desconocida":     func(r *dto.CreateMaterialRequest) { r.Unidad = "caja" },
		"consumo negativo":       func(r *dto.CreateMaterialRequest) { r.ConsumoDiario = decimal.NewFromInt(-1) },
		"automatico sin consumo": func(r *dto.CreateMaterialRequest) { r.ConsumoDiario = decimal.Zero; r.ConsumoAutomatico = true },
		"nombre vacio":           func(r *dto.CreateMaterialRequest) { r.Nombre = "   " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := harina()
			mutate(&req)
			_, err := uc.Create(context.Background(), admin, "z1", req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMaterialUseCase_ZonaAjena(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	otro := auth.Actor{UserID: "u2", Role: entity.RoleBodega, ZonaID: "z9"}
	_, err := uc.Create(context.Background(), otro, "z1", harina())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMaterialUseCase_Update_UnidadConSaldo(t *testing.T) {
	uc, s, _ := newMaterialUC(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, admin, "z1", harina())
	require.NoError(t, err)
	require.NoError(t, s.Movimientos().Create(ctx, &entity.Movimiento{ID: "m1", MaterialID: out.ID, ZonaID: "z1", Cantidad: decimal.NewFromInt(3)}))

	kg := entity.UnidadKg
	_, err = uc.Update(ctx, admin, out.ID, dto.UpdateMaterialRequest{Unidad: &kg})
	assert.ErrorIs(t, err, domain.ErrConflict)

	consumo := decimal.NewFromInt(6)
	upd, err := uc.Update(ctx, admin, out.ID, dto.UpdateMaterialRequest{ConsumoDiario: &consumo})
	require.NoError(t, err)
	assert.True(t, consumo.Equal(upd.ConsumoDiario))
}

func TestMaterialUseCase_Update_UnidadConReserva(t *testing.T) {
	uc, s, _ := newMaterialUC(t)
	ctx := context.Background()
	in := harina()
	in.Unidad = entity.UnidadKg
	out, err := uc.Create(ctx, admin, "z1", in)
	require.NoError(t, err)

	// 25 kg entraron y pasaron completos a la reserva: el saldo general queda en cero
	require.NoError(t, s.Movimientos().Create(ctx, &entity.Movimiento{ID: "m1", MaterialID: out.ID, ZonaID: "z1", Cantidad: decimal.NewFromInt(25)}))
	require.NoError(t, s.Movimientos().Create(ctx, &entity.Movimiento{ID: "m2", MaterialID: out.ID, ZonaID: "z1", Cantidad: decimal.NewFromInt(-25)}))
	require.NoError(t, s.Reservas().Upsert(ctx, &entity.Reserva{MaterialID: out.ID, Cantidad: decimal.NewFromInt(25)}))

	bulto := entity.UnidadBulto
	peso := decimal.NewFromInt(50)
	_, err = uc.Update(ctx, admin, out.ID, dto.UpdateMaterialRequest{Unidad: &bulto, PesoPorBulto: &peso})
	assert.ErrorIs(t, err, domain.ErrConflict)

	m, err := s.Materiales().GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UnidadKg, m.Unidad)
}

func TestMaterialUseCase_Deactivate(t *testing.T) {
	uc, _, _ := newMaterialUC(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, admin, "z1", harina())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, admin, out.ID))
	activos, err := uc.List(ctx, admin, "z1", true)
	require.NoError(t, err)
	assert.Empty(t, activos)
	todos, err := uc.List(ctx, admin, "z1", false)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestZonaUseCase_CreateSoloAdmin(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewZonaUseCase(s.Zonas())
	ctx := context.Background()

	_, err := uc.Create(ctx, auth.Actor{UserID: "u", Role: entity.RoleBodega}, dto.CreateZonaRequest{Codigo: "x", Nombre: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	z, err := uc.Create(ctx, admin, dto.CreateZonaRequest{Codigo: " Desposte ", Nombre: "Desposte"})
	require.NoError(t, err)
	assert.Equal(t, "desposte", z.Codigo)

	_, err = uc.Create(ctx, admin, dto.CreateZonaRequest{Codigo: "desposte", Nombre: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	restringido := auth.Actor{UserID: "u", Role: entity.RoleBodega, ZonaID: "otra"}
	list, err := uc.List(ctx, restringido)
	require.NoError(t, err)
	assert.Empty(t, list)
}

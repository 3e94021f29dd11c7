package http_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/insumos-api/internal/application/analytics"
	"github.com/jhoicas/insumos-api/internal/application/canastillas"
	"github.com/jhoicas/insumos-api/internal/application/consumo"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/application/pedidos"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/insumos-api/internal/interfaces/http"
	"github.com/jhoicas/insumos-api/pkg/cache"
	pkgjwt "github.com/jhoicas/insumos-api/pkg/jwt"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	zonaDesposte     = "10000000-0000-0000-0000-000000000001"
	zonaPanificadora = "10000000-0000-0000-0000-000000000002"
)

// newAPI arma la API completa sobre el store en memoria, igual que cmd/api con DB_DRIVER=memory.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for id, codigo := range map[string]string{zonaDesposte: entity.ZonaDesposte, zonaPanificadora: entity.ZonaPanificadora} {
		require.NoError(t, s.Zonas().Create(ctx, &entity.Zona{ID: id, Codigo: codigo, Nombre: codigo, Activa: true, CreatedAt: time.Now()}))
	}

	loc := time.UTC
	stockUC := inventory.NewStockUseCase(
		s.Zonas(), s.Materiales(), s.Stock(), s.Reservas(), s.Movimientos(),
		cache.NewMemory(), inventory.StockConfig{TTL: time.Minute, Location: loc}, logger.Nop(),
	)
	registerUC := inventory.NewRegisterMovementUseCase(s, s.Materiales(), stockUC, loc)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ZonaUC:           usecase.NewZonaUseCase(s.Zonas()),
		MaterialUC:       usecase.NewMaterialUseCase(s.Materiales(), s.Zonas(), s, stockUC),
		RegisterMovement: registerUC,
		StockUC:          stockUC,
		PedidoUC:         pedidos.NewPedidoUseCase(s, s.Pedidos(), s.Materiales(), s.Zonas(), registerUC, stockUC, loc),
		ConsumoUC:        consumo.NewConsumoUseCase(s, s.Materiales(), s.Consumos(), s.Reservas(), registerUC, stockUC, loc, logger.Nop()),
		PrestamoUC:       canastillas.NewPrestamoUseCase(s, s.Prestamos(), s.Zonas()),
		DashboardUC:      appanalytics.NewDashboardUseCase(s.Zonas(), s.Analytics(), s.Pedidos(), stockUC, loc),
		JWTSecret:        testJWTSecret,
	})
	return app
}

func token(t *testing.T, role, zonaID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, zonaID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call lanza la petición y decodifica el cuerpo en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, auth string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func crearHarina(t *testing.T, app *fiber.App, auth string) dto.MaterialResponse {
	t.Helper()
	var m dto.MaterialResponse
	status := call(t, app, http.MethodPost, "/api/zonas/"+zonaPanificadora+"/materiales", auth, dto.CreateMaterialRequest{
		Codigo:        "HAR-01",
		Nombre:        "harina  de trigo",
		Unidad:        entity.UnidadBulto,
		PesoPorBulto:  decimal.NewFromInt(50),
		ConsumoDiario: decimal.NewFromInt(2),
	}, &m)
	require.Equal(t, http.StatusCreated, status)
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SinToken_Retorna401(t *testing.T) {
	app := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/zonas", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ZonasFiltradasPorToken(t *testing.T) {
	app := newAPI(t)

	var todas []dto.ZonaResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas", token(t, entity.RoleAdmin, ""), nil, &todas))
	assert.Len(t, todas, 2)

	var propias []dto.ZonaResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas", token(t, entity.RoleBodega, zonaDesposte), nil, &propias))
	require.Len(t, propias, 1)
	assert.Equal(t, zonaDesposte, propias[0].ID)

	// crear zonas es solo de admin
	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/zonas", token(t, entity.RoleBodega, ""), dto.CreateZonaRequest{Codigo: "x", Nombre: "X"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errBody.Code)
}

func TestAPI_MovimientosEInventario(t *testing.T) {
	app := newAPI(t)
	bodega := token(t, entity.RoleBodega, zonaPanificadora)
	harina := crearHarina(t, app, bodega)
	assert.Equal(t, "Harina De Trigo", harina.Nombre)

	var mov dto.MovimientoResponse
	status := call(t, app, http.MethodPost, "/api/inventario/movimientos", bodega, dto.RegisterMovementRequest{
		MaterialID: harina.ID,
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   decimal.NewFromInt(500),
		Unidad:     entity.UnidadKg,
	}, &mov)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, mov.Cantidad.Equal(decimal.NewFromInt(10)), "500 kg = 10 bultos de 50 kg")

	var inv dto.InventarioZonaResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas/"+zonaPanificadora+"/inventario", bodega, nil, &inv))
	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.True(t, item.Stock.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, item.StockKg)
	assert.True(t, item.StockKg.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, item.DiasCobertura)
	assert.True(t, item.DiasCobertura.Equal(decimal.NewFromInt(5)))

	var errBody dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/inventario/movimientos", bodega, dto.RegisterMovementRequest{
		MaterialID: harina.ID,
		Tipo:       entity.MovimientoSalida,
		Cantidad:   decimal.NewFromInt(11),
	}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	var list dto.MovimientoListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/materiales/"+harina.ID+"/movimientos?limit=500", bodega, nil, &list))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 100, list.Page.Limit)
}

func TestAPI_ZonaAjena_Retorna403(t *testing.T) {
	app := newAPI(t)
	harina := crearHarina(t, app, token(t, entity.RoleAdmin, ""))
	otraZona := token(t, entity.RoleBodega, zonaDesposte)

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/zonas/"+zonaPanificadora+"/inventario", otraZona, nil, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errBody.Code)

	status = call(t, app, http.MethodGet, "/api/materiales/"+harina.ID, otraZona, nil, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_Conversion(t *testing.T) {
	app := newAPI(t)
	admin := token(t, entity.RoleAdmin, "")
	harina := crearHarina(t, app, admin)

	var conv dto.ConversionResponse
	status := call(t, app, http.MethodGet, "/api/materiales/"+harina.ID+"/conversion?cantidad=3&de=bulto&a=kg", admin, nil, &conv)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, conv.Resultado.Equal(decimal.NewFromInt(150)))

	var errBody dto.ErrorResponse
	status = call(t, app, http.MethodGet, "/api/materiales/"+harina.ID+"/conversion?cantidad=3&de=litro&a=kg", admin, nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNSUPPORTED_CONVERSION", errBody.Code)

	status = call(t, app, http.MethodGet, "/api/materiales/"+harina.ID+"/conversion?cantidad=tres", admin, nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)

	status = call(t, app, http.MethodGet, "/api/materiales/no-existe/conversion?cantidad=1", admin, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

func TestAPI_CicloPedido(t *testing.T) {
	app := newAPI(t)
	bodega := token(t, entity.RoleBodega, zonaPanificadora)
	harina := crearHarina(t, app, bodega)

	var p dto.PedidoResponse
	status := call(t, app, http.MethodPost, "/api/zonas/"+zonaPanificadora+"/pedidos", bodega, dto.CreatePedidoRequest{
		Proveedor: "Molinos del Valle",
		Items:     []dto.PedidoItemRequest{{MaterialID: harina.ID, Cantidad: decimal.NewFromInt(4)}},
	}, &p)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "PED-000001", p.Numero)
	assert.Equal(t, entity.PedidoBorrador, p.Estado)

	// recibir un borrador no es una transición válida
	var errBody dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/pedidos/"+p.ID+"/recibir", bodega, dto.RecibirPedidoRequest{
		Items: []dto.RecepcionItemRequest{{ItemID: p.Items[0].ID, Cantidad: decimal.NewFromInt(4)}},
	}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errBody.Code)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/pedidos/"+p.ID+"/enviar", bodega, nil, &p))
	assert.Equal(t, entity.PedidoEnviado, p.Estado)

	status = call(t, app, http.MethodPost, "/api/pedidos/"+p.ID+"/recibir", bodega, dto.RecibirPedidoRequest{
		Items: []dto.RecepcionItemRequest{{ItemID: p.Items[0].ID, Cantidad: decimal.NewFromInt(4)}},
	}, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.PedidoCompletado, p.Estado)

	var inv dto.InventarioZonaResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas/"+zonaPanificadora+"/inventario", bodega, nil, &inv))
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Stock.Equal(decimal.NewFromInt(4)))

	var list dto.PedidoListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas/"+zonaPanificadora+"/pedidos?estado=completado", bodega, nil, &list))
	assert.Len(t, list.Items, 1)
}

func TestAPI_ConsumoAutomaticoSoloAdmin(t *testing.T) {
	app := newAPI(t)

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/consumos/automatico/ejecutar", token(t, entity.RoleProduccion, ""), nil, &errBody)
	assert.Equal(t, http.StatusForbidden, status)

	var res dto.ConsumoAutomaticoResponse
	// 2026-10-18 es domingo
	status = call(t, app, http.MethodPost, "/api/consumos/automatico/ejecutar", token(t, entity.RoleAdmin, ""),
		dto.EjecutarConsumoRequest{Fecha: "2026-10-18"}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Omitido)
}

func TestAPI_Canastillas(t *testing.T) {
	app := newAPI(t)
	bodega := token(t, entity.RoleBodega, zonaDesposte)
	png := "data:image/png;base64," + base64.StdEncoding.EncodeToString(
		append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("firma")...))

	var errBody dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/zonas/"+zonaDesposte+"/canastillas", bodega, dto.CreatePrestamoRequest{
		Tercero:  "Carnes La 80",
		Cantidad: 10,
		Firma:    dto.FirmaRequest{Firmante: "Pedro", Imagen: "data:image/jpeg;base64,AAAA"},
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SIGNATURE", errBody.Code)

	var p dto.PrestamoResponse
	status = call(t, app, http.MethodPost, "/api/zonas/"+zonaDesposte+"/canastillas", bodega, dto.CreatePrestamoRequest{
		Tercero:  "Carnes La 80",
		Cantidad: 10,
		Firma:    dto.FirmaRequest{Firmante: "Pedro", Imagen: png},
	}, &p)
	require.Equal(t, http.StatusCreated, status)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/canastillas/"+p.ID+"/devoluciones", bodega,
		dto.DevolucionRequest{Cantidad: 4, Firma: dto.FirmaRequest{Firmante: "Bodega", Imagen: png}}, &p))
	assert.Equal(t, entity.PrestamoParcial, p.Estado)
	assert.Equal(t, 6, p.Saldo)

	var saldos []dto.SaldoTerceroDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas/"+zonaDesposte+"/canastillas/saldos", bodega, nil, &saldos))
	require.Len(t, saldos, 1)
	assert.Equal(t, 6, saldos[0].Saldo)

	var dash dto.DashboardZonaDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/zonas/"+zonaDesposte+"/dashboard", bodega, nil, &dash))
	assert.Equal(t, 6, dash.CanastillasPrestadas)
}

func TestAPI_BodyInvalido(t *testing.T) {
	app := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/inventario/movimientos", bytes.NewReader([]byte("{no json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token(t, entity.RoleAdmin, ""))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errBody.Code)
}

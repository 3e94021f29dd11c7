package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	uc    *inventory.RegisterMovementUseCase
	stock *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, stock *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, stock: stock}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterMovementRequest  true  "material_id, tipo (entrada|salida|ajuste), cantidad, unidad"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegisterMovement(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetInventarioZona godoc
// @Summary      Inventario actual de una zona con cobertura por material
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        zonaID  path      string  true  "ID de la zona"
// @Success      200     {object}  dto.InventarioZonaResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/zonas/{zonaID}/inventario [get]
func (h *InventoryHandler) GetInventarioZona(c *fiber.Ctx) error {
	out, err := h.stock.GetInventarioZona(c.Context(), GetActor(c), c.Params("zonaID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovimientos godoc
// @Summary      Movimientos de un material
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del material"
// @Param        desde   query  string  false  "YYYY-MM-DD"
// @Param        hasta   query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        limit   query  int     false  "máx. 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovimientoListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/materiales/{id}/movimientos [get]
func (h *InventoryHandler) ListMovimientos(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.stock.ListMovimientos(c.Context(), GetActor(c), c.Params("id"), c.Query("desde"), c.Query("hasta"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

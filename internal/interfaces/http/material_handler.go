package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
)

// MaterialHandler maneja el catálogo de materiales y la conversión de unidades.
type MaterialHandler struct {
	uc    *usecase.MaterialUseCase
	stock *inventory.StockUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, stock *inventory.StockUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, stock: stock}
}

// Create godoc
// @Summary      Crear material en una zona
// @Tags         materiales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        zonaID  path      string                     true  "ID de la zona"
// @Param        body    body      dto.CreateMaterialRequest  true  "datos del material"
// @Success      201     {object}  dto.MaterialResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/zonas/{zonaID}/materiales [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), c.Params("zonaID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar materiales de una zona
// @Tags         materiales
// @Security     Bearer
// @Produce      json
// @Param        zonaID   path   string  true   "ID de la zona"
// @Param        activos  query  bool    false  "solo activos"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/zonas/{zonaID}/materiales [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetActor(c), c.Params("zonaID"), c.QueryBool("activos", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener material
// @Tags         materiales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materiales/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar material (parcial)
// @Tags         materiales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del material"
// @Param        body  body      dto.UpdateMaterialRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materiales/{id} [patch]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar material
// @Tags         materiales
// @Security     Bearer
// @Param        id  path  string  true  "ID del material"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materiales/{id} [delete]
func (h *MaterialHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert godoc
// @Summary      Convertir una cantidad entre unidades del material
// @Tags         materiales
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del material"
// @Param        cantidad  query  string  true   "cantidad decimal"
// @Param        de        query  string  false  "unidad origen (vacío = unidad del material)"
// @Param        a         query  string  false  "unidad destino (vacío = unidad del material)"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/materiales/{id}/conversion [get]
func (h *MaterialHandler) Convert(c *fiber.Ctx) error {
	qty, err := decimal.NewFromString(c.Query("cantidad"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida"})
	}
	out, err := h.stock.Convert(c.Context(), GetActor(c), c.Params("id"), qty, c.Query("de"), c.Query("a"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

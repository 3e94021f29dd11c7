package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/insumos-api/internal/application/canastillas"
	"github.com/jhoicas/insumos-api/internal/application/dto"
)

// CanastillaHandler préstamos y devoluciones de canastillas con firma digital.
type CanastillaHandler struct {
	uc *canastillas.PrestamoUseCase
}

// NewCanastillaHandler construye el handler.
func NewCanastillaHandler(uc *canastillas.PrestamoUseCase) *CanastillaHandler {
	return &CanastillaHandler{uc: uc}
}

// Prestar godoc
// @Summary      Registrar préstamo de canastillas
// @Tags         canastillas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        zonaID  path      string                     true  "ID de la zona"
// @Param        body    body      dto.CreatePrestamoRequest  true  "tercero, cantidad, firma"
// @Success      201     {object}  dto.PrestamoResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/zonas/{zonaID}/canastillas [post]
func (h *CanastillaHandler) Prestar(c *fiber.Ctx) error {
	var in dto.CreatePrestamoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Prestar(c.Context(), GetActor(c), c.Params("zonaID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar préstamos de una zona
// @Tags         canastillas
// @Security     Bearer
// @Produce      json
// @Param        zonaID  path   string  true   "ID de la zona"
// @Param        estado  query  string  false  "abierto|parcial|cerrado"
// @Param        limit   query  int     false  "máx. 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PrestamoListResponse
// @Router       /api/zonas/{zonaID}/canastillas [get]
func (h *CanastillaHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.Context(), GetActor(c), c.Params("zonaID"), c.Query("estado"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Saldos godoc
// @Summary      Canastillas pendientes por tercero
// @Tags         canastillas
// @Security     Bearer
// @Produce      json
// @Param        zonaID  path  string  true  "ID de la zona"
// @Success      200  {array}  dto.SaldoTerceroDTO
// @Router       /api/zonas/{zonaID}/canastillas/saldos [get]
func (h *CanastillaHandler) Saldos(c *fiber.Ctx) error {
	out, err := h.uc.Saldos(c.Context(), GetActor(c), c.Params("zonaID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener préstamo con devoluciones y firmas
// @Tags         canastillas
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del préstamo"
// @Success      200  {object}  dto.PrestamoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/canastillas/{id} [get]
func (h *CanastillaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Devolver godoc
// @Summary      Registrar devolución de canastillas
// @Tags         canastillas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del préstamo"
// @Param        body  body      dto.DevolucionRequest  true  "cantidad y firma"
// @Success      200   {object}  dto.PrestamoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/canastillas/{id}/devoluciones [post]
func (h *CanastillaHandler) Devolver(c *fiber.Ctx) error {
	var in dto.DevolucionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Devolver(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

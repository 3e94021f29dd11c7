package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/insumos-api/internal/application/consumo"
	"github.com/jhoicas/insumos-api/internal/application/dto"
)

// ConsumoHandler consumo manual, reservas y disparo del consumo automático.
type ConsumoHandler struct {
	uc *consumo.ConsumoUseCase
}

// NewConsumoHandler construye el handler.
func NewConsumoHandler(uc *consumo.ConsumoUseCase) *ConsumoHandler {
	return &ConsumoHandler{uc: uc}
}

// RegistrarManual godoc
// @Summary      Registrar consumo manual
// @Tags         consumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterConsumoRequest  true  "material_id, cantidad, unidad, fecha"
// @Success      201   {object}  dto.ConsumoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumos [post]
func (h *ConsumoHandler) RegistrarManual(c *fiber.Ctx) error {
	var in dto.RegisterConsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RegistrarManual(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByZona godoc
// @Summary      Consumos de una zona en un rango de fechas
// @Tags         consumos
// @Security     Bearer
// @Produce      json
// @Param        zonaID  path   string  true   "ID de la zona"
// @Param        desde   query  string  false  "YYYY-MM-DD (por defecto hace 7 días)"
// @Param        hasta   query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200  {array}  dto.ConsumoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/zonas/{zonaID}/consumos [get]
func (h *ConsumoHandler) ListByZona(c *fiber.Ctx) error {
	out, err := h.uc.ListByZona(c.Context(), GetActor(c), c.Params("zonaID"), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reservar godoc
// @Summary      Apartar stock para el consumo automático
// @Tags         consumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReservaRequest  true  "material_id, cantidad, unidad"
// @Success      200   {object}  dto.ReservaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reservas [post]
func (h *ConsumoHandler) Reservar(c *fiber.Ctx) error {
	var in dto.ReservaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Reservar(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Liberar godoc
// @Summary      Devolver stock reservado al stock general
// @Tags         consumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReservaRequest  true  "material_id, cantidad, unidad"
// @Success      200   {object}  dto.ReservaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reservas/liberar [post]
func (h *ConsumoHandler) Liberar(c *fiber.Ctx) error {
	var in dto.ReservaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Liberar(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReservas godoc
// @Summary      Reservas de una zona
// @Tags         consumos
// @Security     Bearer
// @Produce      json
// @Param        zonaID  path  string  true  "ID de la zona"
// @Success      200  {array}  dto.ReservaResponse
// @Router       /api/zonas/{zonaID}/reservas [get]
func (h *ConsumoHandler) ListReservas(c *fiber.Ctx) error {
	out, err := h.uc.ListReservas(c.Context(), GetActor(c), c.Params("zonaID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ejecutar godoc
// @Summary      Ejecutar el consumo automático de una fecha (admin)
// @Tags         consumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.EjecutarConsumoRequest  false  "fecha (vacío = hoy)"
// @Success      200   {object}  dto.ConsumoAutomaticoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/consumos/automatico/ejecutar [post]
func (h *ConsumoHandler) Ejecutar(c *fiber.Ctx) error {
	var in dto.EjecutarConsumoRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Ejecutar(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

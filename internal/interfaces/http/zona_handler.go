package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
)

// ZonaHandler maneja las peticiones HTTP de zonas.
type ZonaHandler struct {
	uc *usecase.ZonaUseCase
}

// NewZonaHandler construye el handler.
func NewZonaHandler(uc *usecase.ZonaUseCase) *ZonaHandler {
	return &ZonaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear zona
// @Tags         zonas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateZonaRequest  true  "codigo y nombre"
// @Success      201   {object}  dto.ZonaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zonas [post]
func (h *ZonaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateZonaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener zona
// @Tags         zonas
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la zona"
// @Success      200  {object}  dto.ZonaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zonas/{id} [get]
func (h *ZonaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar zonas visibles para el usuario
// @Tags         zonas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ZonaResponse
// @Router       /api/zonas [get]
func (h *ZonaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/pedidos"
)

// PedidoHandler maneja el ciclo de vida de los pedidos de reposición.
type PedidoHandler struct {
	uc *pedidos.PedidoUseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *pedidos.PedidoUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido en borrador
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        zonaID  path      string                   true  "ID de la zona"
// @Param        body    body      dto.CreatePedidoRequest  true  "proveedor, fecha_entrega, items"
// @Success      201     {object}  dto.PedidoResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/zonas/{zonaID}/pedidos [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
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
// @Summary      Listar pedidos de una zona
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        zonaID  path   string  true   "ID de la zona"
// @Param        estado  query  string  false  "borrador|enviado|recibido|completado|cancelado"
// @Param        limit   query  int     false  "máx. 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PedidoListResponse
// @Router       /api/zonas/{zonaID}/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.Context(), GetActor(c), c.Params("zonaID"), c.Query("estado"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReplaceItems godoc
// @Summary      Reemplazar las líneas de un borrador
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "ID del pedido"
// @Param        body  body      dto.UpdatePedidoItemsRequest  true  "items"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/items [put]
func (h *PedidoHandler) ReplaceItems(c *fiber.Ctx) error {
	var in dto.UpdatePedidoItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ReplaceItems(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Enviar godoc
// @Summary      Enviar pedido al proveedor
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/enviar [post]
func (h *PedidoHandler) Enviar(c *fiber.Ctx) error {
	out, err := h.uc.Enviar(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recibir godoc
// @Summary      Registrar recepción (total o parcial)
// @Description  Genera una entrada de inventario por cada línea recibida.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID del pedido"
// @Param        body  body      dto.RecibirPedidoRequest  true  "cantidades por línea"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/recibir [post]
func (h *PedidoHandler) Recibir(c *fiber.Ctx) error {
	var in dto.RecibirPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Recibir(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Completar godoc
// @Summary      Cerrar un pedido recibido parcialmente
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/completar [post]
func (h *PedidoHandler) Completar(c *fiber.Ctx) error {
	out, err := h.uc.Completar(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/cancelar [post]
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/insumos-api/internal/application/analytics"
)

// DashboardHandler maneja el tablero por zona.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetZona devuelve el resumen de la zona.
// GET /api/zonas/:zonaID/dashboard
//
// Respuesta: DashboardZonaDTO (materiales, cobertura_por_estado, alertas,
// pedidos_pendientes, canastillas_prestadas).
func (h *DashboardHandler) GetZona(c *fiber.Ctx) error {
	summary, err := h.uc.GetZona(c.Context(), GetActor(c), c.Params("zonaID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

package dto

// DashboardZonaDTO respuesta de GET /api/zonas/:zonaID/dashboard.
type DashboardZonaDTO struct {
	ZonaID               string         `json:"zona_id"`
	Fecha                string         `json:"fecha"`
	Materiales           int            `json:"materiales"`
	CoberturaPorEstado   map[string]int `json:"cobertura_por_estado"`
	Alertas              []StockItemDTO `json:"alertas"` // agotados y críticos
	PedidosPendientes    int            `json:"pedidos_pendientes"`
	CanastillasPrestadas int            `json:"canastillas_prestadas"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PedidoItemRequest línea de un pedido.
type PedidoItemRequest struct {
	MaterialID string          `json:"material_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad,omitempty"`
}

// CreatePedidoRequest entrada para crear un pedido en borrador.
type CreatePedidoRequest struct {
	Proveedor     string              `json:"proveedor"`
	FechaEntrega  string              `json:"fecha_entrega,omitempty"` // YYYY-MM-DD
	Observaciones string              `json:"observaciones"`
	Items         []PedidoItemRequest `json:"items"`
}

// UpdatePedidoItemsRequest reemplaza las líneas de un borrador.
type UpdatePedidoItemsRequest struct {
	Items []PedidoItemRequest `json:"items"`
}

// RecepcionItemRequest cantidad recibida de una línea (en la unidad de la línea).
type RecepcionItemRequest struct {
	ItemID   string          `json:"item_id"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

// RecibirPedidoRequest body de POST /api/pedidos/:id/recibir.
type RecibirPedidoRequest struct {
	Items []RecepcionItemRequest `json:"items"`
}

// PedidoItemResponse salida de una línea.
type PedidoItemResponse struct {
	ID               string          `json:"id"`
	MaterialID       string          `json:"material_id"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Unidad           string          `json:"unidad"`
	CantidadRecibida decimal.Decimal `json:"cantidad_recibida"`
	Pendiente        decimal.Decimal `json:"pendiente"`
}

// PedidoResponse salida de un pedido.
type PedidoResponse struct {
	ID            string               `json:"id"`
	ZonaID        string               `json:"zona_id"`
	Numero        string               `json:"numero"`
	Estado        string               `json:"estado"`
	Proveedor     string               `json:"proveedor"`
	FechaEntrega  *string              `json:"fecha_entrega"`
	Observaciones string               `json:"observaciones"`
	Items         []PedidoItemResponse `json:"items"`
	CreatedBy     string               `json:"created_by"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	EnviadoAt     *time.Time           `json:"enviado_at"`
	RecibidoAt    *time.Time           `json:"recibido_at"`
}

// PedidoListResponse lista paginada de pedidos.
type PedidoListResponse struct {
	Items []PedidoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos.
// Cantidad siempre positiva salvo en ajustes; Unidad vacía = unidad base del material.
type RegisterMovementRequest struct {
	MaterialID string          `json:"material_id"`
	Tipo       string          `json:"tipo"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad,omitempty"`
	Referencia string          `json:"referencia,omitempty"`
	Fecha      string          `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
}

// MovimientoResponse salida de un movimiento del libro.
type MovimientoResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	ZonaID     string          `json:"zona_id"`
	Tipo       string          `json:"tipo"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad"`
	Motivo     string          `json:"motivo"`
	Referencia string          `json:"referencia,omitempty"`
	Fecha      time.Time       `json:"fecha"`
	CreatedBy  string          `json:"created_by,omitempty"`
}

// MovimientoListResponse lista paginada de movimientos.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// StockItemDTO saldo y cobertura de un material.
type StockItemDTO struct {
	MaterialID       string           `json:"material_id"`
	Codigo           string           `json:"codigo"`
	Nombre           string           `json:"nombre"`
	Unidad           string           `json:"unidad"`
	Stock            decimal.Decimal  `json:"stock"`
	StockKg          *decimal.Decimal `json:"stock_kg,omitempty"` // solo materiales en bultos
	Reservado        decimal.Decimal  `json:"reservado"`
	ConsumoDiario    decimal.Decimal  `json:"consumo_diario"`
	DiasCobertura    *decimal.Decimal `json:"dias_cobertura"`
	FechaAgotamiento *string          `json:"fecha_agotamiento"`
	Estado           string           `json:"estado"`
	BajoMinimo       bool             `json:"bajo_minimo"`
}

// InventarioZonaResponse inventario actual de una zona.
type InventarioZonaResponse struct {
	ZonaID string         `json:"zona_id"`
	Fecha  string         `json:"fecha"`
	Items  []StockItemDTO `json:"items"`
}

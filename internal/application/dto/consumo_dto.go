package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterConsumoRequest consumo manual de un material.
type RegisterConsumoRequest struct {
	MaterialID string          `json:"material_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad,omitempty"`
	Fecha      string          `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
}

// ConsumoResponse salida de un registro de consumo.
type ConsumoResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	ZonaID     string          `json:"zona_id"`
	Fecha      string          `json:"fecha"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Origen     string          `json:"origen"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ReservaRequest mueve stock general a la reserva del consumo automático (o al revés).
type ReservaRequest struct {
	MaterialID string          `json:"material_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad,omitempty"`
}

// ReservaResponse saldo reservado de un material.
type ReservaResponse struct {
	MaterialID string          `json:"material_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EjecutarConsumoRequest disparo manual del consumo automático.
type EjecutarConsumoRequest struct {
	Fecha string `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
}

// Resultados del consumo automático por material.
const (
	ResultadoAplicado   = "aplicado"
	ResultadoYaAplicado = "ya_aplicado"
	ResultadoSinReserva = "sin_reserva"
	ResultadoError      = "error"
)

// ConsumoAutomaticoItem resultado del consumo automático de un material.
type ConsumoAutomaticoItem struct {
	MaterialID      string          `json:"material_id"`
	ZonaID          string          `json:"zona_id"`
	Resultado       string          `json:"resultado"`
	Consumido       decimal.Decimal `json:"consumido"`
	ReservaRestante decimal.Decimal `json:"reserva_restante"`
	Error           string          `json:"error,omitempty"`
}

// ConsumoAutomaticoResponse resumen de una ejecución.
type ConsumoAutomaticoResponse struct {
	Fecha     string                  `json:"fecha"`
	Omitido   bool                    `json:"omitido"` // domingo
	Items     []ConsumoAutomaticoItem `json:"items"`
	Aplicados int                     `json:"aplicados"`
}

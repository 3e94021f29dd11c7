package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material en una zona.
type CreateMaterialRequest struct {
	Codigo            string          `json:"codigo"`
	Nombre            string          `json:"nombre"`
	Unidad            string          `json:"unidad"`
	PesoPorBulto      decimal.Decimal `json:"peso_por_bulto"`
	ConsumoDiario     decimal.Decimal `json:"consumo_diario"`
	ConsumoAutomatico bool            `json:"consumo_automatico"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
}

// UpdateMaterialRequest actualización parcial; los campos nil no cambian.
type UpdateMaterialRequest struct {
	Codigo            *string          `json:"codigo"`
	Nombre            *string          `json:"nombre"`
	Unidad            *string          `json:"unidad"`
	PesoPorBulto      *decimal.Decimal `json:"peso_por_bulto"`
	ConsumoDiario     *decimal.Decimal `json:"consumo_diario"`
	ConsumoAutomatico *bool            `json:"consumo_automatico"`
	StockMinimo       *decimal.Decimal `json:"stock_minimo"`
	Activo            *bool            `json:"activo"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID                string          `json:"id"`
	ZonaID            string          `json:"zona_id"`
	Codigo            string          `json:"codigo"`
	Nombre            string          `json:"nombre"`
	Unidad            string          `json:"unidad"`
	PesoPorBulto      decimal.Decimal `json:"peso_por_bulto"`
	ConsumoDiario     decimal.Decimal `json:"consumo_diario"`
	ConsumoAutomatico bool            `json:"consumo_automatico"`
	StockMinimo       decimal.Decimal `json:"stock_minimo"`
	Activo            bool            `json:"activo"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ConversionResponse resultado de convertir una cantidad entre unidades.
type ConversionResponse struct {
	MaterialID string          `json:"material_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	De         string          `json:"de"`
	A          string          `json:"a"`
	Resultado  decimal.Decimal `json:"resultado"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de un material.
const (
	UnidadBulto  = "bulto"
	UnidadUnidad = "unidad"
	UnidadLitro  = "litro"
	UnidadKg     = "kg"
)

// ValidUnidad informa si u es una unidad conocida.
func ValidUnidad(u string) bool {
	switch u {
	case UnidadBulto, UnidadUnidad, UnidadLitro, UnidadKg:
		return true
	}
	return false
}

// Material representa un insumo (SKU de materia prima) del catálogo de una zona.
// El stock se lleva siempre en Unidad; PesoPorBulto (kg) solo aplica a bultos.
type Material struct {
	ID                string
	ZonaID            string
	Codigo            string
	Nombre            string
	NombreClave       string // nombre normalizado, único por zona
	Unidad            string
	PesoPorBulto      decimal.Decimal
	ConsumoDiario     decimal.Decimal
	ConsumoAutomatico bool
	StockMinimo       decimal.Decimal
	Activo            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

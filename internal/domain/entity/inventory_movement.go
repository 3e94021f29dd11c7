package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoAjuste  = "ajuste"
)

// Motivos con los que el sistema genera movimientos.
const (
	MotivoManual            = "manual"
	MotivoPedido            = "pedido"
	MotivoConsumoManual     = "consumo_manual"
	MotivoReserva           = "reserva"
	MotivoLiberacionReserva = "liberacion_reserva"
)

// Movimiento es una entrada del libro de inventario. Cantidad va con signo y en la
// unidad base del material: positiva para entradas, negativa para salidas.
type Movimiento struct {
	ID         string
	MaterialID string
	ZonaID     string
	Tipo       string
	Cantidad   decimal.Decimal
	Unidad     string
	Motivo     string
	Referencia string
	Fecha      time.Time
	CreatedBy  string
	CreatedAt  time.Time
}

// StockMaterial es el saldo actual (Σ movimientos) de un material.
type StockMaterial struct {
	MaterialID string
	Cantidad   decimal.Decimal
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un registro de consumo.
const (
	ConsumoManual     = "manual"
	ConsumoAutomatico = "automatico"
)

// Consumo registra el gasto de un material en una fecha de producción.
type Consumo struct {
	ID         string
	MaterialID string
	ZonaID     string
	Fecha      time.Time // solo fecha (00:00 en la zona horaria de la app)
	Cantidad   decimal.Decimal
	Origen     string
	CreatedBy  string
	CreatedAt  time.Time
}

// Reserva es el stock apartado de un material para el consumo automático.
type Reserva struct {
	MaterialID string
	Cantidad   decimal.Decimal
	UpdatedAt  time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	PedidoBorrador   = "borrador"
	PedidoEnviado    = "enviado"
	PedidoRecibido   = "recibido"
	PedidoCompletado = "completado"
	PedidoCancelado  = "cancelado"
)

// Pedido representa una orden de compra/reposición de insumos para una zona.
type Pedido struct {
	ID            string
	ZonaID        string
	Numero        string
	Estado        string
	Proveedor     string
	FechaEntrega  *time.Time
	Observaciones string
	Items         []PedidoItem
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	EnviadoAt     *time.Time
	RecibidoAt    *time.Time
}

// PedidoItem es una línea del pedido. Cantidad y CantidadRecibida van en Unidad.
type PedidoItem struct {
	ID               string
	PedidoID         string
	MaterialID       string
	Cantidad         decimal.Decimal
	Unidad           string
	CantidadRecibida decimal.Decimal
}

// Pendiente devuelve lo que falta por recibir de la línea.
func (i PedidoItem) Pendiente() decimal.Decimal {
	p := i.Cantidad.Sub(i.CantidadRecibida)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// Package pedido contiene las reglas de estado de los pedidos de insumos.
package pedido

import (
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// transiciones permitidas: estado actual → estados destino.
var transiciones = map[string][]string{
	entity.PedidoBorrador: {entity.PedidoEnviado, entity.PedidoCancelado},
	entity.PedidoEnviado:  {entity.PedidoRecibido, entity.PedidoCompletado, entity.PedidoCancelado},
	entity.PedidoRecibido: {entity.PedidoRecibido, entity.PedidoCompletado},
}

// PuedeTransitar informa si un pedido en estado `de` puede pasar a `a`.
func PuedeTransitar(de, a string) bool {
	for _, s := range transiciones[de] {
		if s == a {
			return true
		}
	}
	return false
}

// Transitar cambia el estado del pedido o devuelve ErrInvalidTransition.
func Transitar(p *entity.Pedido, a string) error {
	if !PuedeTransitar(p.Estado, a) {
		return domain.ErrInvalidTransition
	}
	p.Estado = a
	return nil
}

// EstadoTrasRecepcion devuelve completado si todas las líneas están recibidas
// por completo y recibido en caso contrario.
func EstadoTrasRecepcion(items []entity.PedidoItem) string {
	for _, it := range items {
		if it.Pendiente().IsPositive() {
			return entity.PedidoRecibido
		}
	}
	return entity.PedidoCompletado
}

// Editable informa si las líneas del pedido aún se pueden modificar.
func Editable(p *entity.Pedido) bool {
	return p.Estado == entity.PedidoBorrador
}

// Pendiente informa si el pedido sigue abierto (no completado ni cancelado).
func Pendiente(estado string) bool {
	switch estado {
	case entity.PedidoBorrador, entity.PedidoEnviado, entity.PedidoRecibido:
		return true
	}
	return false
}

package pedido_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/pedido"
)

func TestPuedeTransitar(t *testing.T) {
	permitidas := [][2]string{
		{entity.PedidoBorrador, entity.PedidoEnviado},
		{entity.PedidoBorrador, entity.PedidoCancelado},
		{entity.PedidoEnviado, entity.PedidoRecibido},
		{entity.PedidoEnviado, entity.PedidoCompletado},
		{entity.PedidoEnviado, entity.PedidoCancelado},
		{entity.PedidoRecibido, entity.PedidoRecibido},
		{entity.PedidoRecibido, entity.PedidoCompletado},
	}
	for _, tr := range permitidas {
		assert.True(t, pedido.PuedeTransitar(tr[0], tr[1]), "%s → %s debe permitirse", tr[0], tr[1])
	}

	prohibidas := [][2]string{
		{entity.PedidoBorrador, entity.PedidoRecibido},
		{entity.PedidoRecibido, entity.PedidoCancelado},
		{entity.PedidoCompletado, entity.PedidoEnviado},
		{entity.PedidoCancelado, entity.PedidoBorrador},
	}
	for _, tr := range prohibidas {
		assert.False(t, pedido.PuedeTransitar(tr[0], tr[1]), "%s → %s no debe permitirse", tr[0], tr[1])
	}
}

func TestTransitar_ErrorNoCambiaEstado(t *testing.T) {
	p := &entity.Pedido{Estado: entity.PedidoCompletado}
	err := pedido.Transitar(p, entity.PedidoCancelado)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.PedidoCompletado, p.Estado)
}

func TestEstadoTrasRecepcion(t *testing.T) {
	full := entity.PedidoItem{Cantidad: decimal.NewFromInt(10), CantidadRecibida: decimal.NewFromInt(10)}
	partial := entity.PedidoItem{Cantidad: decimal.NewFromInt(10), CantidadRecibida: decimal.NewFromInt(4)}

	assert.Equal(t, entity.PedidoCompletado, pedido.EstadoTrasRecepcion([]entity.PedidoItem{full}))
	assert.Equal(t, entity.PedidoRecibido, pedido.EstadoTrasRecepcion([]entity.PedidoItem{full, partial}))
}

func TestPendiente(t *testing.T) {
	assert.True(t, pedido.Pendiente(entity.PedidoEnviado))
	assert.False(t, pedido.Pendiente(entity.PedidoCancelado))
}

package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// PedidoRepository define el puerto de persistencia para pedidos y sus líneas.
type PedidoRepository interface {
	Create(ctx context.Context, p *entity.Pedido) error
	// GetByID devuelve el pedido con sus líneas o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Pedido, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera del pedido.
	GetForUpdate(ctx context.Context, id string) (*entity.Pedido, error)
	// Update persiste la cabecera (estado, fechas, proveedor, observaciones).
	Update(ctx context.Context, p *entity.Pedido) error
	// ReplaceItems borra y vuelve a insertar las líneas del pedido.
	ReplaceItems(ctx context.Context, pedidoID string, items []entity.PedidoItem) error
	UpdateItem(ctx context.Context, item *entity.PedidoItem) error
	ListByZona(ctx context.Context, zonaID, estado string, limit, offset int) ([]*entity.Pedido, error)
	// NextNumero devuelve el siguiente consecutivo de la zona.
	NextNumero(ctx context.Context, zonaID string) (int64, error)
	CountPendientes(ctx context.Context, zonaID string) (int, error)
}

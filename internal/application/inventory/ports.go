package inventory

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movimientos repository.InventoryMovementRepository
	Stock       repository.StockRepository
	Materiales  repository.MaterialRepository
	Pedidos     repository.PedidoRepository
	Consumos    repository.ConsumoRepository
	Reservas    repository.ReservaRepository
	Prestamos   repository.PrestamoRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r TxRepos) error) error
}

// ZonaInvalidator descarta las consultas cacheadas de una zona tras una escritura.
type ZonaInvalidator interface {
	InvalidateZona(ctx context.Context, zonaID string)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, mov *entity.Movimiento) error
	ListByMaterial(ctx context.Context, materialID string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error)
}

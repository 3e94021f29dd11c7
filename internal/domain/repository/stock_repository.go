package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// StockRepository calcula saldos como Σ de movimientos (equivale al RPC inventario_actual).
type StockRepository interface {
	// ListByZona devuelve el saldo de cada material de la zona (los que no tienen movimientos no aparecen).
	ListByZona(ctx context.Context, zonaID string) ([]entity.StockMaterial, error)
	Get(ctx context.Context, materialID string) (decimal.Decimal, error)
	// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE) y devuelve su saldo.
	// Solo tiene efecto dentro de una transacción.
	GetForUpdate(ctx context.Context, materialID string) (decimal.Decimal, error)
}

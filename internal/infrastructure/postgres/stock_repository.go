package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo calcula saldos agregando el libro de movimientos (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ListByZona saldo por material de la zona (reemplaza el RPC inventario_actual).
func (r *StockRepo) ListByZona(ctx context.Context, zonaID string) ([]entity.StockMaterial, error) {
	query := `
		SELECT material_id, SUM(cantidad)
		FROM movimientos WHERE zona_id = $1
		GROUP BY material_id
		ORDER BY material_id`
	rows, err := r.q.Query(ctx, query, zonaID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	list := make([]entity.StockMaterial, 0)
	for rows.Next() {
		var s entity.StockMaterial
		if err := rows.Scan(&s.MaterialID, &s.Cantidad); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Get obtiene el saldo actual de un material.
func (r *StockRepo) Get(ctx context.Context, materialID string) (decimal.Decimal, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(cantidad), 0) FROM movimientos WHERE material_id = $1`, materialID).Scan(&qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get stock: %w", err)
	}
	return qty, nil
}

// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE) y devuelve su saldo.
// Dos salidas concurrentes del mismo material quedan serializadas por ese bloqueo.
func (r *StockRepo) GetForUpdate(ctx context.Context, materialID string) (decimal.Decimal, error) {
	var id string
	if err := r.q.QueryRow(ctx, `SELECT id FROM materiales WHERE id = $1 FOR UPDATE`, materialID).Scan(&id); err != nil {
		return decimal.Zero, fmt.Errorf("lock material: %w", err)
	}
	return r.Get(ctx, materialID)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del libro de movimientos sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento. Cantidad ya viene con signo y en unidad base.
func (r *InventoryMovementRepo) Create(ctx context.Context, mov *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, material_id, zona_id, tipo, cantidad, unidad, motivo, referencia, fecha, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.MaterialID, mov.ZonaID, mov.Tipo, mov.Cantidad, mov.Unidad, mov.Motivo,
		mov.Referencia, mov.Fecha, nullIfEmpty(mov.CreatedBy), mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByMaterial lista movimientos del material, más recientes primero. to es exclusivo.
func (r *InventoryMovementRepo) ListByMaterial(ctx context.Context, materialID string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, material_id, zona_id, tipo, cantidad, unidad, motivo, referencia, fecha, created_by, created_at
		FROM movimientos WHERE material_id = $1`
	args := []any{materialID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND fecha < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movimiento, 0)
	for rows.Next() {
		var m entity.Movimiento
		var createdBy *string
		if err := rows.Scan(
			&m.ID, &m.MaterialID, &m.ZonaID, &m.Tipo, &m.Cantidad, &m.Unidad, &m.Motivo,
			&m.Referencia, &m.Fecha, &createdBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.CreatedBy = derefString(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

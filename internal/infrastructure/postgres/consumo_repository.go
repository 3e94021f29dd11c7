package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.ConsumoRepository = (*ConsumoRepo)(nil)

// ConsumoRepo implementación de registros de consumo sobre PostgreSQL.
type ConsumoRepo struct {
	q Querier
}

// NewConsumoRepository construye el adaptador de consumos. Pasar pool o tx (Querier).
func NewConsumoRepository(q Querier) *ConsumoRepo {
	return &ConsumoRepo{q: q}
}

// Create inserta el consumo. Un segundo automático del mismo material y fecha viola
// uq_consumos_automatico y devuelve ErrDuplicate.
func (r *ConsumoRepo) Create(ctx context.Context, c *entity.Consumo) error {
	query := `
		INSERT INTO consumos (id, material_id, zona_id, fecha, cantidad, origen, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.MaterialID, c.ZonaID, c.Fecha, c.Cantidad, c.Origen, nullIfEmpty(c.CreatedBy), c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert consumo: %w", err)
	}
	return nil
}

func (r *ConsumoRepo) ExistsAutomatico(ctx context.Context, materialID string, fecha time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM consumos WHERE material_id = $1 AND fecha = $2 AND origen = $3)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, materialID, fecha, entity.ConsumoAutomatico).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists consumo automatico: %w", err)
	}
	return ok, nil
}

// ListByZona consumos con fecha en [from, to], ordenados por fecha.
func (r *ConsumoRepo) ListByZona(ctx context.Context, zonaID string, from, to time.Time) ([]*entity.Consumo, error) {
	query := `
		SELECT id, material_id, zona_id, fecha, cantidad, origen, created_by, created_at
		FROM consumos WHERE zona_id = $1 AND fecha BETWEEN $2 AND $3
		ORDER BY fecha, created_at`
	rows, err := r.q.Query(ctx, query, zonaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list consumos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Consumo, 0)
	for rows.Next() {
		var c entity.Consumo
		var createdBy *string
		if err := rows.Scan(&c.ID, &c.MaterialID, &c.ZonaID, &c.Fecha, &c.Cantidad, &c.Origen, &createdBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumo: %w", err)
		}
		c.CreatedBy = derefString(createdBy)
		list = append(list, &c)
	}
	return list, rows.Err()
}

var _ repository.ReservaRepository = (*ReservaRepo)(nil)

// ReservaRepo stock reservado por material para el consumo automático.
type ReservaRepo struct {
	q Querier
}

// NewReservaRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewReservaRepository(q Querier) *ReservaRepo {
	return &ReservaRepo{q: q}
}

// GetForUpdate obtiene la reserva y bloquea la fila; si no existe devuelve cantidad cero.
func (r *ReservaRepo) GetForUpdate(ctx context.Context, materialID string) (*entity.Reserva, error) {
	query := `SELECT material_id, cantidad, updated_at FROM reservas WHERE material_id = $1 FOR UPDATE`
	var res entity.Reserva
	err := r.q.QueryRow(ctx, query, materialID).Scan(&res.MaterialID, &res.Cantidad, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Reserva{MaterialID: materialID, Cantidad: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get reserva for update: %w", err)
	}
	return &res, nil
}

// Upsert inserta o actualiza la cantidad reservada del material.
func (r *ReservaRepo) Upsert(ctx context.Context, res *entity.Reserva) error {
	query := `
		INSERT INTO reservas (material_id, cantidad, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (material_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, res.MaterialID, res.Cantidad, res.UpdatedAt); err != nil {
		return fmt.Errorf("upsert reserva: %w", err)
	}
	return nil
}

func (r *ReservaRepo) ListByZona(ctx context.Context, zonaID string) ([]*entity.Reserva, error) {
	query := `
		SELECT r.material_id, r.cantidad, r.updated_at
		FROM reservas r JOIN materiales m ON m.id = r.material_id
		WHERE m.zona_id = $1
		ORDER BY r.material_id`
	rows, err := r.q.Query(ctx, query, zonaID)
	if err != nil {
		return nil, fmt.Errorf("list reservas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Reserva, 0)
	for rows.Next() {
		var res entity.Reserva
		if err := rows.Scan(&res.MaterialID, &res.Cantidad, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reserva: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

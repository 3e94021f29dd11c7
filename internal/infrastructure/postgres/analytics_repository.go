package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de zona.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountMateriales materiales activos de la zona.
func (r *AnalyticsRepo) CountMateriales(ctx context.Context, zonaID string) (int, error) {
	const query = `SELECT COUNT(*) FROM materiales WHERE zona_id = $1 AND activo`
	var n int
	if err := r.pool.QueryRow(ctx, query, zonaID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count materiales: %w", err)
	}
	return n, nil
}

// CanastillasPrestadas Σ saldo de los préstamos abiertos o parciales de la zona.
func (r *AnalyticsRepo) CanastillasPrestadas(ctx context.Context, zonaID string) (int, error) {
	const query = `
	SELECT COALESCE(SUM(cantidad_prestada - cantidad_devuelta), 0)
	FROM prestamos_canastillas
	WHERE zona_id = $1
	  AND estado <> $2`
	var n int
	if err := r.pool.QueryRow(ctx, query, zonaID, entity.PrestamoCerrado).Scan(&n); err != nil {
		return 0, fmt.Errorf("canastillas prestadas: %w", err)
	}
	return n, nil
}

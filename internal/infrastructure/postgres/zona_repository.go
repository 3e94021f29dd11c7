package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

var _ repository.ZonaRepository = (*ZonaRepo)(nil)

// ZonaRepo implementación de ZonaRepository sobre PostgreSQL.
type ZonaRepo struct {
	q Querier
}

// NewZonaRepository construye el adaptador de zonas. Pasar pool o tx (Querier).
func NewZonaRepository(q Querier) *ZonaRepo {
	return &ZonaRepo{q: q}
}

const zonaColumns = `id, codigo, nombre, activa, created_at`

func (r *ZonaRepo) Create(ctx context.Context, z *entity.Zona) error {
	query := `INSERT INTO zonas (` + zonaColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, z.ID, z.Codigo, z.Nombre, z.Activa, z.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert zona: %w", err)
	}
	return nil
}

func (r *ZonaRepo) GetByID(ctx context.Context, id string) (*entity.Zona, error) {
	return r.getOne(ctx, `SELECT `+zonaColumns+` FROM zonas WHERE id = $1`, id)
}

func (r *ZonaRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Zona, error) {
	return r.getOne(ctx, `SELECT `+zonaColumns+` FROM zonas WHERE codigo = $1`, codigo)
}

func (r *ZonaRepo) getOne(ctx context.Context, query string, arg string) (*entity.Zona, error) {
	var z entity.Zona
	err := r.q.QueryRow(ctx, query, arg).Scan(&z.ID, &z.Codigo, &z.Nombre, &z.Activa, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zona: %w", err)
	}
	return &z, nil
}

// List devuelve las zonas activas primero y luego por nombre.
func (r *ZonaRepo) List(ctx context.Context) ([]*entity.Zona, error) {
	rows, err := r.q.Query(ctx, `SELECT `+zonaColumns+` FROM zonas ORDER BY activa DESC, nombre`)
	if err != nil {
		return nil, fmt.Errorf("list zonas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Zona, 0)
	for rows.Next() {
		var z entity.Zona
		if err := rows.Scan(&z.ID, &z.Codigo, &z.Nombre, &z.Activa, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zona: %w", err)
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}

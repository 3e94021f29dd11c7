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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del catálogo de materiales sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, zona_id, codigo, nombre, nombre_clave, unidad, peso_por_bulto, consumo_diario,
	consumo_automatico, stock_minimo, activo, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.ZonaID, &m.Codigo, &m.Nombre, &m.NombreClave, &m.Unidad, &m.PesoPorBulto, &m.ConsumoDiario,
		&m.ConsumoAutomatico, &m.StockMinimo, &m.Activo, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un material. Choques de (zona, nombre_clave) o (zona, codigo) devuelven ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `INSERT INTO materiales (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ZonaID, m.Codigo, m.Nombre, m.NombreClave, m.Unidad, m.PesoPorBulto, m.ConsumoDiario,
		m.ConsumoAutomatico, m.StockMinimo, m.Activo, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM materiales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) GetByZonaAndClave(ctx context.Context, zonaID, clave string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materiales WHERE zona_id = $1 AND nombre_clave = $2`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, zonaID, clave))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material by clave: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materiales SET codigo = $2, nombre = $3, nombre_clave = $4, unidad = $5, peso_por_bulto = $6,
			consumo_diario = $7, consumo_automatico = $8, stock_minimo = $9, activo = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Codigo, m.Nombre, m.NombreClave, m.Unidad, m.PesoPorBulto,
		m.ConsumoDiario, m.ConsumoAutomatico, m.StockMinimo, m.Activo, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) ListByZona(ctx context.Context, zonaID string, soloActivos bool) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materiales WHERE zona_id = $1`
	if soloActivos {
		query += ` AND activo`
	}
	query += ` ORDER BY nombre, id`
	return r.list(ctx, query, zonaID)
}

// ListAutomaticos materiales activos de todas las zonas con consumo automático y tasa > 0.
func (r *MaterialRepo) ListAutomaticos(ctx context.Context) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materiales
		WHERE activo AND consumo_automatico AND consumo_diario > 0
		ORDER BY nombre, id`
	return r.list(ctx, query)
}

func (r *MaterialRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materiales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

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

var _ repository.PrestamoRepository = (*PrestamoRepo)(nil)

// PrestamoRepo préstamos de canastillas y sus devoluciones sobre PostgreSQL.
type PrestamoRepo struct {
	q Querier
}

// NewPrestamoRepository construye el adaptador de préstamos. Pasar pool o tx (Querier).
func NewPrestamoRepository(q Querier) *PrestamoRepo {
	return &PrestamoRepo{q: q}
}

const prestamoColumns = `id, zona_id, tercero, tercero_documento, tipo_canastilla, cantidad_prestada,
	cantidad_devuelta, estado, firma_firmante, firma_imagen, firma_hash, firma_at, observaciones,
	created_by, created_at, updated_at`

func scanPrestamo(row pgx.Row) (*entity.Prestamo, error) {
	var p entity.Prestamo
	var createdBy *string
	err := row.Scan(
		&p.ID, &p.ZonaID, &p.Tercero, &p.TerceroDocumento, &p.TipoCanastilla, &p.CantidadPrestada,
		&p.CantidadDevuelta, &p.Estado, &p.FirmaEntrega.Firmante, &p.FirmaEntrega.Imagen, &p.FirmaEntrega.Hash,
		&p.FirmaEntrega.FirmadoAt, &p.Observaciones, &createdBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedBy = derefString(createdBy)
	return &p, nil
}

func (r *PrestamoRepo) Create(ctx context.Context, p *entity.Prestamo) error {
	query := `INSERT INTO prestamos_canastillas (` + prestamoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ZonaID, p.Tercero, p.TerceroDocumento, p.TipoCanastilla, p.CantidadPrestada,
		p.CantidadDevuelta, p.Estado, p.FirmaEntrega.Firmante, p.FirmaEntrega.Imagen, p.FirmaEntrega.Hash,
		p.FirmaEntrega.FirmadoAt, p.Observaciones, nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prestamo: %w", err)
	}
	return nil
}

// GetByID devuelve el préstamo con sus devoluciones o (nil, nil).
func (r *PrestamoRepo) GetByID(ctx context.Context, id string) (*entity.Prestamo, error) {
	return r.get(ctx, `SELECT `+prestamoColumns+` FROM prestamos_canastillas WHERE id = $1`, id)
}

func (r *PrestamoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Prestamo, error) {
	return r.get(ctx, `SELECT `+prestamoColumns+` FROM prestamos_canastillas WHERE id = $1 FOR UPDATE`, id)
}

func (r *PrestamoRepo) get(ctx context.Context, query, id string) (*entity.Prestamo, error) {
	p, err := scanPrestamo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prestamo: %w", err)
	}
	if p.Devoluciones, err = r.devoluciones(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PrestamoRepo) devoluciones(ctx context.Context, prestamoID string) ([]entity.Devolucion, error) {
	query := `
		SELECT id, prestamo_id, cantidad, firma_firmante, firma_imagen, firma_hash, firma_at, fecha, created_by
		FROM devoluciones_canastillas WHERE prestamo_id = $1 ORDER BY fecha`
	rows, err := r.q.Query(ctx, query, prestamoID)
	if err != nil {
		return nil, fmt.Errorf("list devoluciones: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Devolucion, 0)
	for rows.Next() {
		var d entity.Devolucion
		var createdBy *string
		if err := rows.Scan(
			&d.ID, &d.PrestamoID, &d.Cantidad, &d.Firma.Firmante, &d.Firma.Imagen, &d.Firma.Hash,
			&d.Firma.FirmadoAt, &d.Fecha, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan devolucion: %w", err)
		}
		d.CreatedBy = derefString(createdBy)
		list = append(list, d)
	}
	return list, rows.Err()
}

// UpdateSaldo persiste cantidad devuelta y estado.
func (r *PrestamoRepo) UpdateSaldo(ctx context.Context, p *entity.Prestamo) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE prestamos_canastillas SET cantidad_devuelta = $2, estado = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.CantidadDevuelta, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update prestamo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PrestamoRepo) CreateDevolucion(ctx context.Context, d *entity.Devolucion) error {
	query := `
		INSERT INTO devoluciones_canastillas (id, prestamo_id, cantidad, firma_firmante, firma_imagen, firma_hash, firma_at, fecha, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.PrestamoID, d.Cantidad, d.Firma.Firmante, d.Firma.Imagen, d.Firma.Hash, d.Firma.FirmadoAt,
		d.Fecha, nullIfEmpty(d.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert devolucion: %w", err)
	}
	return nil
}

// ListByZona lista préstamos sin imágenes de firma ni devoluciones, más recientes primero.
func (r *PrestamoRepo) ListByZona(ctx context.Context, zonaID, estado string, limit, offset int) ([]*entity.Prestamo, error) {
	query := `
		SELECT id, zona_id, tercero, tercero_documento, tipo_canastilla, cantidad_prestada,
			cantidad_devuelta, estado, firma_firmante, firma_hash, firma_at, observaciones,
			created_by, created_at, updated_at
		FROM prestamos_canastillas WHERE zona_id = $1`
	args := []any{zonaID}
	pos := 2
	if estado != "" {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, estado)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prestamos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Prestamo, 0)
	for rows.Next() {
		var p entity.Prestamo
		var createdBy *string
		if err := rows.Scan(
			&p.ID, &p.ZonaID, &p.Tercero, &p.TerceroDocumento, &p.TipoCanastilla, &p.CantidadPrestada,
			&p.CantidadDevuelta, &p.Estado, &p.FirmaEntrega.Firmante, &p.FirmaEntrega.Hash, &p.FirmaEntrega.FirmadoAt,
			&p.Observaciones, &createdBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prestamo: %w", err)
		}
		p.CreatedBy = derefString(createdBy)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SaldosPorTercero agrupa por documento (o nombre si no hay documento) los préstamos no cerrados.
func (r *PrestamoRepo) SaldosPorTercero(ctx context.Context, zonaID string) ([]entity.SaldoTercero, error) {
	query := `
		SELECT MIN(tercero), MIN(tercero_documento), COUNT(*), SUM(cantidad_prestada - cantidad_devuelta)
		FROM prestamos_canastillas
		WHERE zona_id = $1 AND estado <> $2
		GROUP BY COALESCE(NULLIF(tercero_documento, ''), tercero)
		ORDER BY 4 DESC, 1`
	rows, err := r.q.Query(ctx, query, zonaID, entity.PrestamoCerrado)
	if err != nil {
		return nil, fmt.Errorf("saldos canastillas: %w", err)
	}
	defer rows.Close()
	list := make([]entity.SaldoTercero, 0)
	for rows.Next() {
		var s entity.SaldoTercero
		if err := rows.Scan(&s.Tercero, &s.TerceroDocumento, &s.Prestamos, &s.Saldo); err != nil {
			return nil, fmt.Errorf("scan saldo: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

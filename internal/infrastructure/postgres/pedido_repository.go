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

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación de pedidos y líneas sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const pedidoColumns = `id, zona_id, numero, estado, proveedor, fecha_entrega, observaciones, created_by,
	created_at, updated_at, enviado_at, recibido_at`

func scanPedido(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	var createdBy *string
	err := row.Scan(
		&p.ID, &p.ZonaID, &p.Numero, &p.Estado, &p.Proveedor, &p.FechaEntrega, &p.Observaciones, &createdBy,
		&p.CreatedAt, &p.UpdatedAt, &p.EnviadoAt, &p.RecibidoAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedBy = derefString(createdBy)
	return &p, nil
}

// Create inserta la cabecera y sus líneas. Usar dentro de una tx para que sea atómico.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `INSERT INTO pedidos (` + pedidoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ZonaID, p.Numero, p.Estado, p.Proveedor, p.FechaEntrega, p.Observaciones, nullIfEmpty(p.CreatedBy),
		p.CreatedAt, p.UpdatedAt, p.EnviadoAt, p.RecibidoAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return r.insertItems(ctx, p.ID, p.Items)
}

func (r *PedidoRepo) insertItems(ctx context.Context, pedidoID string, items []entity.PedidoItem) error {
	query := `
		INSERT INTO pedido_items (id, pedido_id, posicion, material_id, cantidad, unidad, cantidad_recibida)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, it := range items {
		if _, err := r.q.Exec(ctx, query, it.ID, pedidoID, i, it.MaterialID, it.Cantidad, it.Unidad, it.CantidadRecibida); err != nil {
			return fmt.Errorf("insert pedido item: %w", err)
		}
	}
	return nil
}

func (r *PedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	return r.get(ctx, `SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; las líneas solo se modifican con la cabecera bloqueada.
func (r *PedidoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Pedido, error) {
	return r.get(ctx, `SELECT `+pedidoColumns+` FROM pedidos WHERE id = $1 FOR UPDATE`, id)
}

func (r *PedidoRepo) get(ctx context.Context, query, id string) (*entity.Pedido, error) {
	p, err := scanPedido(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	if p.Items, err = r.items(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PedidoRepo) items(ctx context.Context, pedidoID string) ([]entity.PedidoItem, error) {
	query := `
		SELECT id, pedido_id, material_id, cantidad, unidad, cantidad_recibida
		FROM pedido_items WHERE pedido_id = $1 ORDER BY posicion`
	rows, err := r.q.Query(ctx, query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list pedido items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.PedidoItem, 0)
	for rows.Next() {
		var it entity.PedidoItem
		if err := rows.Scan(&it.ID, &it.PedidoID, &it.MaterialID, &it.Cantidad, &it.Unidad, &it.CantidadRecibida); err != nil {
			return nil, fmt.Errorf("scan pedido item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PedidoRepo) Update(ctx context.Context, p *entity.Pedido) error {
	query := `
		UPDATE pedidos SET estado = $2, proveedor = $3, fecha_entrega = $4, observaciones = $5,
			updated_at = $6, enviado_at = $7, recibido_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Estado, p.Proveedor, p.FechaEntrega, p.Observaciones, p.UpdatedAt, p.EnviadoAt, p.RecibidoAt,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PedidoRepo) ReplaceItems(ctx context.Context, pedidoID string, items []entity.PedidoItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM pedido_items WHERE pedido_id = $1`, pedidoID); err != nil {
		return fmt.Errorf("delete pedido items: %w", err)
	}
	return r.insertItems(ctx, pedidoID, items)
}

func (r *PedidoRepo) UpdateItem(ctx context.Context, item *entity.PedidoItem) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE pedido_items SET cantidad_recibida = $3 WHERE id = $1 AND pedido_id = $2`,
		item.ID, item.PedidoID, item.CantidadRecibida,
	)
	if err != nil {
		return fmt.Errorf("update pedido item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PedidoRepo) ListByZona(ctx context.Context, zonaID, estado string, limit, offset int) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE zona_id = $1`
	args := []any{zonaID}
	pos := 2
	if estado != "" {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, estado)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, numero DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	list := make([]*entity.Pedido, 0)
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	// las líneas se cargan después de cerrar el cursor: pgx no admite dos queries a la vez en una conexión
	for _, p := range list {
		if p.Items, err = r.items(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// NextNumero incrementa el consecutivo de la zona con un upsert atómico.
func (r *PedidoRepo) NextNumero(ctx context.Context, zonaID string) (int64, error) {
	query := `
		INSERT INTO pedido_secuencias (zona_id, ultimo) VALUES ($1, 1)
		ON CONFLICT (zona_id) DO UPDATE SET ultimo = pedido_secuencias.ultimo + 1
		RETURNING ultimo`
	var n int64
	if err := r.q.QueryRow(ctx, query, zonaID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next numero pedido: %w", err)
	}
	return n, nil
}

// CountPendientes pedidos aún abiertos (borrador, enviado o recibido).
func (r *PedidoRepo) CountPendientes(ctx context.Context, zonaID string) (int, error) {
	query := `SELECT COUNT(*) FROM pedidos WHERE zona_id = $1 AND estado IN ($2, $3, $4)`
	var n int
	err := r.q.QueryRow(ctx, query, zonaID, entity.PedidoBorrador, entity.PedidoEnviado, entity.PedidoRecibido).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pedidos pendientes: %w", err)
	}
	return n, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domainpedido "github.com/jhoicas/insumos-api/internal/domain/pedido"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// PedidoRepo implementa repository.PedidoRepository.
type PedidoRepo struct{ v *view }

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	defer r.v.lock()()
	for _, ex := range r.v.d.pedidos {
		if ex.ZonaID == p.ZonaID && ex.Numero == p.Numero {
			return domain.ErrDuplicate
		}
	}
	head := *p
	head.Items = nil
	r.v.d.pedidos[p.ID] = head
	r.v.d.items[p.ID] = append([]entity.PedidoItem(nil), p.Items...)
	return nil
}

func (r *PedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	defer r.v.rlock()()
	return r.get(id), nil
}

func (r *PedidoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Pedido, error) {
	return r.GetByID(ctx, id)
}

func (r *PedidoRepo) get(id string) *entity.Pedido {
	p, ok := r.v.d.pedidos[id]
	if !ok {
		return nil
	}
	p.Items = append([]entity.PedidoItem(nil), r.v.d.items[id]...)
	return &p
}

func (r *PedidoRepo) Update(ctx context.Context, p *entity.Pedido) error {
	defer r.v.lock()()
	if _, ok := r.v.d.pedidos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	head := *p
	head.Items = nil
	r.v.d.pedidos[p.ID] = head
	return nil
}

func (r *PedidoRepo) ReplaceItems(ctx context.Context, pedidoID string, items []entity.PedidoItem) error {
	defer r.v.lock()()
	if _, ok := r.v.d.pedidos[pedidoID]; !ok {
		return domain.ErrNotFound
	}
	r.v.d.items[pedidoID] = append([]entity.PedidoItem(nil), items...)
	return nil
}

func (r *PedidoRepo) UpdateItem(ctx context.Context, item *entity.PedidoItem) error {
	defer r.v.lock()()
	items := r.v.d.items[item.PedidoID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = *item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *PedidoRepo) ListByZona(ctx context.Context, zonaID, estado string, limit, offset int) ([]*entity.Pedido, error) {
	defer r.v.rlock()()
	rows := make([]*entity.Pedido, 0)
	for id, p := range r.v.d.pedidos {
		if p.ZonaID != zonaID || (estado != "" && p.Estado != estado) {
			continue
		}
		rows = append(rows, r.get(id))
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].Numero > rows[j].Numero
	})
	return page(rows, limit, offset), nil
}

func (r *PedidoRepo) NextNumero(ctx context.Context, zonaID string) (int64, error) {
	defer r.v.lock()()
	r.v.d.secuencias[zonaID]++
	return r.v.d.secuencias[zonaID], nil
}

func (r *PedidoRepo) CountPendientes(ctx context.Context, zonaID string) (int, error) {
	defer r.v.rlock()()
	n := 0
	for _, p := range r.v.d.pedidos {
		if p.ZonaID == zonaID && domainpedido.Pendiente(p.Estado) {
			n++
		}
	}
	return n, nil
}

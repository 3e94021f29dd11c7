package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// MovimientoRepo implementa repository.InventoryMovementRepository.
type MovimientoRepo struct{ v *view }

var _ repository.InventoryMovementRepository = (*MovimientoRepo)(nil)

func (r *MovimientoRepo) Create(ctx context.Context, mov *entity.Movimiento) error {
	defer r.v.lock()()
	r.v.d.movimientos = append(r.v.d.movimientos, *mov)
	return nil
}

// ListByMaterial devuelve los movimientos más recientes primero; to es exclusivo.
func (r *MovimientoRepo) ListByMaterial(ctx context.Context, materialID string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	defer r.v.rlock()()
	rows := make([]*entity.Movimiento, 0)
	for i := range r.v.d.movimientos {
		m := r.v.d.movimientos[i]
		if m.MaterialID != materialID {
			continue
		}
		if from != nil && m.Fecha.Before(*from) {
			continue
		}
		if to != nil && !m.Fecha.Before(*to) {
			continue
		}
		rows = append(rows, &m)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Fecha.Equal(rows[j].Fecha) {
			return rows[i].Fecha.After(rows[j].Fecha)
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return page(rows, limit, offset), nil
}

// StockRepo implementa repository.StockRepository sumando el libro en memoria.
type StockRepo struct{ v *view }

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) ListByZona(ctx context.Context, zonaID string) ([]entity.StockMaterial, error) {
	defer r.v.rlock()()
	sums := make(map[string]decimal.Decimal)
	for _, m := range r.v.d.movimientos {
		if m.ZonaID == zonaID {
			sums[m.MaterialID] = sums[m.MaterialID].Add(m.Cantidad)
		}
	}
	out := make([]entity.StockMaterial, 0, len(sums))
	for id, q := range sums {
		out = append(out, entity.StockMaterial{MaterialID: id, Cantidad: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}

func (r *StockRepo) Get(ctx context.Context, materialID string) (decimal.Decimal, error) {
	defer r.v.rlock()()
	total := decimal.Zero
	for _, m := range r.v.d.movimientos {
		if m.MaterialID == materialID {
			total = total.Add(m.Cantidad)
		}
	}
	return total, nil
}

// GetForUpdate equivale a Get: Store.Run ya serializa las transacciones.
func (r *StockRepo) GetForUpdate(ctx context.Context, materialID string) (decimal.Decimal, error) {
	return r.Get(ctx, materialID)
}

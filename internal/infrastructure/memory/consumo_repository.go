package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// ConsumoRepo implementa repository.ConsumoRepository.
type ConsumoRepo struct{ v *view }

var _ repository.ConsumoRepository = (*ConsumoRepo)(nil)

// Create replica el índice único parcial (material_id, fecha) WHERE origen = 'automatico'.
func (r *ConsumoRepo) Create(ctx context.Context, c *entity.Consumo) error {
	defer r.v.lock()()
	if c.Origen == entity.ConsumoAutomatico {
		for _, ex := range r.v.d.consumos {
			if ex.Origen == entity.ConsumoAutomatico && ex.MaterialID == c.MaterialID && dayKey(ex.Fecha) == dayKey(c.Fecha) {
				return domain.ErrDuplicate
			}
		}
	}
	r.v.d.consumos = append(r.v.d.consumos, *c)
	return nil
}

func (r *ConsumoRepo) ExistsAutomatico(ctx context.Context, materialID string, fecha time.Time) (bool, error) {
	defer r.v.rlock()()
	for _, c := range r.v.d.consumos {
		if c.Origen == entity.ConsumoAutomatico && c.MaterialID == materialID && dayKey(c.Fecha) == dayKey(fecha) {
			return true, nil
		}
	}
	return false, nil
}

// ListByZona devuelve los consumos con fecha en [from, to], ordenados por fecha.
func (r *ConsumoRepo) ListByZona(ctx context.Context, zonaID string, from, to time.Time) ([]*entity.Consumo, error) {
	defer r.v.rlock()()
	desde, hasta := dayKey(from), dayKey(to)
	out := make([]*entity.Consumo, 0)
	for i := range r.v.d.consumos {
		c := r.v.d.consumos[i]
		k := dayKey(c.Fecha)
		if c.ZonaID != zonaID || k < desde || k > hasta {
			continue
		}
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

// ReservaRepo implementa repository.ReservaRepository.
type ReservaRepo struct{ v *view }

var _ repository.ReservaRepository = (*ReservaRepo)(nil)

func (r *ReservaRepo) GetForUpdate(ctx context.Context, materialID string) (*entity.Reserva, error) {
	defer r.v.rlock()()
	res, ok := r.v.d.reservas[materialID]
	if !ok {
		return &entity.Reserva{MaterialID: materialID, Cantidad: decimal.Zero}, nil
	}
	return &res, nil
}

func (r *ReservaRepo) Upsert(ctx context.Context, res *entity.Reserva) error {
	defer r.v.lock()()
	r.v.d.reservas[res.MaterialID] = *res
	return nil
}

func (r *ReservaRepo) ListByZona(ctx context.Context, zonaID string) ([]*entity.Reserva, error) {
	defer r.v.rlock()()
	out := make([]*entity.Reserva, 0)
	for id, res := range r.v.d.reservas {
		if m, ok := r.v.d.materiales[id]; ok && m.ZonaID == zonaID {
			res := res
			out = append(out, &res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}

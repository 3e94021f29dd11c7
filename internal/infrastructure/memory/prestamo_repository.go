package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// PrestamoRepo implementa repository.PrestamoRepository.
type PrestamoRepo struct{ v *view }

var _ repository.PrestamoRepository = (*PrestamoRepo)(nil)

func (r *PrestamoRepo) Create(ctx context.Context, p *entity.Prestamo) error {
	defer r.v.lock()()
	head := *p
	head.Devoluciones = nil
	r.v.d.prestamos[p.ID] = head
	return nil
}

func (r *PrestamoRepo) GetByID(ctx context.Context, id string) (*entity.Prestamo, error) {
	defer r.v.rlock()()
	return r.get(id), nil
}

func (r *PrestamoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Prestamo, error) {
	return r.GetByID(ctx, id)
}

func (r *PrestamoRepo) get(id string) *entity.Prestamo {
	p, ok := r.v.d.prestamos[id]
	if !ok {
		return nil
	}
	p.Devoluciones = append([]entity.Devolucion(nil), r.v.d.devoluciones[id]...)
	return &p
}

func (r *PrestamoRepo) UpdateSaldo(ctx context.Context, p *entity.Prestamo) error {
	defer r.v.lock()()
	ex, ok := r.v.d.prestamos[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	ex.CantidadDevuelta = p.CantidadDevuelta
	ex.Estado = p.Estado
	ex.UpdatedAt = p.UpdatedAt
	r.v.d.prestamos[p.ID] = ex
	return nil
}

func (r *PrestamoRepo) CreateDevolucion(ctx context.Context, d *entity.Devolucion) error {
	defer r.v.lock()()
	if _, ok := r.v.d.prestamos[d.PrestamoID]; !ok {
		return domain.ErrNotFound
	}
	r.v.d.devoluciones[d.PrestamoID] = append(r.v.d.devoluciones[d.PrestamoID], *d)
	return nil
}

func (r *PrestamoRepo) ListByZona(ctx context.Context, zonaID, estado string, limit, offset int) ([]*entity.Prestamo, error) {
	defer r.v.rlock()()
	rows := make([]*entity.Prestamo, 0)
	for id, p := range r.v.d.prestamos {
		if p.ZonaID != zonaID || (estado != "" && p.Estado != estado) {
			continue
		}
		rows = append(rows, r.get(id))
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	return page(rows, limit, offset), nil
}

// SaldosPorTercero agrupa por documento (o nombre si no hay documento) los préstamos no cerrados.
func (r *PrestamoRepo) SaldosPorTercero(ctx context.Context, zonaID string) ([]entity.SaldoTercero, error) {
	defer r.v.rlock()()
	byKey := make(map[string]*entity.SaldoTercero)
	for _, p := range r.v.d.prestamos {
		if p.ZonaID != zonaID || p.Estado == entity.PrestamoCerrado {
			continue
		}
		key := p.TerceroDocumento
		if key == "" {
			key = p.Tercero
		}
		st, ok := byKey[key]
		if !ok {
			st = &entity.SaldoTercero{Tercero: p.Tercero, TerceroDocumento: p.TerceroDocumento}
			byKey[key] = st
		}
		st.Prestamos++
		st.Saldo += p.Saldo()
	}
	out := make([]entity.SaldoTercero, 0, len(byKey))
	for _, st := range byKey {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Saldo != out[j].Saldo {
			return out[i].Saldo > out[j].Saldo
		}
		return out[i].Tercero < out[j].Tercero
	})
	return out, nil
}

// AnalyticsRepo implementa repository.AnalyticsRepository.
type AnalyticsRepo struct{ v *view }

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

func (r *AnalyticsRepo) CountMateriales(ctx context.Context, zonaID string) (int, error) {
	defer r.v.rlock()()
	n := 0
	for _, m := range r.v.d.materiales {
		if m.ZonaID == zonaID && m.Activo {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) CanastillasPrestadas(ctx context.Context, zonaID string) (int, error) {
	defer r.v.rlock()()
	n := 0
	for _, p := range r.v.d.prestamos {
		if p.ZonaID == zonaID && p.Estado != entity.PrestamoCerrado {
			n += p.Saldo()
		}
	}
	return n, nil
}

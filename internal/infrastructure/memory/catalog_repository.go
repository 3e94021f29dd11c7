package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// ZonaRepo implementa repository.ZonaRepository.
type ZonaRepo struct{ v *view }

var _ repository.ZonaRepository = (*ZonaRepo)(nil)

func (r *ZonaRepo) Create(ctx context.Context, z *entity.Zona) error {
	defer r.v.lock()()
	for _, ex := range r.v.d.zonas {
		if ex.Codigo == z.Codigo {
			return domain.ErrDuplicate
		}
	}
	r.v.d.zonas[z.ID] = *z
	return nil
}

func (r *ZonaRepo) GetByID(ctx context.Context, id string) (*entity.Zona, error) {
	defer r.v.rlock()()
	z, ok := r.v.d.zonas[id]
	if !ok {
		return nil, nil
	}
	return &z, nil
}

func (r *ZonaRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Zona, error) {
	defer r.v.rlock()()
	for _, z := range r.v.d.zonas {
		if z.Codigo == codigo {
			z := z
			return &z, nil
		}
	}
	return nil, nil
}

func (r *ZonaRepo) List(ctx context.Context) ([]*entity.Zona, error) {
	defer r.v.rlock()()
	out := make([]*entity.Zona, 0, len(r.v.d.zonas))
	for _, z := range r.v.d.zonas {
		z := z
		out = append(out, &z)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Activa != out[j].Activa {
			return out[i].Activa
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out, nil
}

// MaterialRepo implementa repository.MaterialRepository.
type MaterialRepo struct{ v *view }

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	defer r.v.lock()()
	if r.duplicado(m) {
		return domain.ErrDuplicate
	}
	r.v.d.materiales[m.ID] = *m
	return nil
}

// duplicado replica los índices únicos (zona_id, nombre_clave) y (zona_id, codigo).
func (r *MaterialRepo) duplicado(m *entity.Material) bool {
	for _, ex := range r.v.d.materiales {
		if ex.ID == m.ID || ex.ZonaID != m.ZonaID {
			continue
		}
		if ex.NombreClave == m.NombreClave || ex.Codigo == m.Codigo {
			return true
		}
	}
	return false
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	defer r.v.rlock()()
	m, ok := r.v.d.materiales[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MaterialRepo) GetByZonaAndClave(ctx context.Context, zonaID, clave string) (*entity.Material, error) {
	defer r.v.rlock()()
	for _, m := range r.v.d.materiales {
		if m.ZonaID == zonaID && m.NombreClave == clave {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	defer r.v.lock()()
	if _, ok := r.v.d.materiales[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.duplicado(m) {
		return domain.ErrDuplicate
	}
	r.v.d.materiales[m.ID] = *m
	return nil
}

func (r *MaterialRepo) ListByZona(ctx context.Context, zonaID string, soloActivos bool) ([]*entity.Material, error) {
	defer r.v.rlock()()
	out := make([]*entity.Material, 0)
	for _, m := range r.v.d.materiales {
		if m.ZonaID != zonaID || (soloActivos && !m.Activo) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sortMateriales(out)
	return out, nil
}

func (r *MaterialRepo) ListAutomaticos(ctx context.Context) ([]*entity.Material, error) {
	defer r.v.rlock()()
	out := make([]*entity.Material, 0)
	for _, m := range r.v.d.materiales {
		if m.Activo && m.ConsumoAutomatico && m.ConsumoDiario.IsPositive() {
			m := m
			out = append(out, &m)
		}
	}
	sortMateriales(out)
	return out, nil
}

func sortMateriales(ms []*entity.Material) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Nombre != ms[j].Nombre {
			return ms[i].Nombre < ms[j].Nombre
		}
		return ms[i].ID < ms[j].ID
	})
}

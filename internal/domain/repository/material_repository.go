package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para el catálogo de materiales.
// GetByID y GetByZonaAndClave devuelven (nil, nil) si no existe.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByZonaAndClave(ctx context.Context, zonaID, clave string) (*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	ListByZona(ctx context.Context, zonaID string, soloActivos bool) ([]*entity.Material, error)
	// ListAutomaticos devuelve los materiales activos con consumo automático y consumo diario > 0.
	ListAutomaticos(ctx context.Context) ([]*entity.Material, error)
}

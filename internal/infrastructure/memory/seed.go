package memory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// zonasIniciales las mismas zonas que siembra la migración de PostgreSQL.
var zonasIniciales = []struct{ codigo, nombre string }{
	{entity.ZonaDesposte, "Desposte"},
	{entity.ZonaDesprese, "Desprese"},
	{entity.ZonaPanificadora, "Panificadora"},
}

// SeedZonas crea las zonas de producción si aún no existen.
func (s *Store) SeedZonas(ctx context.Context) error {
	repo := s.Zonas()
	now := time.Now()
	for _, z := range zonasIniciales {
		err := repo.Create(ctx, &entity.Zona{
			ID:        uuid.New().String(),
			Codigo:    z.codigo,
			Nombre:    z.nombre,
			Activa:    true,
			CreatedAt: now,
		})
		if err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return nil
}

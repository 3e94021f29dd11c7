package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// ZonaRepository define el puerto de persistencia para Zona (DIP).
type ZonaRepository interface {
	Create(ctx context.Context, zona *entity.Zona) error
	GetByID(ctx context.Context, id string) (*entity.Zona, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Zona, error)
	List(ctx context.Context) ([]*entity.Zona, error)
}

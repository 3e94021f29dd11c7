package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// ZonaUseCase casos de uso de zonas de producción.
type ZonaUseCase struct {
	repo repository.ZonaRepository
}

// NewZonaUseCase construye el caso de uso.
func NewZonaUseCase(repo repository.ZonaRepository) *ZonaUseCase {
	return &ZonaUseCase{repo: repo}
}

// Create crea una zona. Solo admin; el código se normaliza a minúsculas y debe ser único.
func (uc *ZonaUseCase) Create(ctx context.Context, actor auth.Actor, in dto.CreateZonaRequest) (*dto.ZonaResponse, error) {
	if !actor.EsAdmin() {
		return nil, domain.ErrForbidden
	}
	codigo := strings.ToLower(strings.TrimSpace(in.Codigo))
	nombre := strings.TrimSpace(in.Nombre)
	if codigo == "" || nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	zona := &entity.Zona{
		ID:        uuid.New().String(),
		Codigo:    codigo,
		Nombre:    nombre,
		Activa:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, zona); err != nil {
		return nil, err
	}
	return toZonaResponse(zona), nil
}

// GetByID obtiene una zona; ErrNotFound si no existe.
func (uc *ZonaUseCase) GetByID(ctx context.Context, actor auth.Actor, id string) (*dto.ZonaResponse, error) {
	if err := actor.CheckZona(id); err != nil {
		return nil, err
	}
	zona, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if zona == nil {
		return nil, domain.ErrNotFound
	}
	return toZonaResponse(zona), nil
}

// List lista las zonas visibles para el actor (activas primero, por nombre).
func (uc *ZonaUseCase) List(ctx context.Context, actor auth.Actor) ([]dto.ZonaResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZonaResponse, 0, len(list))
	for _, z := range list {
		if actor.PuedeOperarZona(z.ID) {
			out = append(out, *toZonaResponse(z))
		}
	}
	return out, nil
}

func toZonaResponse(z *entity.Zona) *dto.ZonaResponse {
	return &dto.ZonaResponse{
		ID:        z.ID,
		Codigo:    z.Codigo,
		Nombre:    z.Nombre,
		Activa:    z.Activa,
		CreatedAt: z.CreatedAt,
	}
}

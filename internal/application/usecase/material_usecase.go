package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// MaterialUseCase casos de uso del catálogo de materiales de una zona.
type MaterialUseCase struct {
	repo        repository.MaterialRepository
	zonaRepo    repository.ZonaRepository
	txRunner    inventory.TxRunner
	invalidator inventory.ZonaInvalidator
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	repo repository.MaterialRepository,
	zonaRepo repository.ZonaRepository,
	txRunner inventory.TxRunner,
	invalidator inventory.ZonaInvalidator,
) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, zonaRepo: zonaRepo, txRunner: txRunner, invalidator: invalidator}
}

// Create crea un material en la zona. El nombre se guarda en formato título y su clave
// normalizada (sin tildes, minúsculas) debe ser única en la zona.
func (uc *MaterialUseCase) Create(ctx context.Context, actor auth.Actor, zonaID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	zona, err := uc.zonaRepo.GetByID(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	if zona == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	m := &entity.Material{
		ID:                uuid.New().String(),
		ZonaID:            zonaID,
		Codigo:            strings.TrimSpace(in.Codigo),
		Nombre:            domaininv.NombreVisible(in.Nombre),
		NombreClave:       domaininv.ClaveNombre(in.Nombre),
		Unidad:            strings.ToLower(strings.TrimSpace(in.Unidad)),
		PesoPorBulto:      in.PesoPorBulto,
		ConsumoDiario:     in.ConsumoDiario,
		ConsumoAutomatico: in.ConsumoAutomatico,
		StockMinimo:       in.StockMinimo,
		Activo:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByZonaAndClave(ctx, zonaID, m.NombreClave)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateZona(ctx, zonaID)
	return toMaterialResponse(m), nil
}

// GetByID obtiene un material; ErrNotFound si no existe.
func (uc *MaterialUseCase) GetByID(ctx context.Context, actor auth.Actor, id string) (*dto.MaterialResponse, error) {
	m, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Update actualiza los campos no nil. La unidad solo puede cambiar si el material no tiene saldo ni reserva.
func (uc *MaterialUseCase) Update(ctx context.Context, actor auth.Actor, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	nombreCambia, unidadCambia := false, false
	if in.Codigo != nil {
		m.Codigo = strings.TrimSpace(*in.Codigo)
	}
	if in.Nombre != nil {
		clave := domaininv.ClaveNombre(*in.Nombre)
		nombreCambia = clave != m.NombreClave
		m.Nombre = domaininv.NombreVisible(*in.Nombre)
		m.NombreClave = clave
	}
	if in.Unidad != nil {
		unidad := strings.ToLower(strings.TrimSpace(*in.Unidad))
		unidadCambia = unidad != m.Unidad
		m.Unidad = unidad
	}
	if in.PesoPorBulto != nil {
		m.PesoPorBulto = *in.PesoPorBulto
	}
	if in.ConsumoDiario != nil {
		m.ConsumoDiario = *in.ConsumoDiario
	}
	if in.ConsumoAutomatico != nil {
		m.ConsumoAutomatico = *in.ConsumoAutomatico
	}
	if in.StockMinimo != nil {
		m.StockMinimo = *in.StockMinimo
	}
	if in.Activo != nil {
		m.Activo = *in.Activo
	}
	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	if nombreCambia {
		existing, err := uc.repo.GetByZonaAndClave(ctx, m.ZonaID, m.NombreClave)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != m.ID {
			return nil, domain.ErrDuplicate
		}
	}
	m.UpdatedAt = time.Now()
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		if unidadCambia {
			// El saldo general y la reserva están expresados en la unidad anterior
			stock, err := r.Stock.GetForUpdate(ctx, m.ID)
			if err != nil {
				return err
			}
			res, err := r.Reservas.GetForUpdate(ctx, m.ID)
			if err != nil {
				return err
			}
			if !stock.IsZero() || !res.Cantidad.IsZero() {
				return domain.ErrConflict
			}
		}
		return r.Materiales.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateZona(ctx, m.ZonaID)
	return toMaterialResponse(m), nil
}

// Deactivate da de baja el material (borrado lógico); su historial se conserva.
func (uc *MaterialUseCase) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	m, err := uc.get(ctx, actor, id)
	if err != nil {
		return err
	}
	if !m.Activo {
		return nil
	}
	m.Activo = false
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return err
	}
	uc.invalidator.InvalidateZona(ctx, m.ZonaID)
	return nil
}

// List lista los materiales de la zona, opcionalmente solo los activos.
func (uc *MaterialUseCase) List(ctx context.Context, actor auth.Actor, zonaID string, soloActivos bool) ([]dto.MaterialResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByZona(ctx, zonaID, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

func (uc *MaterialUseCase) get(ctx context.Context, actor auth.Actor, id string) (*entity.Material, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(m.ZonaID); err != nil {
		return nil, err
	}
	return m, nil
}

func validateMaterial(m *entity.Material) error {
	if m.Codigo == "" || m.NombreClave == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidUnidad(m.Unidad) {
		return domain.ErrInvalidInput
	}
	if m.Unidad == entity.UnidadBulto && !m.PesoPorBulto.IsPositive() {
		return domain.ErrInvalidInput
	}
	if m.PesoPorBulto.IsNegative() || m.ConsumoDiario.IsNegative() || m.StockMinimo.IsNegative() {
		return domain.ErrInvalidInput
	}
	if m.ConsumoAutomatico && !m.ConsumoDiario.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:                m.ID,
		ZonaID:            m.ZonaID,
		Codigo:            m.Codigo,
		Nombre:            m.Nombre,
		Unidad:            m.Unidad,
		PesoPorBulto:      m.PesoPorBulto,
		ConsumoDiario:     m.ConsumoDiario,
		ConsumoAutomatico: m.ConsumoAutomatico,
		StockMinimo:       m.StockMinimo,
		Activo:            m.Activo,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

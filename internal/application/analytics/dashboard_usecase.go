// Package analytics contiene los casos de uso de resumen para el dashboard de zona.
package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/domain"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// StockItems calcula el saldo y la cobertura de los materiales de una zona.
type StockItems interface {
	ItemsZona(ctx context.Context, zonaID string) ([]dto.StockItemDTO, error)
}

// DashboardUseCase genera el resumen operativo de una zona.
//
// Fuente de datos: AnalyticsRepository y PedidoRepository (consultas read-only) más
// el cálculo de cobertura del caso de uso de stock.
type DashboardUseCase struct {
	zonaRepo      repository.ZonaRepository
	analyticsRepo repository.AnalyticsRepository
	pedidoRepo    repository.PedidoRepository
	stock         StockItems
	loc           *time.Location
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	zonaRepo repository.ZonaRepository,
	analyticsRepo repository.AnalyticsRepository,
	pedidoRepo repository.PedidoRepository,
	stock StockItems,
	loc *time.Location,
) *DashboardUseCase {
	return &DashboardUseCase{
		zonaRepo:      zonaRepo,
		analyticsRepo: analyticsRepo,
		pedidoRepo:    pedidoRepo,
		stock:         stock,
		loc:           loc,
	}
}

// GetZona construye el DashboardZonaDTO de la zona.
//
// Cuatro consultas en paralelo:
//  1. CountMateriales        → Materiales
//  2. ItemsZona              → CoberturaPorEstado + Alertas
//  3. CountPendientes        → PedidosPendientes
//  4. CanastillasPrestadas   → CanastillasPrestadas
func (uc *DashboardUseCase) GetZona(ctx context.Context, actor auth.Actor, zonaID string) (*dto.DashboardZonaDTO, error) {
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

	out := &dto.DashboardZonaDTO{
		ZonaID:             zonaID,
		Fecha:              dto.FormatFecha(time.Now().In(uc.loc)),
		CoberturaPorEstado: make(map[string]int),
		Alertas:            []dto.StockItemDTO{},
	}
	var items []dto.StockItemDTO

	// Cada goroutine escribe un campo distinto; el primer error cancela gctx.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountMateriales(gctx, zonaID)
		out.Materiales = n
		return err
	})
	g.Go(func() error {
		var err error
		items, err = uc.stock.ItemsZona(gctx, zonaID)
		return err
	})
	g.Go(func() error {
		n, err := uc.pedidoRepo.CountPendientes(gctx, zonaID)
		out.PedidosPendientes = n
		return err
	})
	g.Go(func() error {
		n, err := uc.analyticsRepo.CanastillasPrestadas(gctx, zonaID)
		out.CanastillasPrestadas = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, it := range items {
		out.CoberturaPorEstado[it.Estado]++
		if it.Estado == domaininv.CoberturaAgotado || it.Estado == domaininv.CoberturaCritico {
			out.Alertas = append(out.Alertas, it)
		}
	}
	return out, nil
}

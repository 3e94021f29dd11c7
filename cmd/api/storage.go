package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/internal/infrastructure/memory"
	"github.com/jhoicas/insumos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/insumos-api/pkg/config"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// storage repositorios fuera de transacción más el runner, sea cual sea el driver.
type storage struct {
	TxRunner    inventory.TxRunner
	Zonas       repository.ZonaRepository
	Materiales  repository.MaterialRepository
	Movimientos repository.InventoryMovementRepository
	Stock       repository.StockRepository
	Pedidos     repository.PedidoRepository
	Consumos    repository.ConsumoRepository
	Reservas    repository.ReservaRepository
	Prestamos   repository.PrestamoRepository
	Analytics   repository.AnalyticsRepository
	close       func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	switch cfg.Driver {
	case config.DBMemory:
		s := memory.NewStore()
		if err := s.SeedZonas(ctx); err != nil {
			return nil, fmt.Errorf("sembrar zonas: %w", err)
		}
		log.Warn().Msg("DB_DRIVER=memory: los datos no se persisten")
		return &storage{
			TxRunner:    s,
			Zonas:       s.Zonas(),
			Materiales:  s.Materiales(),
			Movimientos: s.Movimientos(),
			Stock:       s.Stock(),
			Pedidos:     s.Pedidos(),
			Consumos:    s.Consumos(),
			Reservas:    s.Reservas(),
			Prestamos:   s.Prestamos(),
			Analytics:   s.Analytics(),
			close:       func() {},
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Info().Strs("migraciones", applied).Msg("esquema actualizado")
		}
		return &storage{
			TxRunner:    postgres.NewTxRunner(pool),
			Zonas:       postgres.NewZonaRepository(pool),
			Materiales:  postgres.NewMaterialRepository(pool),
			Movimientos: postgres.NewInventoryMovementRepository(pool),
			Stock:       postgres.NewStockRepository(pool),
			Pedidos:     postgres.NewPedidoRepository(pool),
			Consumos:    postgres.NewConsumoRepository(pool),
			Reservas:    postgres.NewReservaRepository(pool),
			Prestamos:   postgres.NewPrestamoRepository(pool),
			Analytics:   postgres.NewAnalyticsRepository(pool),
			close:       pool.Close,
		}, nil
	}
}

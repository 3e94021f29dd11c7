package repository

import (
	"context"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// PrestamoRepository define el puerto de persistencia de préstamos de canastillas.
type PrestamoRepository interface {
	Create(ctx context.Context, p *entity.Prestamo) error
	// GetByID devuelve el préstamo con sus devoluciones o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Prestamo, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Prestamo, error)
	// UpdateSaldo persiste cantidad devuelta y estado.
	UpdateSaldo(ctx context.Context, p *entity.Prestamo) error
	CreateDevolucion(ctx context.Context, d *entity.Devolucion) error
	ListByZona(ctx context.Context, zonaID, estado string, limit, offset int) ([]*entity.Prestamo, error)
	SaldosPorTercero(ctx context.Context, zonaID string) ([]entity.SaldoTercero, error)
}

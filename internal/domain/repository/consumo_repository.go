package repository

import (
	"context"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// ConsumoRepository define el puerto para registros de consumo (manual y automático).
type ConsumoRepository interface {
	Create(ctx context.Context, c *entity.Consumo) error
	// ExistsAutomatico informa si ya se aplicó el consumo automático del material en la fecha.
	ExistsAutomatico(ctx context.Context, materialID string, fecha time.Time) (bool, error)
	ListByZona(ctx context.Context, zonaID string, from, to time.Time) ([]*entity.Consumo, error)
}

// ReservaRepository define el puerto del stock reservado para consumo automático.
type ReservaRepository interface {
	// GetForUpdate devuelve la reserva bloqueada; si no existe devuelve cantidad cero.
	GetForUpdate(ctx context.Context, materialID string) (*entity.Reserva, error)
	Upsert(ctx context.Context, r *entity.Reserva) error
	ListByZona(ctx context.Context, zonaID string) ([]*entity.Reserva, error)
}

// Package consumo registra el gasto de insumos: consumo manual, reservas para el
// consumo automático y la rutina diaria que descuenta la reserva.
package consumo

import (
	"context"
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
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// maxDiasRango límite del rango de fechas al listar consumos.
const maxDiasRango = 366

// MovementRegistrar registra movimientos dentro de una transacción abierta.
type MovementRegistrar interface {
	RegisterInTx(ctx context.Context, r inventory.TxRepos, in inventory.TxMovement) (*entity.Movimiento, error)
}

// ConsumoUseCase casos de uso de consumo manual, reservas y consumo automático.
type ConsumoUseCase struct {
	txRunner     inventory.TxRunner
	materialRepo repository.MaterialRepository
	consumoRepo  repository.ConsumoRepository
	reservaRepo  repository.ReservaRepository
	movements    MovementRegistrar
	invalidator  inventory.ZonaInvalidator
	loc          *time.Location
	log          *logger.Logger
	now          func() time.Time
}

// NewConsumoUseCase construye el caso de uso.
func NewConsumoUseCase(
	txRunner inventory.TxRunner,
	materialRepo repository.MaterialRepository,
	consumoRepo repository.ConsumoRepository,
	reservaRepo repository.ReservaRepository,
	movements MovementRegistrar,
	invalidator inventory.ZonaInvalidator,
	loc *time.Location,
	log *logger.Logger,
) *ConsumoUseCase {
	return &ConsumoUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		consumoRepo:  consumoRepo,
		reservaRepo:  reservaRepo,
		movements:    movements,
		invalidator:  invalidator,
		loc:          loc,
		log:          log,
		now:          time.Now,
	}
}

// RegistrarManual descuenta del stock general el consumo de un material en una fecha:
// movimiento de salida (motivo consumo_manual) y registro de consumo en una sola transacción.
func (uc *ConsumoUseCase) RegistrarManual(ctx context.Context, actor auth.Actor, in dto.RegisterConsumoRequest) (*dto.ConsumoResponse, error) {
	if !in.Cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.material(ctx, actor, in.MaterialID)
	if err != nil {
		return nil, err
	}
	qty, err := domaininv.ToBase(in.Cantidad, in.Unidad, material)
	if err != nil {
		return nil, err
	}
	fecha, err := dto.ParseFecha(in.Fecha, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}

	c := &entity.Consumo{
		ID:         uuid.New().String(),
		MaterialID: material.ID,
		ZonaID:     material.ZonaID,
		Fecha:      fecha,
		Cantidad:   qty,
		Origen:     entity.ConsumoManual,
		CreatedBy:  actor.UserID,
		CreatedAt:  uc.now(),
	}
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		if _, err := uc.movements.RegisterInTx(ctx, r, inventory.TxMovement{
			Material:   material,
			Tipo:       entity.MovimientoSalida,
			Cantidad:   qty,
			Motivo:     entity.MotivoConsumoManual,
			Referencia: c.ID,
			Fecha:      fecha,
			UserID:     actor.UserID,
		}); err != nil {
			return err
		}
		return r.Consumos.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateZona(ctx, material.ZonaID)
	return toConsumoResponse(c), nil
}

// ListByZona lista los consumos (manuales y automáticos) de la zona entre desde y hasta, inclusive.
// Sin hasta se usa hoy; sin desde, los últimos 7 días.
func (uc *ConsumoUseCase) ListByZona(ctx context.Context, actor auth.Actor, zonaID, desde, hasta string) ([]dto.ConsumoResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	to, err := dto.ParseFecha(hasta, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}
	from := to.AddDate(0, 0, -6)
	if desde != "" {
		if from, err = dto.ParseFecha(desde, uc.loc, uc.now()); err != nil {
			return nil, err
		}
	}
	if from.After(to) || to.Sub(from) > maxDiasRango*24*time.Hour {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.consumoRepo.ListByZona(ctx, zonaID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toConsumoResponse(c))
	}
	return out, nil
}

// Reservar aparta stock general para el consumo automático del material.
func (uc *ConsumoUseCase) Reservar(ctx context.Context, actor auth.Actor, in dto.ReservaRequest) (*dto.ReservaResponse, error) {
	material, qty, err := uc.reservaInput(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	if !material.ConsumoAutomatico {
		return nil, domain.ErrInvalidInput
	}
	fecha := uc.hoy()

	var res *entity.Reserva
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		if _, err := uc.movements.RegisterInTx(ctx, r, inventory.TxMovement{
			Material: material,
			Tipo:     entity.MovimientoSalida,
			Cantidad: qty,
			Motivo:   entity.MotivoReserva,
			Fecha:    fecha,
			UserID:   actor.UserID,
		}); err != nil {
			return err
		}
		var err error
		res, err = r.Reservas.GetForUpdate(ctx, material.ID)
		if err != nil {
			return err
		}
		res.Cantidad = res.Cantidad.Add(qty)
		res.UpdatedAt = uc.now()
		return r.Reservas.Upsert(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateZona(ctx, material.ZonaID)
	return toReservaResponse(res), nil
}

// Liberar devuelve al stock general parte de la reserva del material.
func (uc *ConsumoUseCase) Liberar(ctx context.Context, actor auth.Actor, in dto.ReservaRequest) (*dto.ReservaResponse, error) {
	material, qty, err := uc.reservaInput(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	fecha := uc.hoy()

	var res *entity.Reserva
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		var err error
		res, err = r.Reservas.GetForUpdate(ctx, material.ID)
		if err != nil {
			return err
		}
		if res.Cantidad.LessThan(qty) {
			return domain.ErrInsufficientStock
		}
		res.Cantidad = res.Cantidad.Sub(qty)
		res.UpdatedAt = uc.now()
		if err := r.Reservas.Upsert(ctx, res); err != nil {
			return err
		}
		_, err = uc.movements.RegisterInTx(ctx, r, inventory.TxMovement{
			Material: material,
			Tipo:     entity.MovimientoEntrada,
			Cantidad: qty,
			Motivo:   entity.MotivoLiberacionReserva,
			Fecha:    fecha,
			UserID:   actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateZona(ctx, material.ZonaID)
	return toReservaResponse(res), nil
}

// ListReservas devuelve las reservas de la zona.
func (uc *ConsumoUseCase) ListReservas(ctx context.Context, actor auth.Actor, zonaID string) ([]dto.ReservaResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	list, err := uc.reservaRepo.ListByZona(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReservaResponse(r))
	}
	return out, nil
}

func (uc *ConsumoUseCase) reservaInput(ctx context.Context, actor auth.Actor, in dto.ReservaRequest) (*entity.Material, decimal.Decimal, error) {
	if !in.Cantidad.IsPositive() {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	material, err := uc.material(ctx, actor, in.MaterialID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	qty, err := domaininv.ToBase(in.Cantidad, in.Unidad, material)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return material, qty, nil
}

func (uc *ConsumoUseCase) material(ctx context.Context, actor auth.Actor, id string) (*entity.Material, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(m.ZonaID); err != nil {
		return nil, err
	}
	if !m.Activo {
		return nil, domain.ErrConflict
	}
	return m, nil
}

func (uc *ConsumoUseCase) hoy() time.Time {
	n := uc.now().In(uc.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc)
}

func toConsumoResponse(c *entity.Consumo) *dto.ConsumoResponse {
	return &dto.ConsumoResponse{
		ID:         c.ID,
		MaterialID: c.MaterialID,
		ZonaID:     c.ZonaID,
		Fecha:      dto.FormatFecha(c.Fecha),
		Cantidad:   c.Cantidad,
		Origen:     c.Origen,
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt,
	}
}

func toReservaResponse(r *entity.Reserva) *dto.ReservaResponse {
	return &dto.ReservaResponse{
		MaterialID: r.MaterialID,
		Cantidad:   r.Cantidad,
		UpdatedAt:  r.UpdatedAt,
	}
}

package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos en el libro de inventario de forma transaccional.
// Las salidas bloquean la fila del material (SELECT FOR UPDATE) y nunca dejan saldo negativo.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	invalidator  ZonaInvalidator
	loc          *time.Location
	now          func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	invalidator ZonaInvalidator,
	loc *time.Location,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		invalidator:  invalidator,
		loc:          loc,
		now:          time.Now,
	}
}

// TxMovement movimiento a registrar dentro de una transacción abierta por otro caso de uso.
// Cantidad va en unidad base: magnitud positiva para entrada/salida, con signo para ajuste.
type TxMovement struct {
	Material   *entity.Material
	Tipo       string
	Cantidad   decimal.Decimal
	Motivo     string
	Referencia string
	Fecha      time.Time
	UserID     string
}

// RegisterMovement valida la entrada, convierte la cantidad a la unidad base del material
// y la registra en una transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, actor auth.Actor, in dto.RegisterMovementRequest) (*dto.MovimientoResponse, error) {
	switch in.Tipo {
	case entity.MovimientoEntrada, entity.MovimientoSalida:
		if !in.Cantidad.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovimientoAjuste:
		if in.Cantidad.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}

	material, err := uc.materialRepo.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(material.ZonaID); err != nil {
		return nil, err
	}
	if !material.Activo {
		return nil, domain.ErrConflict
	}

	qty, err := domaininv.ToBase(in.Cantidad, in.Unidad, material)
	if err != nil {
		return nil, err
	}
	fecha, err := dto.ParseFecha(in.Fecha, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}

	var mov *entity.Movimiento
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		var err error
		mov, err = uc.RegisterInTx(ctx, r, TxMovement{
			Material:   material,
			Tipo:       in.Tipo,
			Cantidad:   qty,
			Motivo:     entity.MotivoManual,
			Referencia: in.Referencia,
			Fecha:      fecha,
			UserID:     actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateZona(ctx, material.ZonaID)
	return ToMovimientoResponse(mov), nil
}

// RegisterInTx registra un movimiento usando los repositorios de la transacción del caller.
// Lo usan pedidos (entradas por recepción), consumo manual y reservas.
func (uc *RegisterMovementUseCase) RegisterInTx(ctx context.Context, r TxRepos, in TxMovement) (*entity.Movimiento, error) {
	signed := in.Cantidad
	switch in.Tipo {
	case entity.MovimientoEntrada:
		if !signed.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovimientoSalida:
		if !signed.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		signed = signed.Neg()
	case entity.MovimientoAjuste:
		if signed.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if signed.IsNegative() {
		// Bloquea la fila del material para que dos salidas concurrentes no dejen saldo negativo
		saldo, err := r.Stock.GetForUpdate(ctx, in.Material.ID)
		if err != nil {
			return nil, err
		}
		if saldo.Add(signed).IsNegative() {
			return nil, domain.ErrInsufficientStock
		}
	}

	mov := &entity.Movimiento{
		ID:         uuid.New().String(),
		MaterialID: in.Material.ID,
		ZonaID:     in.Material.ZonaID,
		Tipo:       in.Tipo,
		Cantidad:   signed,
		Unidad:     in.Material.Unidad,
		Motivo:     in.Motivo,
		Referencia: in.Referencia,
		Fecha:      in.Fecha,
		CreatedBy:  in.UserID,
		CreatedAt:  uc.now(),
	}
	if err := r.Movimientos.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ToMovimientoResponse mapea la entidad al DTO de salida.
func ToMovimientoResponse(m *entity.Movimiento) *dto.MovimientoResponse {
	if m == nil {
		return nil
	}
	return &dto.MovimientoResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		ZonaID:     m.ZonaID,
		Tipo:       m.Tipo,
		Cantidad:   m.Cantidad,
		Unidad:     m.Unidad,
		Motivo:     m.Motivo,
		Referencia: m.Referencia,
		Fecha:      m.Fecha,
		CreatedBy:  m.CreatedBy,
	}
}

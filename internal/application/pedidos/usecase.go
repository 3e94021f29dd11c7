// Package pedidos implementa el ciclo de vida de los pedidos de insumos:
// borrador → enviado → recibido → completado, con cancelación desde borrador o enviado.
package pedidos

import (
	"context"
	"fmt"
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
	domainpedido "github.com/jhoicas/insumos-api/internal/domain/pedido"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// MovementRegistrar registra movimientos dentro de una transacción abierta.
type MovementRegistrar interface {
	RegisterInTx(ctx context.Context, r inventory.TxRepos, in inventory.TxMovement) (*entity.Movimiento, error)
}

// PedidoUseCase casos de uso de pedidos.
type PedidoUseCase struct {
	txRunner     inventory.TxRunner
	pedidoRepo   repository.PedidoRepository
	materialRepo repository.MaterialRepository
	zonaRepo     repository.ZonaRepository
	movements    MovementRegistrar
	invalidator  inventory.ZonaInvalidator
	loc          *time.Location
	now          func() time.Time
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(
	txRunner inventory.TxRunner,
	pedidoRepo repository.PedidoRepository,
	materialRepo repository.MaterialRepository,
	zonaRepo repository.ZonaRepository,
	movements MovementRegistrar,
	invalidator inventory.ZonaInvalidator,
	loc *time.Location,
) *PedidoUseCase {
	return &PedidoUseCase{
		txRunner:     txRunner,
		pedidoRepo:   pedidoRepo,
		materialRepo: materialRepo,
		zonaRepo:     zonaRepo,
		movements:    movements,
		invalidator:  invalidator,
		loc:          loc,
		now:          time.Now,
	}
}

// FormatNumero da formato al consecutivo de zona: PED-000042.
func FormatNumero(n int64) string {
	return fmt.Sprintf("PED-%06d", n)
}

// Create crea un pedido en borrador con al menos una línea.
func (uc *PedidoUseCase) Create(ctx context.Context, actor auth.Actor, zonaID string, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
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
	fechaEntrega, err := uc.parseFechaEntrega(in.FechaEntrega)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	p := &entity.Pedido{
		ID:            uuid.New().String(),
		ZonaID:        zonaID,
		Estado:        entity.PedidoBorrador,
		Proveedor:     strings.TrimSpace(in.Proveedor),
		FechaEntrega:  fechaEntrega,
		Observaciones: in.Observaciones,
		CreatedBy:     actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.Items, err = uc.buildItems(ctx, p, in.Items)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		n, err := r.Pedidos.NextNumero(ctx, zonaID)
		if err != nil {
			return err
		}
		p.Numero = FormatNumero(n)
		return r.Pedidos.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPedidoResponse(p), nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *PedidoUseCase) GetByID(ctx context.Context, actor auth.Actor, id string) (*dto.PedidoResponse, error) {
	p, err := uc.pedidoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(p.ZonaID); err != nil {
		return nil, err
	}
	return toPedidoResponse(p), nil
}

// List lista los pedidos de la zona, más recientes primero; estado vacío = todos.
func (uc *PedidoUseCase) List(ctx context.Context, actor auth.Actor, zonaID, estado string, limit, offset int) (*dto.PedidoListResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	switch estado {
	case "", entity.PedidoBorrador, entity.PedidoEnviado, entity.PedidoRecibido, entity.PedidoCompletado, entity.PedidoCancelado:
	default:
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.pedidoRepo.ListByZona(ctx, zonaID, estado, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPedidoResponse(p))
	}
	return &dto.PedidoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ReplaceItems reemplaza las líneas de un pedido en borrador.
func (uc *PedidoUseCase) ReplaceItems(ctx context.Context, actor auth.Actor, id string, in dto.UpdatePedidoItemsRequest) (*dto.PedidoResponse, error) {
	return uc.mutate(ctx, actor, id, func(ctx context.Context, r inventory.TxRepos, p *entity.Pedido) error {
		if !domainpedido.Editable(p) {
			return domain.ErrInvalidTransition
		}
		items, err := uc.buildItems(ctx, p, in.Items)
		if err != nil {
			return err
		}
		if err := r.Pedidos.ReplaceItems(ctx, p.ID, items); err != nil {
			return err
		}
		p.Items = items
		return nil
	})
}

// Enviar pasa el pedido de borrador a enviado.
func (uc *PedidoUseCase) Enviar(ctx context.Context, actor auth.Actor, id string) (*dto.PedidoResponse, error) {
	return uc.mutate(ctx, actor, id, func(_ context.Context, _ inventory.TxRepos, p *entity.Pedido) error {
		if len(p.Items) == 0 {
			return domain.ErrInvalidInput
		}
		if err := domainpedido.Transitar(p, entity.PedidoEnviado); err != nil {
			return err
		}
		now := uc.now()
		p.EnviadoAt = &now
		return nil
	})
}

// Recibir registra la recepción (total o parcial) de líneas de un pedido enviado o recibido.
// Cada línea recibida genera una entrada de inventario; si no queda nada pendiente el pedido
// pasa a completado, si no a recibido.
func (uc *PedidoUseCase) Recibir(ctx context.Context, actor auth.Actor, id string, in dto.RecibirPedidoRequest) (*dto.PedidoResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, actor, id, func(ctx context.Context, r inventory.TxRepos, p *entity.Pedido) error {
		if p.Estado != entity.PedidoEnviado && p.Estado != entity.PedidoRecibido {
			return domain.ErrInvalidTransition
		}
		fecha, err := dto.ParseFecha("", uc.loc, uc.now())
		if err != nil {
			return err
		}
		for _, rec := range in.Items {
			if !rec.Cantidad.IsPositive() {
				return domain.ErrInvalidInput
			}
			idx := indexOfItem(p.Items, rec.ItemID)
			if idx < 0 {
				return domain.ErrInvalidInput
			}
			item := &p.Items[idx]
			if rec.Cantidad.GreaterThan(item.Pendiente()) {
				return domain.ErrInvalidInput
			}

			material, err := r.Materiales.GetByID(ctx, item.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			qty, err := domaininv.ToBase(rec.Cantidad, item.Unidad, material)
			if err != nil {
				return err
			}
			if _, err := uc.movements.RegisterInTx(ctx, r, inventory.TxMovement{
				Material:   material,
				Tipo:       entity.MovimientoEntrada,
				Cantidad:   qty,
				Motivo:     entity.MotivoPedido,
				Referencia: p.Numero,
				Fecha:      fecha,
				UserID:     actor.UserID,
			}); err != nil {
				return err
			}

			item.CantidadRecibida = item.CantidadRecibida.Add(rec.Cantidad)
			if err := r.Pedidos.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
		if err := domainpedido.Transitar(p, domainpedido.EstadoTrasRecepcion(p.Items)); err != nil {
			return err
		}
		now := uc.now()
		p.RecibidoAt = &now
		return nil
	})
}

// Completar cierra un pedido recibido parcialmente; el faltante ya no se espera.
func (uc *PedidoUseCase) Completar(ctx context.Context, actor auth.Actor, id string) (*dto.PedidoResponse, error) {
	return uc.mutate(ctx, actor, id, func(_ context.Context, _ inventory.TxRepos, p *entity.Pedido) error {
		if p.Estado != entity.PedidoRecibido {
			return domain.ErrInvalidTransition
		}
		return domainpedido.Transitar(p, entity.PedidoCompletado)
	})
}

// Cancelar anula un pedido en borrador o enviado.
func (uc *PedidoUseCase) Cancelar(ctx context.Context, actor auth.Actor, id string) (*dto.PedidoResponse, error) {
	return uc.mutate(ctx, actor, id, func(_ context.Context, _ inventory.TxRepos, p *entity.Pedido) error {
		return domainpedido.Transitar(p, entity.PedidoCancelado)
	})
}

// mutate bloquea el pedido, aplica fn y persiste la cabecera en la misma transacción.
func (uc *PedidoUseCase) mutate(ctx context.Context, actor auth.Actor, id string, fn func(ctx context.Context, r inventory.TxRepos, p *entity.Pedido) error) (*dto.PedidoResponse, error) {
	var out *entity.Pedido
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		p, err := r.Pedidos.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := actor.CheckZona(p.ZonaID); err != nil {
			return err
		}
		if err := fn(ctx, r, p); err != nil {
			return err
		}
		p.UpdatedAt = uc.now()
		if err := r.Pedidos.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Estado == entity.PedidoRecibido || out.Estado == entity.PedidoCompletado {
		uc.invalidator.InvalidateZona(ctx, out.ZonaID)
	}
	return toPedidoResponse(out), nil
}

// buildItems valida las líneas: al menos una, cantidades > 0 y materiales activos de la zona del pedido.
func (uc *PedidoUseCase) buildItems(ctx context.Context, p *entity.Pedido, in []dto.PedidoItemRequest) ([]entity.PedidoItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.PedidoItem, 0, len(in))
	for _, it := range in {
		if it.MaterialID == "" || !it.Cantidad.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(ctx, it.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil || material.ZonaID != p.ZonaID || !material.Activo {
			return nil, domain.ErrInvalidInput
		}
		unidad := it.Unidad
		if unidad == "" {
			unidad = material.Unidad
		}
		// la unidad de la línea debe poder llevarse a la unidad base al recibir
		if _, err := domaininv.ToBase(it.Cantidad, unidad, material); err != nil {
			return nil, err
		}
		items = append(items, entity.PedidoItem{
			ID:               uuid.New().String(),
			PedidoID:         p.ID,
			MaterialID:       material.ID,
			Cantidad:         it.Cantidad,
			Unidad:           unidad,
			CantidadRecibida: decimal.Zero,
		})
	}
	return items, nil
}

func (uc *PedidoUseCase) parseFechaEntrega(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := dto.ParseFecha(s, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func indexOfItem(items []entity.PedidoItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func toPedidoResponse(p *entity.Pedido) *dto.PedidoResponse {
	items := make([]dto.PedidoItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PedidoItemResponse{
			ID:               it.ID,
			MaterialID:       it.MaterialID,
			Cantidad:         it.Cantidad,
			Unidad:           it.Unidad,
			CantidadRecibida: it.CantidadRecibida,
			Pendiente:        it.Pendiente(),
		})
	}
	return &dto.PedidoResponse{
		ID:            p.ID,
		ZonaID:        p.ZonaID,
		Numero:        p.Numero,
		Estado:        p.Estado,
		Proveedor:     p.Proveedor,
		FechaEntrega:  dto.FormatFechaPtr(p.FechaEntrega),
		Observaciones: p.Observaciones,
		Items:         items,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		EnviadoAt:     p.EnviadoAt,
		RecibidoAt:    p.RecibidoAt,
	}
}

// Package canastillas gestiona los préstamos de canastillas a terceros con firma de
// entrega y de cada devolución.
package canastillas

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/firma"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
)

// TipoPorDefecto tipo de canastilla cuando el préstamo no lo indica.
const TipoPorDefecto = "estandar"

// PrestamoUseCase casos de uso de préstamos de canastillas.
type PrestamoUseCase struct {
	txRunner     inventory.TxRunner
	prestamoRepo repository.PrestamoRepository
	zonaRepo     repository.ZonaRepository
	now          func() time.Time
}

// NewPrestamoUseCase construye el caso de uso.
func NewPrestamoUseCase(txRunner inventory.TxRunner, prestamoRepo repository.PrestamoRepository, zonaRepo repository.ZonaRepository) *PrestamoUseCase {
	return &PrestamoUseCase{
		txRunner:     txRunner,
		prestamoRepo: prestamoRepo,
		zonaRepo:     zonaRepo,
		now:          time.Now,
	}
}

// Prestar registra la entrega de canastillas a un tercero; la firma de quien recibe es obligatoria.
func (uc *PrestamoUseCase) Prestar(ctx context.Context, actor auth.Actor, zonaID string, in dto.CreatePrestamoRequest) (*dto.PrestamoResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	tercero := strings.TrimSpace(in.Tercero)
	if tercero == "" || in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	zona, err := uc.zonaRepo.GetByID(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	if zona == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	f, err := firma.Decode(in.Firma.Firmante, in.Firma.Imagen, now)
	if err != nil {
		return nil, err
	}
	tipo := strings.TrimSpace(in.TipoCanastilla)
	if tipo == "" {
		tipo = TipoPorDefecto
	}

	p := &entity.Prestamo{
		ID:               uuid.New().String(),
		ZonaID:           zonaID,
		Tercero:          tercero,
		TerceroDocumento: strings.TrimSpace(in.TerceroDocumento),
		TipoCanastilla:   tipo,
		CantidadPrestada: in.Cantidad,
		Estado:           entity.PrestamoAbierto,
		FirmaEntrega:     f,
		Observaciones:    in.Observaciones,
		CreatedBy:        actor.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.prestamoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPrestamoResponse(p, false), nil
}

// Devolver registra una devolución total o parcial (cantidad ≤ saldo) con su firma.
func (uc *PrestamoUseCase) Devolver(ctx context.Context, actor auth.Actor, id string, in dto.DevolucionRequest) (*dto.PrestamoResponse, error) {
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	f, err := firma.Decode(in.Firma.Firmante, in.Firma.Imagen, now)
	if err != nil {
		return nil, err
	}

	var out *entity.Prestamo
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		p, err := r.Prestamos.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := actor.CheckZona(p.ZonaID); err != nil {
			return err
		}
		if p.Estado == entity.PrestamoCerrado {
			return domain.ErrConflict
		}
		if in.Cantidad > p.Saldo() {
			return domain.ErrInvalidInput
		}

		d := entity.Devolucion{
			ID:         uuid.New().String(),
			PrestamoID: p.ID,
			Cantidad:   in.Cantidad,
			Firma:      f,
			Fecha:      now,
			CreatedBy:  actor.UserID,
		}
		if err := r.Prestamos.CreateDevolucion(ctx, &d); err != nil {
			return err
		}
		p.CantidadDevuelta += in.Cantidad
		p.Estado = EstadoPorSaldo(p)
		p.UpdatedAt = now
		if err := r.Prestamos.UpdateSaldo(ctx, p); err != nil {
			return err
		}
		p.Devoluciones = append(p.Devoluciones, d)
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPrestamoResponse(out, false), nil
}

// EstadoPorSaldo: abierto si no se ha devuelto nada, cerrado si el saldo es cero y parcial en otro caso.
func EstadoPorSaldo(p *entity.Prestamo) string {
	switch {
	case p.Saldo() <= 0:
		return entity.PrestamoCerrado
	case p.CantidadDevuelta == 0:
		return entity.PrestamoAbierto
	default:
		return entity.PrestamoParcial
	}
}

// GetByID devuelve el préstamo con sus devoluciones y las imágenes de las firmas.
func (uc *PrestamoUseCase) GetByID(ctx context.Context, actor auth.Actor, id string) (*dto.PrestamoResponse, error) {
	p, err := uc.prestamoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(p.ZonaID); err != nil {
		return nil, err
	}
	return toPrestamoResponse(p, true), nil
}

// List lista los préstamos de la zona; estado vacío = todos.
func (uc *PrestamoUseCase) List(ctx context.Context, actor auth.Actor, zonaID, estado string, limit, offset int) (*dto.PrestamoListResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	switch estado {
	case "", entity.PrestamoAbierto, entity.PrestamoParcial, entity.PrestamoCerrado:
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
	list, err := uc.prestamoRepo.ListByZona(ctx, zonaID, estado, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrestamoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPrestamoResponse(p, false))
	}
	return &dto.PrestamoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Saldos devuelve las canastillas pendientes por tercero (préstamos no cerrados).
func (uc *PrestamoUseCase) Saldos(ctx context.Context, actor auth.Actor, zonaID string) ([]dto.SaldoTerceroDTO, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	list, err := uc.prestamoRepo.SaldosPorTercero(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaldoTerceroDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SaldoTerceroDTO{
			Tercero:          s.Tercero,
			TerceroDocumento: s.TerceroDocumento,
			Prestamos:        s.Prestamos,
			Saldo:            s.Saldo,
		})
	}
	return out, nil
}

func toFirmaResponse(f entity.Firma, conImagen bool) dto.FirmaResponse {
	out := dto.FirmaResponse{Firmante: f.Firmante, Hash: f.Hash, FirmadoAt: f.FirmadoAt}
	if conImagen {
		out.Imagen = firma.DataURL(f)
	}
	return out
}

func toPrestamoResponse(p *entity.Prestamo, conImagen bool) *dto.PrestamoResponse {
	devs := make([]dto.DevolucionResponse, 0, len(p.Devoluciones))
	for _, d := range p.Devoluciones {
		devs = append(devs, dto.DevolucionResponse{
			ID:       d.ID,
			Cantidad: d.Cantidad,
			Firma:    toFirmaResponse(d.Firma, conImagen),
			Fecha:    d.Fecha,
		})
	}
	return &dto.PrestamoResponse{
		ID:               p.ID,
		ZonaID:           p.ZonaID,
		Tercero:          p.Tercero,
		TerceroDocumento: p.TerceroDocumento,
		TipoCanastilla:   p.TipoCanastilla,
		CantidadPrestada: p.CantidadPrestada,
		CantidadDevuelta: p.CantidadDevuelta,
		Saldo:            p.Saldo(),
		Estado:           p.Estado,
		FirmaEntrega:     toFirmaResponse(p.FirmaEntrega, conImagen),
		Observaciones:    p.Observaciones,
		Devoluciones:     devs,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

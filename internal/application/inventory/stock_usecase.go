package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
	"github.com/jhoicas/insumos-api/internal/domain/repository"
	"github.com/jhoicas/insumos-api/pkg/cache"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// StockUseCase consulta el inventario actual de una zona con su cobertura.
// Las respuestas se cachean por zona; cualquier escritura de la zona invalida la clave.
type StockUseCase struct {
	zonaRepo     repository.ZonaRepository
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
	reservaRepo  repository.ReservaRepository
	movRepo      repository.InventoryMovementRepository
	cache        cache.Cache
	ttl          time.Duration
	umbrales     domaininv.Umbrales
	loc          *time.Location
	log          *logger.Logger
	now          func() time.Time
}

// StockConfig parámetros del caso de uso de stock.
type StockConfig struct {
	TTL      time.Duration
	Umbrales domaininv.Umbrales
	Location *time.Location
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	zonaRepo repository.ZonaRepository,
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	reservaRepo repository.ReservaRepository,
	movRepo repository.InventoryMovementRepository,
	c cache.Cache,
	cfg StockConfig,
	log *logger.Logger,
) *StockUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Umbrales == (domaininv.Umbrales{}) {
		cfg.Umbrales = domaininv.UmbralesPorDefecto
	}
	return &StockUseCase{
		zonaRepo:     zonaRepo,
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		reservaRepo:  reservaRepo,
		movRepo:      movRepo,
		cache:        c,
		ttl:          cfg.TTL,
		umbrales:     cfg.Umbrales,
		loc:          cfg.Location,
		log:          log,
		now:          time.Now,
	}
}

func zonaCacheKey(zonaID string) string {
	return "inventario:zona:" + zonaID
}

// InvalidateZona implementa ZonaInvalidator. Un fallo del cache solo se registra:
// la clave expira sola con el TTL.
func (uc *StockUseCase) InvalidateZona(ctx context.Context, zonaID string) {
	if err := uc.cache.Delete(ctx, zonaCacheKey(zonaID)); err != nil {
		uc.log.Warn().Err(err).Str("zona_id", zonaID).Msg("no se pudo invalidar cache de inventario")
	}
}

// GetInventarioZona devuelve el saldo y la cobertura de cada material activo de la zona.
func (uc *StockUseCase) GetInventarioZona(ctx context.Context, actor auth.Actor, zonaID string) (*dto.InventarioZonaResponse, error) {
	if err := actor.CheckZona(zonaID); err != nil {
		return nil, err
	}
	key := zonaCacheKey(zonaID)
	if cached, ok, err := cache.GetJSON[dto.InventarioZonaResponse](ctx, uc.cache, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache no disponible, se consulta la BD")
	} else if ok {
		return &cached, nil
	}

	zona, err := uc.zonaRepo.GetByID(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	if zona == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.buildItems(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	out := dto.InventarioZonaResponse{
		ZonaID: zonaID,
		Fecha:  dto.FormatFecha(uc.hoy()),
		Items:  items,
	}
	if err := cache.SetJSON(ctx, uc.cache, key, out, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar inventario en cache")
	}
	return &out, nil
}

// ItemsZona calcula los ítems de inventario sin pasar por el cache. Lo usa el dashboard.
func (uc *StockUseCase) ItemsZona(ctx context.Context, zonaID string) ([]dto.StockItemDTO, error) {
	return uc.buildItems(ctx, zonaID)
}

func (uc *StockUseCase) buildItems(ctx context.Context, zonaID string) ([]dto.StockItemDTO, error) {
	materiales, err := uc.materialRepo.ListByZona(ctx, zonaID, true)
	if err != nil {
		return nil, err
	}
	saldos, err := uc.stockRepo.ListByZona(ctx, zonaID)
	if err != nil {
		return nil, err
	}
	reservas, err := uc.reservaRepo.ListByZona(ctx, zonaID)
	if err != nil {
		return nil, err
	}

	stockByID := make(map[string]decimal.Decimal, len(saldos))
	for _, s := range saldos {
		stockByID[s.MaterialID] = s.Cantidad
	}
	reservaByID := make(map[string]decimal.Decimal, len(reservas))
	for _, r := range reservas {
		reservaByID[r.MaterialID] = r.Cantidad
	}

	hoy := uc.hoy()
	items := make([]dto.StockItemDTO, 0, len(materiales))
	for _, m := range materiales {
		items = append(items, uc.toStockItem(m, stockByID[m.ID], reservaByID[m.ID], hoy))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Nombre < items[j].Nombre })
	return items, nil
}

func (uc *StockUseCase) toStockItem(m *entity.Material, stock, reservado decimal.Decimal, hoy time.Time) dto.StockItemDTO {
	// La reserva sigue siendo del material: la cobertura cuenta stock general + reservado
	cob := domaininv.CalcularCobertura(stock.Add(reservado), m.ConsumoDiario, hoy, uc.umbrales)
	item := dto.StockItemDTO{
		MaterialID:       m.ID,
		Codigo:           m.Codigo,
		Nombre:           m.Nombre,
		Unidad:           m.Unidad,
		Stock:            stock,
		Reservado:        reservado,
		ConsumoDiario:    m.ConsumoDiario,
		DiasCobertura:    cob.Dias,
		FechaAgotamiento: dto.FormatFechaPtr(cob.FechaAgotamiento),
		Estado:           cob.Estado,
		BajoMinimo:       m.StockMinimo.IsPositive() && stock.LessThan(m.StockMinimo),
	}
	if m.Unidad == entity.UnidadBulto && m.PesoPorBulto.IsPositive() {
		kg := stock.Mul(m.PesoPorBulto)
		item.StockKg = &kg
	}
	return item
}

// ListMovimientos devuelve el libro de un material en un rango de fechas (YYYY-MM-DD, opcionales).
func (uc *StockUseCase) ListMovimientos(ctx context.Context, actor auth.Actor, materialID, desde, hasta string, limit, offset int) (*dto.MovimientoListResponse, error) {
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(material.ZonaID); err != nil {
		return nil, err
	}
	from, err := uc.parseOptional(desde)
	if err != nil {
		return nil, err
	}
	to, err := uc.parseOptional(hasta)
	if err != nil {
		return nil, err
	}
	if to != nil {
		// hasta es inclusivo
		end := to.AddDate(0, 0, 1)
		to = &end
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

	movs, err := uc.movRepo.ListByMaterial(ctx, materialID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, *ToMovimientoResponse(m))
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Convert convierte una cantidad entre unidades usando el peso por bulto del material.
func (uc *StockUseCase) Convert(ctx context.Context, actor auth.Actor, materialID string, qty decimal.Decimal, de, a string) (*dto.ConversionResponse, error) {
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if err := actor.CheckZona(material.ZonaID); err != nil {
		return nil, err
	}
	if de == "" {
		de = material.Unidad
	}
	if a == "" {
		a = material.Unidad
	}
	res, err := domaininv.Convert(qty, de, a, material.PesoPorBulto)
	if err != nil {
		return nil, err
	}
	return &dto.ConversionResponse{
		MaterialID: materialID,
		Cantidad:   qty,
		De:         de,
		A:          a,
		Resultado:  res,
	}, nil
}

func (uc *StockUseCase) parseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseFecha(s, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (uc *StockUseCase) hoy() time.Time {
	n := uc.now().In(uc.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc)
}

package consumo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/inventory"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/insumos-api/internal/domain/inventory"
)

// errYaAplicado aborta la transacción de un material cuyo consumo del día ya existe.
var errYaAplicado = errors.New("consumo automático ya aplicado")

// Ejecutar dispara el consumo automático desde la API. Solo admin.
func (uc *ConsumoUseCase) Ejecutar(ctx context.Context, actor auth.Actor, in dto.EjecutarConsumoRequest) (*dto.ConsumoAutomaticoResponse, error) {
	if !actor.EsAdmin() {
		return nil, domain.ErrForbidden
	}
	fecha, err := dto.ParseFecha(in.Fecha, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}
	return uc.Aplicar(ctx, fecha)
}

// Aplicar descuenta de la reserva el consumo diario de cada material con consumo automático.
// Los domingos no se produce y no se descuenta nada. Cada material se procesa en su propia
// transacción y a lo sumo una vez por fecha; se consume min(consumo diario, reserva).
func (uc *ConsumoUseCase) Aplicar(ctx context.Context, fecha time.Time) (*dto.ConsumoAutomaticoResponse, error) {
	f := fecha.In(uc.loc)
	fecha = time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, uc.loc)
	out := &dto.ConsumoAutomaticoResponse{
		Fecha: dto.FormatFecha(fecha),
		Items: []dto.ConsumoAutomaticoItem{},
	}
	if domaininv.EsDomingo(fecha) {
		out.Omitido = true
		uc.log.Info().Str("fecha", out.Fecha).Msg("consumo automático omitido: domingo")
		return out, nil
	}

	materiales, err := uc.materialRepo.ListAutomaticos(ctx)
	if err != nil {
		return nil, err
	}
	zonas := make(map[string]struct{})
	invalidar := func(ctx context.Context) {
		for zonaID := range zonas {
			uc.invalidator.InvalidateZona(ctx, zonaID)
		}
	}
	for _, m := range materiales {
		if err := ctx.Err(); err != nil {
			// Los materiales ya descontados quedan confirmados; su caché no debe sobrevivir al corte
			invalidar(context.WithoutCancel(ctx))
			uc.log.Warn().Err(err).Str("fecha", out.Fecha).Int("aplicados", out.Aplicados).Msg("consumo automático interrumpido")
			return nil, err
		}
		item := uc.aplicarMaterial(ctx, m, fecha)
		if item.Resultado == dto.ResultadoAplicado {
			out.Aplicados++
			zonas[m.ZonaID] = struct{}{}
		}
		out.Items = append(out.Items, item)
	}
	invalidar(ctx)

	uc.log.Info().
		Str("fecha", out.Fecha).
		Int("materiales", len(materiales)).
		Int("aplicados", out.Aplicados).
		Msg("consumo automático ejecutado")
	return out, nil
}

func (uc *ConsumoUseCase) aplicarMaterial(ctx context.Context, m *entity.Material, fecha time.Time) dto.ConsumoAutomaticoItem {
	item := dto.ConsumoAutomaticoItem{MaterialID: m.ID, ZonaID: m.ZonaID, Resultado: dto.ResultadoAplicado}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, r inventory.TxRepos) error {
		existe, err := r.Consumos.ExistsAutomatico(ctx, m.ID, fecha)
		if err != nil {
			return err
		}
		if existe {
			return errYaAplicado
		}
		res, err := r.Reservas.GetForUpdate(ctx, m.ID)
		if err != nil {
			return err
		}
		item.ReservaRestante = res.Cantidad
		if !res.Cantidad.IsPositive() {
			item.Resultado = dto.ResultadoSinReserva
			return nil
		}

		consumido := decimal.Min(m.ConsumoDiario, res.Cantidad)
		res.Cantidad = res.Cantidad.Sub(consumido)
		res.UpdatedAt = uc.now()
		if err := r.Reservas.Upsert(ctx, res); err != nil {
			return err
		}
		err = r.Consumos.Create(ctx, &entity.Consumo{
			ID:         uuid.New().String(),
			MaterialID: m.ID,
			ZonaID:     m.ZonaID,
			Fecha:      fecha,
			Cantidad:   consumido,
			Origen:     entity.ConsumoAutomatico,
			CreatedAt:  uc.now(),
		})
		if errors.Is(err, domain.ErrDuplicate) {
			// otra ejecución concurrente ganó la carrera por (material, fecha)
			return errYaAplicado
		}
		if err != nil {
			return err
		}
		item.Consumido = consumido
		item.ReservaRestante = res.Cantidad
		return nil
	})

	switch {
	case errors.Is(err, errYaAplicado):
		item.Resultado = dto.ResultadoYaAplicado
		item.Consumido = decimal.Zero
	case err != nil:
		item.Resultado = dto.ResultadoError
		item.Error = err.Error()
		uc.log.Error().Err(err).Str("material_id", m.ID).Str("fecha", dto.FormatFecha(fecha)).Msg("consumo automático falló")
	default:
		uc.log.Debug().
			Str("material_id", m.ID).
			Str("resultado", item.Resultado).
			Str("consumido", item.Consumido.String()).
			Msg("consumo automático de material")
	}
	return item
}

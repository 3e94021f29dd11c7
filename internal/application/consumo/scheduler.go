package consumo

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

// Aplicador ejecuta el consumo automático de una fecha.
type Aplicador interface {
	Aplicar(ctx context.Context, fecha time.Time) (*dto.ConsumoAutomaticoResponse, error)
}

// Scheduler corre el consumo automático una vez al día a partir de la hora configurada.
// Si el proceso arranca después de esa hora y aún no ha corrido hoy, corre en el primer tick;
// los días en que el servicio estuvo caído no se recuperan.
type Scheduler struct {
	aplicador Aplicador
	hour      int
	loc       *time.Location
	interval  time.Duration
	log       *logger.Logger
	now       func() time.Time

	mu      sync.Mutex
	lastRun string // YYYY-MM-DD de la última ejecución exitosa
}

// NewScheduler construye el scheduler; hour es la hora local (0-23).
func NewScheduler(aplicador Aplicador, hour int, loc *time.Location, log *logger.Logger) *Scheduler {
	return &Scheduler{
		aplicador: aplicador,
		hour:      hour,
		loc:       loc,
		interval:  time.Minute,
		log:       log,
		now:       time.Now,
	}
}

// Run bloquea hasta que ctx se cancela, revisando cada minuto si toca ejecutar.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Int("hora", s.hour).Str("tz", s.loc.String()).Msg("scheduler de consumo automático iniciado")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler de consumo automático detenido")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick ejecuta el consumo del día si ya pasó la hora y no se ha corrido hoy. Devuelve true si corrió.
func (s *Scheduler) tick(ctx context.Context) bool {
	now := s.now().In(s.loc)
	hoy := now.Format(dto.DateLayout)

	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Hour() < s.hour || s.lastRun == hoy {
		return false
	}

	res, err := s.aplicador.Aplicar(ctx, now)
	if err != nil {
		// se reintenta en el siguiente tick
		s.log.Error().Err(err).Str("fecha", hoy).Msg("consumo automático programado falló")
		return false
	}
	s.lastRun = hoy
	s.log.Info().Str("fecha", res.Fecha).Int("aplicados", res.Aplicados).Bool("omitido", res.Omitido).Msg("consumo automático programado")
	return true
}

package consumo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

type fakeAplicador struct {
	fechas []string
	err    error
}

func (f *fakeAplicador) Aplicar(_ context.Context, fecha time.Time) (*dto.ConsumoAutomaticoResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.fechas = append(f.fechas, dto.FormatFecha(fecha))
	return &dto.ConsumoAutomaticoResponse{Fecha: dto.FormatFecha(fecha)}, nil
}

func TestScheduler_CorreUnaVezPorDiaDesdeLaHora(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	ap := &fakeAplicador{}
	s := NewScheduler(ap, 5, bogota, logger.Nop())

	now := time.Date(2026, 10, 16, 4, 59, 0, 0, bogota)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	assert.False(t, s.tick(ctx), "antes de la hora no corre")

	now = time.Date(2026, 10, 16, 5, 0, 0, 0, bogota)
	assert.True(t, s.tick(ctx))
	now = now.Add(3 * time.Hour)
	assert.False(t, s.tick(ctx), "ya corrió hoy")

	// 03:30 UTC del 17 sigue siendo el 16 en Bogotá
	now = time.Date(2026, 10, 17, 3, 30, 0, 0, time.UTC)
	assert.False(t, s.tick(ctx))

	now = time.Date(2026, 10, 17, 9, 0, 0, 0, bogota)
	assert.True(t, s.tick(ctx), "arranque tardío: corre en el primer tick después de la hora")
	assert.Equal(t, []string{"2026-10-16", "2026-10-17"}, ap.fechas)
}

func TestScheduler_ReintentaTrasError(t *testing.T) {
	ap := &fakeAplicador{err: errors.New("db caída")}
	s := NewScheduler(ap, 0, time.UTC, logger.Nop())
	s.now = func() time.Time { return time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC) }

	assert.False(t, s.tick(context.Background()))
	ap.err = nil
	assert.True(t, s.tick(context.Background()))
}

package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cobertura de un material.
const (
	CoberturaAgotado    = "agotado"
	CoberturaCritico    = "critico"
	CoberturaBajo       = "bajo"
	CoberturaOK         = "ok"
	CoberturaSinConsumo = "sin_consumo"
)

// Umbrales de días para clasificar la cobertura.
type Umbrales struct {
	Critico int
	Bajo    int
}

// UmbralesPorDefecto valores usados cuando la configuración no define otros.
var UmbralesPorDefecto = Umbrales{Critico: 3, Bajo: 7}

// Cobertura resultado de estimar cuántos días dura el stock de un material.
type Cobertura struct {
	Dias             *decimal.Decimal // nil si el material no tiene consumo diario
	FechaAgotamiento *time.Time
	Estado           string
}

// CalcularCobertura estima los días de cobertura (stock ÷ consumo diario, 1 decimal)
// y la fecha de agotamiento contada desde `desde` sin domingos.
func CalcularCobertura(stock, consumoDiario decimal.Decimal, desde time.Time, u Umbrales) Cobertura {
	if !stock.IsPositive() {
		c := Cobertura{Estado: CoberturaAgotado}
		if consumoDiario.IsPositive() {
			d := decimal.Zero
			f := truncDay(desde)
			c.Dias, c.FechaAgotamiento = &d, &f
		}
		return c
	}
	if !consumoDiario.IsPositive() {
		return Cobertura{Estado: CoberturaSinConsumo}
	}

	dias := stock.DivRound(consumoDiario, 1)
	fecha := FechaAgotamiento(desde, int(stock.Div(consumoDiario).IntPart()))

	estado := CoberturaOK
	switch {
	case dias.LessThan(decimal.NewFromInt(int64(u.Critico))):
		estado = CoberturaCritico
	case dias.LessThan(decimal.NewFromInt(int64(u.Bajo))):
		estado = CoberturaBajo
	}
	return Cobertura{Dias: &dias, FechaAgotamiento: &fecha, Estado: estado}
}

// FechaAgotamiento avanza día a día desde `desde` contando solo días hábiles
// (lunes a sábado) hasta completar diasHabiles. Devuelve el último día cubierto.
func FechaAgotamiento(desde time.Time, diasHabiles int) time.Time {
	fecha := truncDay(desde)
	for restantes := diasHabiles; restantes > 0; {
		fecha = fecha.AddDate(0, 0, 1)
		if fecha.Weekday() != time.Sunday {
			restantes--
		}
	}
	return fecha
}

// EsDomingo informa si t cae en domingo (día sin producción).
func EsDomingo(t time.Time) bool {
	return t.Weekday() == time.Sunday
}

func truncDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

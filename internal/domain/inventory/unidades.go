package inventory

import (
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// decimalesConversion precisión con la que se redondean las divisiones kg → bulto.
const decimalesConversion = 4

// Convert pasa qty de la unidad from a la unidad to.
// Solo se convierten bultos y kilos entre sí (usando pesoPorBulto, kg por bulto);
// litros y unidades solo admiten la identidad.
func Convert(qty decimal.Decimal, from, to string, pesoPorBulto decimal.Decimal) (decimal.Decimal, error) {
	if !entity.ValidUnidad(from) || !entity.ValidUnidad(to) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if from == to {
		return qty, nil
	}
	switch {
	case from == entity.UnidadBulto && to == entity.UnidadKg:
		if !pesoPorBulto.IsPositive() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return qty.Mul(pesoPorBulto), nil
	case from == entity.UnidadKg && to == entity.UnidadBulto:
		if !pesoPorBulto.IsPositive() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return qty.DivRound(pesoPorBulto, decimalesConversion), nil
	}
	return decimal.Zero, domain.ErrUnsupportedConversion
}

// ToBase convierte qty expresada en unidad a la unidad base del material.
// Una unidad vacía se interpreta como la unidad base.
func ToBase(qty decimal.Decimal, unidad string, m *entity.Material) (decimal.Decimal, error) {
	if unidad == "" {
		unidad = m.Unidad
	}
	return Convert(qty, unidad, m.Unidad, m.PesoPorBulto)
}

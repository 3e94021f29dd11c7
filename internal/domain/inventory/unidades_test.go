package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConvert(t *testing.T) {
	cases := []struct {
		name  string
		qty   string
		from  string
		to    string
		peso  string
		want  string
		error error
	}{
		{"bultos a kilos", "2", entity.UnidadBulto, entity.UnidadKg, "50", "100", nil},
		{"kilos a bultos", "75", entity.UnidadKg, entity.UnidadBulto, "50", "1.5", nil},
		{"kilos a bultos redondea a 4 decimales", "10", entity.UnidadKg, entity.UnidadBulto, "3", "3.3333", nil},
		{"identidad litros", "12.5", entity.UnidadLitro, entity.UnidadLitro, "0", "12.5", nil},
		{"identidad unidades sin peso", "7", entity.UnidadUnidad, entity.UnidadUnidad, "0", "7", nil},
		{"litros a kilos no soportado", "1", entity.UnidadLitro, entity.UnidadKg, "50", "", domain.ErrUnsupportedConversion},
		{"unidades a bultos no soportado", "1", entity.UnidadUnidad, entity.UnidadBulto, "50", "", domain.ErrUnsupportedConversion},
		{"bulto sin peso", "1", entity.UnidadBulto, entity.UnidadKg, "0", "", domain.ErrInvalidInput},
		{"unidad desconocida", "1", "caja", entity.UnidadKg, "50", "", domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.Convert(dec(tc.qty), tc.from, tc.to, dec(tc.peso))
			if tc.error != nil {
				assert.ErrorIs(t, err, tc.error)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tc.want).Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestToBase_UnidadVaciaEsLaBase(t *testing.T) {
	m := &entity.Material{Unidad: entity.UnidadBulto, PesoPorBulto: dec("25")}

	got, err := inventory.ToBase(dec("3"), "", m)
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(got))

	got, err = inventory.ToBase(dec("50"), entity.UnidadKg, m)
	require.NoError(t, err)
	assert.True(t, dec("2").Equal(got), "50 kg con bultos de 25 kg son 2 bultos")
}

func TestClaveNombre(t *testing.T) {
	assert.Equal(t, "bolsa vacio 20kg", inventory.ClaveNombre("  Bolsa   Vacío 20KG "))
	assert.Equal(t, inventory.ClaveNombre("Sal Refinada"), inventory.ClaveNombre("sal  refinada"))
	assert.Equal(t, "harina de trigo", inventory.ClaveNombre("Harína de TRIGO"))
}

func TestNombreVisible(t *testing.T) {
	assert.Equal(t, "Harina De Trigo", inventory.NombreVisible("  harina   de TRIGO"))
}

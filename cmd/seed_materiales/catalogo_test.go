package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const catalogoCSV = `zona;codigo;nombre;unidad;peso_por_bulto;consumo_diario;automatico;stock_minimo
Panificadora;HAR-01;Harina de trigo;bulto;50;2,5;si;10
desposte;BOL-02;Bolsa vacío;unidad;;300;no;1000
`

func TestLeerCatalogo_UTF8(t *testing.T) {
	filas, err := leerCatalogo(strings.NewReader(catalogoCSV), false)
	require.NoError(t, err)
	require.Len(t, filas, 2)

	h := filas[0]
	assert.Equal(t, 2, h.Linea)
	assert.Equal(t, "panificadora", h.ZonaCod)
	assert.Equal(t, "bulto", h.Material.Unidad)
	assert.True(t, h.Material.PesoPorBulto.Equal(decimal.NewFromInt(50)))
	assert.True(t, h.Material.ConsumoDiario.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, h.Material.ConsumoAutomatico)

	b := filas[1]
	assert.Equal(t, "Bolsa vacío", b.Material.Nombre)
	assert.True(t, b.Material.PesoPorBulto.IsZero())
	assert.False(t, b.Material.ConsumoAutomatico)
}

func TestLeerCatalogo_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(catalogoCSV))
	require.NoError(t, err)

	filas, err := leerCatalogo(bytes.NewReader(raw), true)
	require.NoError(t, err)
	require.Len(t, filas, 2)
	assert.Equal(t, "Bolsa vacío", filas[1].Material.Nombre)
}

func TestLeerCatalogo_Errores(t *testing.T) {
	cases := map[string]string{
		"encabezado":    "zona;codigo\n",
		"columnas":      "zona;codigo;nombre;unidad;peso;consumo_diario;automatico;stock_minimo\n",
		"numero":        "zona;codigo;nombre;unidad;peso_por_bulto;consumo_diario;automatico;stock_minimo\nd;c;n;kg;abc;1;no;0\n",
		"automatico":    "zona;codigo;nombre;unidad;peso_por_bulto;consumo_diario;automatico;stock_minimo\nd;c;n;kg;0;1;tal vez;0\n",
		"campos cortos": "zona;codigo;nombre;unidad;peso_por_bulto;consumo_diario;automatico;stock_minimo\nd;c;n\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := leerCatalogo(strings.NewReader(in), false)
			assert.Error(t, err)
		})
	}
}

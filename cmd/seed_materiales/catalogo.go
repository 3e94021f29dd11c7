package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/insumos-api/internal/application/dto"
)

// filaCatalogo una línea del CSV: zona;codigo;nombre;unidad;peso_por_bulto;consumo_diario;automatico;stock_minimo
type filaCatalogo struct {
	Linea    int
	ZonaCod  string
	Material dto.CreateMaterialRequest
}

var columnas = []string{"zona", "codigo", "nombre", "unidad", "peso_por_bulto", "consumo_diario", "automatico", "stock_minimo"}

// leerCatalogo parsea el CSV separado por ';' (formato de Excel en español).
// Con latin1 decodifica ISO-8859-1 antes de leer.
func leerCatalogo(r io.Reader, latin1 bool) ([]filaCatalogo, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(columnas)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	for i, col := range columnas {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")), col) {
			return nil, fmt.Errorf("columna %d: se esperaba %q, llegó %q", i+1, col, header[i])
		}
	}

	var filas []filaCatalogo
	linea := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		linea++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", linea, err)
		}
		f, err := parseFila(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", linea, err)
		}
		f.Linea = linea
		filas = append(filas, f)
	}
	return filas, nil
}

func parseFila(rec []string) (filaCatalogo, error) {
	num := func(i int) (decimal.Decimal, error) {
		s := strings.TrimSpace(rec[i])
		if s == "" {
			return decimal.Zero, nil
		}
		// Excel en es-CO exporta la coma como separador decimal
		d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s inválido: %q", columnas[i], s)
		}
		return d, nil
	}
	peso, err := num(4)
	if err != nil {
		return filaCatalogo{}, err
	}
	consumo, err := num(5)
	if err != nil {
		return filaCatalogo{}, err
	}
	minimo, err := num(7)
	if err != nil {
		return filaCatalogo{}, err
	}
	auto := false
	if s := strings.ToLower(strings.TrimSpace(rec[6])); s != "" {
		switch s {
		case "si", "sí", "s", "x":
			auto = true
		case "no", "n":
		default:
			if auto, err = strconv.ParseBool(s); err != nil {
				return filaCatalogo{}, fmt.Errorf("automatico inválido: %q", rec[6])
			}
		}
	}
	return filaCatalogo{
		ZonaCod: strings.ToLower(strings.TrimSpace(rec[0])),
		Material: dto.CreateMaterialRequest{
			Codigo:            strings.TrimSpace(rec[1]),
			Nombre:            strings.TrimSpace(rec[2]),
			Unidad:            strings.ToLower(strings.TrimSpace(rec[3])),
			PesoPorBulto:      peso,
			ConsumoDiario:     consumo,
			ConsumoAutomatico: auto,
			StockMinimo:       minimo,
		},
	}, nil
}

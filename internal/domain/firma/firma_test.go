package firma_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/firma"
)

// pngMinimo cabecera PNG seguida de bytes cualquiera; basta para la validación.
var pngMinimo = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("IHDR....")...)

func TestDecode_DataURLValido(t *testing.T) {
	now := time.Now()
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngMinimo)

	f, err := firma.Decode("  Juan Pérez ", url, now)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", f.Firmante)
	assert.Equal(t, pngMinimo, f.Imagen)
	assert.Len(t, f.Hash, 64)
	assert.Equal(t, url, firma.DataURL(f))
}

func TestDecode_Base64SinPrefijo(t *testing.T) {
	_, err := firma.Decode("Ana", base64.StdEncoding.EncodeToString(pngMinimo), time.Now())
	assert.NoError(t, err)
}

func TestDecode_Rechazos(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(pngMinimo)
	cases := map[string]struct{ firmante, data string }{
		"sin firmante":     {"", valid},
		"vacío":            {"Ana", ""},
		"jpeg":             {"Ana", "data:image/jpeg;base64," + valid},
		"base64 corrupto":  {"Ana", "%%%no-es-base64"},
		"no es png":        {"Ana", base64.StdEncoding.EncodeToString([]byte("GIF89a......"))},
		"demasiado grande": {"Ana", base64.StdEncoding.EncodeToString(append(pngMinimo, []byte(strings.Repeat("x", firma.MaxBytes))...))},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := firma.Decode(tc.firmante, tc.data, time.Now())
			assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		})
	}
}

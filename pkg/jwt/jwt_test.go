package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	tok, err := Generate(secret, "u-1", "z-1", "bodega", "insumos-api-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "z-1", claims.ZonaID)
	assert.Equal(t, "bodega", claims.Role)
}

func TestParse_Errores(t *testing.T) {
	expirado, err := Generate(secret, "u-1", "", "admin", "insumos-api-test", -1)
	require.NoError(t, err)
	valido, err := Generate(secret, "u-1", "", "admin", "insumos-api-test", 60)
	require.NoError(t, err)

	cases := map[string]struct{ secret, tok string }{
		"expirado":        {secret, expirado},
		"secret distinto": {"otro-secret", valido},
		"malformado":      {secret, "no.es.jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.secret, tc.tok)
			assert.Error(t, err)
		})
	}
}

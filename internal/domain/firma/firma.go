// Package firma valida las firmas digitales capturadas en pantalla (PNG en data URL).
package firma

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// MaxBytes tamaño máximo de la imagen decodificada.
const MaxBytes = 512 * 1024

const dataURLPrefix = "data:image/png;base64,"

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Decode valida el data URL de la firma y construye la entidad con su hash SHA-256.
// También acepta el base64 sin prefijo.
func Decode(firmante, dataURL string, at time.Time) (entity.Firma, error) {
	firmante = strings.TrimSpace(firmante)
	if firmante == "" {
		return entity.Firma{}, domain.ErrInvalidSignature
	}
	raw := strings.TrimSpace(dataURL)
	if strings.HasPrefix(raw, "data:") {
		if !strings.HasPrefix(raw, dataURLPrefix) {
			return entity.Firma{}, domain.ErrInvalidSignature
		}
		raw = strings.TrimPrefix(raw, dataURLPrefix)
	}
	if raw == "" || base64.StdEncoding.DecodedLen(len(raw)) > MaxBytes+3 {
		return entity.Firma{}, domain.ErrInvalidSignature
	}
	img, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(img) > MaxBytes || !bytes.HasPrefix(img, pngMagic) {
		return entity.Firma{}, domain.ErrInvalidSignature
	}
	sum := sha256.Sum256(img)
	return entity.Firma{
		Firmante:  firmante,
		Imagen:    img,
		Hash:      hex.EncodeToString(sum[:]),
		FirmadoAt: at,
	}, nil
}

// DataURL vuelve a codificar la imagen para devolverla al cliente.
func DataURL(f entity.Firma) string {
	if len(f.Imagen) == 0 {
		return ""
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(f.Imagen)
}

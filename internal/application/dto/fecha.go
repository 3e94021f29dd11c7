package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/insumos-api/internal/domain"
)

// ParseFecha interpreta YYYY-MM-DD en loc; vacío devuelve el día de now.
func ParseFecha(s string, loc *time.Location, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// FormatFecha formatea t como YYYY-MM-DD.
func FormatFecha(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatFechaPtr igual que FormatFecha pero conserva nil.
func FormatFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatFecha(*t)
	return &s
}

package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ClaveNombre normaliza el nombre de un material para detectar duplicados:
// minúsculas, sin tildes y con espacios colapsados ("Bolsa  Vacío" → "bolsa vacio").
func ClaveNombre(nombre string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, nombre)
	if err != nil {
		s = nombre
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NombreVisible limpia espacios y aplica mayúscula inicial por palabra.
func NombreVisible(nombre string) string {
	// cases.Caser guarda estado: uno por llamada.
	return cases.Title(language.Spanish).String(strings.Join(strings.Fields(nombre), " "))
}

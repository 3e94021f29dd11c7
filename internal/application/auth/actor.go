// Package auth modela quién ejecuta una operación y a qué zonas tiene acceso.
// La identidad sale del JWT verificado en la capa HTTP.
package auth

import (
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
)

// Actor usuario autenticado que ejecuta un caso de uso.
type Actor struct {
	UserID string
	Role   string
	ZonaID string // zona asignada; vacío = todas
}

// EsAdmin informa si el actor tiene rol administrador.
func (a Actor) EsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// PuedeOperarZona: el admin y los usuarios sin zona asignada operan cualquier zona.
func (a Actor) PuedeOperarZona(zonaID string) bool {
	return a.EsAdmin() || a.ZonaID == "" || a.ZonaID == zonaID
}

// CheckZona devuelve ErrForbidden si el actor no puede operar la zona.
func (a Actor) CheckZona(zonaID string) error {
	if !a.PuedeOperarZona(zonaID) {
		return domain.ErrForbidden
	}
	return nil
}

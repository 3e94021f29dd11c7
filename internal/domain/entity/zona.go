package entity

import "time"

// Códigos de las zonas de producción sembradas en la base.
const (
	ZonaDesposte     = "desposte"
	ZonaDesprese     = "desprese"
	ZonaPanificadora = "panificadora"
)

// Zona representa un área o planta de producción con catálogo y stock propios.
type Zona struct {
	ID        string
	Codigo    string
	Nombre    string
	Activa    bool
	CreatedAt time.Time
}

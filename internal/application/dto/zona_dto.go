package dto

import "time"

// CreateZonaRequest entrada para crear una zona.
type CreateZonaRequest struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// ZonaResponse salida de una zona.
type ZonaResponse struct {
	ID        string    `json:"id"`
	Codigo    string    `json:"codigo"`
	Nombre    string    `json:"nombre"`
	Activa    bool      `json:"activa"`
	CreatedAt time.Time `json:"created_at"`
}

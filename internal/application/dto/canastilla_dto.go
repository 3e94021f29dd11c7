package dto

import "time"

// FirmaRequest firma capturada en pantalla.
type FirmaRequest struct {
	Firmante string `json:"firmante"`
	Imagen   string `json:"imagen"` // data:image/png;base64,...
}

// CreatePrestamoRequest entrada para registrar un préstamo de canastillas.
type CreatePrestamoRequest struct {
	Tercero          string       `json:"tercero"`
	TerceroDocumento string       `json:"tercero_documento"`
	TipoCanastilla   string       `json:"tipo_canastilla"`
	Cantidad         int          `json:"cantidad"`
	Observaciones    string       `json:"observaciones"`
	Firma            FirmaRequest `json:"firma"`
}

// DevolucionRequest devolución (total o parcial) de un préstamo.
type DevolucionRequest struct {
	Cantidad int          `json:"cantidad"`
	Firma    FirmaRequest `json:"firma"`
}

// FirmaResponse firma almacenada.
type FirmaResponse struct {
	Firmante  string    `json:"firmante"`
	Hash      string    `json:"hash"`
	Imagen    string    `json:"imagen,omitempty"`
	FirmadoAt time.Time `json:"firmado_at"`
}

// DevolucionResponse salida de una devolución.
type DevolucionResponse struct {
	ID       string        `json:"id"`
	Cantidad int           `json:"cantidad"`
	Firma    FirmaResponse `json:"firma"`
	Fecha    time.Time     `json:"fecha"`
}

// PrestamoResponse salida de un préstamo.
type PrestamoResponse struct {
	ID               string               `json:"id"`
	ZonaID           string               `json:"zona_id"`
	Tercero          string               `json:"tercero"`
	TerceroDocumento string               `json:"tercero_documento"`
	TipoCanastilla   string               `json:"tipo_canastilla"`
	CantidadPrestada int                  `json:"cantidad_prestada"`
	CantidadDevuelta int                  `json:"cantidad_devuelta"`
	Saldo            int                  `json:"saldo"`
	Estado           string               `json:"estado"`
	FirmaEntrega     FirmaResponse        `json:"firma_entrega"`
	Observaciones    string               `json:"observaciones"`
	Devoluciones     []DevolucionResponse `json:"devoluciones"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// PrestamoListResponse lista paginada de préstamos.
type PrestamoListResponse struct {
	Items []PrestamoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SaldoTerceroDTO canastillas pendientes por tercero.
type SaldoTerceroDTO struct {
	Tercero          string `json:"tercero"`
	TerceroDocumento string `json:"tercero_documento"`
	Prestamos        int    `json:"prestamos"`
	Saldo            int    `json:"saldo"`
}

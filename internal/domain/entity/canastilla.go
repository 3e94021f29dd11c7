package entity

import "time"

// Estados de un préstamo de canastillas.
const (
	PrestamoAbierto = "abierto"
	PrestamoParcial = "parcial"
	PrestamoCerrado = "cerrado"
)

// Firma es la firma digital capturada en pantalla (PNG) de quien entrega o recibe.
type Firma struct {
	Firmante  string
	Imagen    []byte // PNG decodificado
	Hash      string // SHA-256 hex de Imagen
	FirmadoAt time.Time
}

// Prestamo es un préstamo de canastillas a un tercero (cliente o proveedor).
type Prestamo struct {
	ID               string
	ZonaID           string
	Tercero          string
	TerceroDocumento string
	TipoCanastilla   string
	CantidadPrestada int
	CantidadDevuelta int
	Estado           string
	FirmaEntrega     Firma
	Observaciones    string
	Devoluciones     []Devolucion
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Saldo devuelve las canastillas aún en poder del tercero.
func (p *Prestamo) Saldo() int {
	return p.CantidadPrestada - p.CantidadDevuelta
}

// Devolucion registra una devolución (total o parcial) de un préstamo.
type Devolucion struct {
	ID         string
	PrestamoID string
	Cantidad   int
	Firma      Firma
	Fecha      time.Time
	CreatedBy  string
}

// SaldoTercero agrupa las canastillas pendientes de un tercero.
type SaldoTercero struct {
	Tercero          string
	TerceroDocumento string
	Prestamos        int
	Saldo            int
}

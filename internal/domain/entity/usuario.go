package entity

// Roles válidos en el claim role del token.
const (
	RoleAdmin      = "admin"
	RoleBodega     = "bodega"
	RoleProduccion = "produccion"
)

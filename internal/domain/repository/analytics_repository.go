package repository

import "context"

// AnalyticsRepository consultas de solo lectura para el dashboard de zona.
type AnalyticsRepository interface {
	CountMateriales(ctx context.Context, zonaID string) (int, error)
	// CanastillasPrestadas Σ saldo de los préstamos abiertos o parciales de la zona.
	CanastillasPrestadas(ctx context.Context, zonaID string) (int, error)
}

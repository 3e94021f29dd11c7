// seed_materiales carga el catálogo inicial de materiales por zona desde un CSV
// exportado de Excel (separador ';').
//
// Uso: go run ./cmd/seed_materiales [-latin1] catalogo.csv
// Columnas: zona;codigo;nombre;unidad;peso_por_bulto;consumo_diario;automatico;stock_minimo
// Los materiales que ya existen en la zona (mismo nombre normalizado) se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/insumos-api/internal/application/auth"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
	"github.com/jhoicas/insumos-api/internal/domain"
	"github.com/jhoicas/insumos-api/internal/domain/entity"
	"github.com/jhoicas/insumos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/insumos-api/pkg/config"
	"github.com/jhoicas/insumos-api/pkg/logger"
)

type noopInvalidator struct{}

func (noopInvalidator) InvalidateZona(context.Context, string) {}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_materiales [-latin1] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()
	filas, err := leerCatalogo(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	zonaRepo := postgres.NewZonaRepository(pool)
	materialUC := usecase.NewMaterialUseCase(
		postgres.NewMaterialRepository(pool), zonaRepo, postgres.NewTxRunner(pool), noopInvalidator{},
	)
	admin := auth.Actor{UserID: "seed_materiales", Role: entity.RoleAdmin}

	zonas := make(map[string]string)
	creados, omitidos := 0, 0
	for _, fila := range filas {
		zonaID, ok := zonas[fila.ZonaCod]
		if !ok {
			z, err := zonaRepo.GetByCodigo(ctx, fila.ZonaCod)
			if err != nil {
				log.Fatal().Err(err).Msg("buscar zona")
			}
			if z == nil {
				log.Fatal().Int("linea", fila.Linea).Str("zona", fila.ZonaCod).Msg("zona inexistente")
			}
			zonaID = z.ID
			zonas[fila.ZonaCod] = zonaID
		}
		_, err := materialUC.Create(ctx, admin, zonaID, fila.Material)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			omitidos++
		case err != nil:
			log.Fatal().Err(err).Int("linea", fila.Linea).Str("codigo", fila.Material.Codigo).Msg("crear material")
		default:
			creados++
		}
	}
	log.Info().Int("creados", creados).Int("omitidos", omitidos).Msg("catálogo cargado")
}

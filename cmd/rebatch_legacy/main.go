// Comando de migración: re-ubica el stock pre-trazabilidad (filas sin lote)
// en el lote centinela LEGACY de una ubicación de producción. Cada fila migra
// en su propia transacción, así que es seguro re-ejecutarlo tras un fallo.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/migration"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	locationID := flag.String("location", "", "ubicación PRODUCTION dueña del lote LEGACY (vacío: la primera)")
	batchSize := flag.Int("batch-size", 100, "filas por tanda de migración")
	timeout := flag.Duration("timeout", 30*time.Minute, "tiempo máximo de ejecución")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockRepo := postgres.NewStockRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registry := batch.NewRegistry(txRunner, locationRepo, itemRepo, batchRepo, log)
	rebatch := migration.NewRebatchUseCase(txRunner, registry, locationRepo, stockRepo, log)

	migrated, err := rebatch.Run(ctx, *locationID, *batchSize)
	if err != nil {
		// Lo migrado hasta aquí quedó committeado fila a fila; re-ejecutar retoma
		log.Fatal().Err(err).Int("migrated", migrated).Msg("migración interrumpida")
	}
	log.Info().Int("migrated", migrated).Msg("migración LEGACY completada")
}

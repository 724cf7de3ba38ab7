package migration

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// RebatchUseCase re-ubica el stock pre-trazabilidad (filas sin lote) en el
// lote centinela LEGACY de una ubicación de producción.
//
// Cada fila se migra en su propia transacción: alta LEGACY_MIGRATION en el
// lote centinela + borrado de la fila sin lote, atómicos. Una fila o está
// migrada o no lo está, nunca a medias, así que re-ejecutar tras un fallo
// retoma exactamente donde quedó sin perder ni duplicar cantidad.
type RebatchUseCase struct {
	txRunner  ports.TxRunner
	registry  *batch.Registry
	locations repository.LocationRepository
	stock     repository.StockRepository
	log       *logger.Logger
}

// NewRebatchUseCase construye la migración.
func NewRebatchUseCase(
	txRunner ports.TxRunner,
	registry *batch.Registry,
	locations repository.LocationRepository,
	stock repository.StockRepository,
	log *logger.Logger,
) *RebatchUseCase {
	return &RebatchUseCase{
		txRunner:  txRunner,
		registry:  registry,
		locations: locations,
		stock:     stock,
		log:       log,
	}
}

// Run migra todas las filas sin lote en tandas de batchSize. locationID
// selecciona la ubicación de producción dueña del lote LEGACY; vacío usa la
// primera ubicación PRODUCTION. Devuelve cuántas filas se migraron.
func (m *RebatchUseCase) Run(ctx context.Context, locationID string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	if locationID == "" {
		loc, err := m.locations.FirstByKind(entity.LocationKindProduction)
		if err != nil {
			return 0, err
		}
		if loc == nil {
			return 0, domain.ErrNotFound
		}
		locationID = loc.ID
	}

	legacy, err := m.registry.EnsureLegacyBatch(ctx, locationID)
	if err != nil {
		return 0, fmt.Errorf("asegurar lote LEGACY: %w", err)
	}

	migrated := 0
	for {
		rows, err := m.stock.ListUnbatched(batchSize)
		if err != nil {
			return migrated, err
		}
		if len(rows) == 0 {
			return migrated, nil
		}
		for _, row := range rows {
			if err := m.migrateRow(ctx, row, legacy.ID); err != nil {
				return migrated, err
			}
			migrated++
		}
	}
}

// migrateRow mueve una fila sin lote al lote LEGACY en una sola transacción.
func (m *RebatchUseCase) migrateRow(ctx context.Context, row *entity.Stock, legacyBatchID string) error {
	return m.txRunner.Run(ctx, func(r ports.TxRepos) error {
		// Re-leer bajo bloqueo: si otro pase ya la migró, no hay nada que hacer
		locked, err := r.Stock.GetUnbatchedForUpdate(row.LocationID, row.ItemID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Quantity == 0 {
			if locked != nil {
				return r.Stock.DeleteUnbatched(row.LocationID, row.ItemID)
			}
			return nil
		}
		led := ledger.New(r.Stock, r.History)
		resulting, err := led.ApplyDelta(locked.LocationID, locked.ItemID, legacyBatchID,
			locked.Quantity, entity.ReasonLegacyMigration, "legacy-migration")
		if err != nil {
			return err
		}
		if err := r.Stock.DeleteUnbatched(locked.LocationID, locked.ItemID); err != nil {
			return err
		}
		m.log.Info().
			Str("location_id", locked.LocationID).
			Str("item_id", locked.ItemID).
			Int64("quantity", locked.Quantity).
			Int64("legacy_resulting", resulting).
			Msg("fila sin lote migrada a LEGACY")
		return nil
	})
}

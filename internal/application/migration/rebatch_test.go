package migration_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/migration"
	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func newRebatch(s *memory.Store) *migration.RebatchUseCase {
	registry := batch.NewRegistry(s.TxRunner(), s.Locations(), s.Items(), s.Repos().Batches, logger.Nop())
	return migration.NewRebatchUseCase(s.TxRunner(), registry, s.Locations(), s.Repos().Stock, logger.Nop())
}

// seedUnbatched deja n items con stock pre-trazabilidad (sin lote) en una
// ubicación de producción.
func seedUnbatched(t *testing.T, s *memory.Store, n int, qty int64) (locationID string, itemIDs []string) {
	t.Helper()
	locationID = uuid.New().String()
	require.NoError(t, s.Locations().Create(&entity.Location{
		ID: locationID, Code: "PLANTA-01", Name: "Planta Principal",
		Kind: entity.LocationKindProduction, IsActive: true,
	}))
	for i := 0; i < n; i++ {
		itemID := uuid.New().String()
		require.NoError(t, s.Items().Create(&entity.Item{
			ID: itemID, Code: uuid.New().String(), Name: "Item migrable",
			UnitMeasure: "UND", IsActive: true,
		}))
		require.NoError(t, s.Repos().Stock.Upsert(&entity.Stock{
			LocationID: locationID, ItemID: itemID, BatchID: "", Quantity: qty,
		}))
		itemIDs = append(itemIDs, itemID)
	}
	return locationID, itemIDs
}

func legacyBatch(t *testing.T, s *memory.Store, locationID string) *entity.Batch {
	t.Helper()
	b, err := s.Repos().Batches.GetByCode(locationID, entity.BatchCodeLegacy)
	require.NoError(t, err)
	require.NotNil(t, b, "el lote LEGACY debe existir tras la migración")
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Migración
// ──────────────────────────────────────────────────────────────────────────────

// Toda fila sin lote termina en el centinela LEGACY con su cantidad intacta y
// una fila de auditoría LEGACY_MIGRATION.
func TestRebatch_MigraTodoAlLoteLegacy(t *testing.T) {
	s := memory.NewStore()
	loc, items := seedUnbatched(t, s, 3, 7)

	migrated, err := newRebatch(s).Run(context.Background(), loc, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, migrated)

	legacy := legacyBatch(t, s, loc)
	led := ledger.New(s.Repos().Stock, s.Repos().History)
	for _, itemID := range items {
		qty, err := led.GetQuantity(loc, itemID, legacy.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), qty, "la cantidad migra completa")

		rows, err := s.Repos().History.ListByKey(loc, itemID, legacy.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, entity.ReasonLegacyMigration, rows[0].Reason)
	}

	remaining, err := s.Repos().Stock.ListUnbatched(100)
	require.NoError(t, err)
	assert.Empty(t, remaining, "no deben quedar filas sin lote")
}

// Re-ejecutar sobre una base ya migrada no duplica cantidad ni auditoría.
func TestRebatch_Idempotente(t *testing.T) {
	s := memory.NewStore()
	loc, items := seedUnbatched(t, s, 2, 10)
	rb := newRebatch(s)
	ctx := context.Background()

	migrated, err := rb.Run(ctx, loc, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)

	migrated, err = rb.Run(ctx, loc, 100)
	require.NoError(t, err)
	assert.Zero(t, migrated, "la segunda pasada no tiene nada que migrar")

	legacy := legacyBatch(t, s, loc)
	led := ledger.New(s.Repos().Stock, s.Repos().History)
	for _, itemID := range items {
		qty, err := led.GetQuantity(loc, itemID, legacy.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), qty)
		rows, err := s.Repos().History.ListByKey(loc, itemID, legacy.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1, "sin filas de auditoría duplicadas")
	}
}

// Una corrida interrumpida a medias retoma sin perder ni duplicar: el estado
// por fila (migrada o no) es el checkpoint.
func TestRebatch_ReanudaTrasMigracionParcial(t *testing.T) {
	s := memory.NewStore()
	loc, items := seedUnbatched(t, s, 4, 5)
	rb := newRebatch(s)
	ctx := context.Background()

	// Simular la primera mitad de una corrida interrumpida: migrar a mano dos
	// filas exactamente como lo hace la migración (alta LEGACY + borrado, una tx).
	registry := batch.NewRegistry(s.TxRunner(), s.Locations(), s.Items(), s.Repos().Batches, logger.Nop())
	legacy, err := registry.EnsureLegacyBatch(ctx, loc)
	require.NoError(t, err)
	partial, err := s.Repos().Stock.ListUnbatched(2)
	require.NoError(t, err)
	require.Len(t, partial, 2)
	for _, row := range partial {
		row := row
		require.NoError(t, s.TxRunner().Run(ctx, func(r ports.TxRepos) error {
			led := ledger.New(r.Stock, r.History)
			if _, err := led.ApplyDelta(row.LocationID, row.ItemID, legacy.ID,
				row.Quantity, entity.ReasonLegacyMigration, "legacy-migration"); err != nil {
				return err
			}
			return r.Stock.DeleteUnbatched(row.LocationID, row.ItemID)
		}))
	}

	// La re-ejecución completa solo el trabajo restante
	migrated, err := rb.Run(ctx, loc, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)

	led := ledger.New(s.Repos().Stock, s.Repos().History)
	var total int64
	for _, itemID := range items {
		qty, err := led.GetQuantity(loc, itemID, legacy.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), qty)
		total += qty
	}
	assert.Equal(t, int64(20), total, "la suma total se conserva")

	remaining, err := s.Repos().Stock.ListUnbatched(100)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// Sin ubicación explícita usa la primera PRODUCTION; sin ninguna, ErrNotFound.
func TestRebatch_SeleccionDeUbicacion(t *testing.T) {
	s := memory.NewStore()
	loc, _ := seedUnbatched(t, s, 1, 3)

	migrated, err := newRebatch(s).Run(context.Background(), "", 100)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)
	legacyBatch(t, s, loc)

	empty := memory.NewStore()
	_, err = newRebatch(empty).Run(context.Background(), "", 100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

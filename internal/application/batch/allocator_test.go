package batch_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

// seedProduction crea la ubicación de producción y el item base.
func seedProduction(t *testing.T, s *memory.Store) (locationID, itemID string) {
	t.Helper()
	locationID = uuid.New().String()
	itemID = uuid.New().String()
	require.NoError(t, s.Locations().Create(&entity.Location{
		ID: locationID, Code: "PLANTA-01", Name: "Planta Principal",
		Kind: entity.LocationKindProduction, IsActive: true,
	}))
	require.NoError(t, s.Items().Create(&entity.Item{
		ID: itemID, Code: "SKU-001", Name: "Harina 1kg", UnitMeasure: "UND", IsActive: true,
	}))
	return locationID, itemID
}

// seedBatchStock crea un lote con la cantidad dada ya disponible.
func seedBatchStock(t *testing.T, s *memory.Store, locationID, itemID, code string, qty int64) string {
	t.Helper()
	batchID := uuid.New().String()
	require.NoError(t, s.Repos().Batches.Create(&entity.Batch{
		ID: batchID, LocationID: locationID, Code: code,
		ProductionDate: time.Now(), CreatedAt: time.Now(),
	}))
	require.NoError(t, s.Repos().Stock.Upsert(&entity.Stock{
		LocationID: locationID, ItemID: itemID, BatchID: batchID, Quantity: qty,
	}))
	return batchID
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación greedy (sin lote explícito)
// ──────────────────────────────────────────────────────────────────────────────

// El asignador consume primero el lote de código más antiguo y completa con el
// siguiente: nunca devuelve una asignación parcial.
func TestAllocate_GreedyMasAntiguoPrimero(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	oldBatch := seedBatchStock(t, s, loc, item, "B-2026-001", 5)
	newBatch := seedBatchStock(t, s, loc, item, "B-2026-002", 10)

	alloc := batch.NewAllocator(s.Repos().Stock)
	allocations, err := alloc.Allocate(loc, item, 8, "")
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.Equal(t, oldBatch, allocations[0].BatchID, "primero el lote más antiguo")
	assert.Equal(t, int64(5), allocations[0].Quantity, "el lote antiguo se agota")
	assert.Equal(t, newBatch, allocations[1].BatchID)
	assert.Equal(t, int64(3), allocations[1].Quantity, "el resto sale del lote siguiente")
}

func TestAllocate_UnSoloLoteCubreTodo(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	batchID := seedBatchStock(t, s, loc, item, "B-2026-001", 20)
	seedBatchStock(t, s, loc, item, "B-2026-002", 10)

	alloc := batch.NewAllocator(s.Repos().Stock)
	allocations, err := alloc.Allocate(loc, item, 20, "")
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, batchID, allocations[0].BatchID)
	assert.Equal(t, int64(20), allocations[0].Quantity)
}

// Si el total disponible no alcanza, falla completo: sin asignación parcial.
func TestAllocate_TotalInsuficiente(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	seedBatchStock(t, s, loc, item, "B-2026-001", 5)
	seedBatchStock(t, s, loc, item, "B-2026-002", 4)

	alloc := batch.NewAllocator(s.Repos().Stock)
	allocations, err := alloc.Allocate(loc, item, 10, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, allocations, "nunca se devuelve una asignación parcial")
}

// Lotes en cero no cuentan como disponibles.
func TestAllocate_IgnoraLotesEnCero(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	seedBatchStock(t, s, loc, item, "B-2026-001", 0)
	full := seedBatchStock(t, s, loc, item, "B-2026-002", 7)

	alloc := batch.NewAllocator(s.Repos().Stock)
	allocations, err := alloc.Allocate(loc, item, 7, "")
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, full, allocations[0].BatchID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lote explícito
// ──────────────────────────────────────────────────────────────────────────────

// Con lote explícito la asignación es de un solo lote, que debe cubrir solo.
func TestAllocate_LoteExplicito(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	seedBatchStock(t, s, loc, item, "B-2026-001", 50)
	chosen := seedBatchStock(t, s, loc, item, "B-2026-002", 10)

	alloc := batch.NewAllocator(s.Repos().Stock)
	allocations, err := alloc.Allocate(loc, item, 10, chosen)
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, chosen, allocations[0].BatchID)
	assert.Equal(t, int64(10), allocations[0].Quantity)
}

// El lote explícito no se complementa con otros lotes aunque haya stock.
func TestAllocate_LoteExplicitoInsuficiente(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	seedBatchStock(t, s, loc, item, "B-2026-001", 50)
	chosen := seedBatchStock(t, s, loc, item, "B-2026-002", 3)

	alloc := batch.NewAllocator(s.Repos().Stock)
	_, err := alloc.Allocate(loc, item, 10, chosen)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el lote explícito debe cubrir lo solicitado por sí solo")
}

func TestAllocate_EntradaInvalida(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)

	alloc := batch.NewAllocator(s.Repos().Stock)
	_, err := alloc.Allocate(loc, item, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = alloc.Allocate("", item, 5, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func newRegistry(s *memory.Store) *batch.Registry {
	return batch.NewRegistry(s.TxRunner(), s.Locations(), s.Items(), s.Repos().Batches, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Lote centinela LEGACY
// ──────────────────────────────────────────────────────────────────────────────

// EnsureLegacyBatch es get-or-create: llamadas repetidas devuelven el mismo lote.
func TestEnsureLegacyBatch_Idempotente(t *testing.T) {
	s := memory.NewStore()
	loc, _ := seedProduction(t, s)
	rg := newRegistry(s)

	first, err := rg.EnsureLegacyBatch(context.Background(), loc)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, entity.BatchCodeLegacy, first.Code)
	assert.True(t, first.IsLegacy())

	second, err := rg.EnsureLegacyBatch(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "la segunda llamada debe devolver el mismo lote")

	batches, err := s.Repos().Batches.ListByLocation(loc)
	require.NoError(t, err)
	assert.Len(t, batches, 1, "no debe crearse un segundo centinela")
}

// El centinela solo existe en ubicaciones de producción.
func TestEnsureLegacyBatch_SoloUbicacionProduccion(t *testing.T) {
	s := memory.NewStore()
	storeLoc := uuid.New().String()
	require.NoError(t, s.Locations().Create(&entity.Location{
		ID: storeLoc, Code: "TIENDA-01", Name: "Tienda Centro",
		Kind: entity.LocationKindStore, IsActive: true,
	}))
	rg := newRegistry(s)

	_, err := rg.EnsureLegacyBatch(context.Background(), storeLoc)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = rg.EnsureLegacyBatch(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound, "ubicación inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes de producción
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProductionBatch_CreaLoteYStock(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	otherItem := uuid.New().String()
	require.NoError(t, s.Items().Create(&entity.Item{
		ID: otherItem, Code: "SKU-002", Name: "Azúcar 1kg", UnitMeasure: "UND", IsActive: true,
	}))
	rg := newRegistry(s)

	b, err := rg.CreateProductionBatch(context.Background(), batch.ProductionBatchInput{
		LocationID:     loc,
		Code:           "B-2026-100",
		ProductionDate: time.Now(),
		Lines: []batch.ProductionLine{
			{ItemID: item, Quantity: 40},
			{ItemID: otherItem, Quantity: 15},
		},
		ActorID: "produccion",
	})
	require.NoError(t, err)
	require.NotNil(t, b)

	led := ledger.New(s.Repos().Stock, s.Repos().History)
	qty, err := led.GetQuantity(loc, item, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), qty)
	qty, err = led.GetQuantity(loc, otherItem, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), qty)

	rows, err := s.Repos().History.ListByKey(loc, item, b.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.ReasonProduction, rows[0].Reason)
}

// El código del lote es único dentro de su ubicación; el duplicado revierte la
// transacción completa sin tocar stock.
func TestCreateProductionBatch_CodigoDuplicado(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	rg := newRegistry(s)

	input := batch.ProductionBatchInput{
		LocationID:     loc,
		Code:           "B-2026-100",
		ProductionDate: time.Now(),
		Lines:          []batch.ProductionLine{{ItemID: item, Quantity: 10}},
		ActorID:        "produccion",
	}
	first, err := rg.CreateProductionBatch(context.Background(), input)
	require.NoError(t, err)

	_, err = rg.CreateProductionBatch(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El stock del primer lote sigue intacto y no hay altas fantasma
	led := ledger.New(s.Repos().Stock, s.Repos().History)
	qty, err := led.GetQuantity(loc, item, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)
	rows, err := s.Repos().History.ListByKey(loc, item, first.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateProductionBatch_Validaciones(t *testing.T) {
	s := memory.NewStore()
	loc, item := seedProduction(t, s)
	rg := newRegistry(s)
	ctx := context.Background()

	// El código LEGACY está reservado para el centinela
	_, err := rg.CreateProductionBatch(ctx, batch.ProductionBatchInput{
		LocationID: loc, Code: entity.BatchCodeLegacy,
		Lines: []batch.ProductionLine{{ItemID: item, Quantity: 1}}, ActorID: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva identifica la línea culpable
	_, err = rg.CreateProductionBatch(ctx, batch.ProductionBatchInput{
		LocationID: loc, Code: "B-2026-200",
		Lines: []batch.ProductionLine{
			{ItemID: item, Quantity: 5},
			{ItemID: item, Quantity: 0},
		},
		ActorID: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var le *domain.LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Line)

	// Item inexistente
	_, err = rg.CreateProductionBatch(ctx, batch.ProductionBatchInput{
		LocationID: loc, Code: "B-2026-201",
		Lines:   []batch.ProductionLine{{ItemID: uuid.New().String(), Quantity: 5}},
		ActorID: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ubicación que no es de producción
	storeLoc := uuid.New().String()
	require.NoError(t, s.Locations().Create(&entity.Location{
		ID: storeLoc, Code: "TIENDA-02", Name: "Tienda Norte",
		Kind: entity.LocationKindStore, IsActive: true,
	}))
	_, err = rg.CreateProductionBatch(ctx, batch.ProductionBatchInput{
		LocationID: storeLoc, Code: "B-2026-202",
		Lines: []batch.ProductionLine{{ItemID: item, Quantity: 5}}, ActorID: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

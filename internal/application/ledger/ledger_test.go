package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "actor-test"

// seedBase crea ubicación de producción, item y lote listos para mutar stock.
func seedBase(t *testing.T, s *memory.Store) (locationID, itemID, batchID string) {
	t.Helper()
	locationID = uuid.New().String()
	itemID = uuid.New().String()
	batchID = uuid.New().String()

	require.NoError(t, s.Locations().Create(&entity.Location{
		ID: locationID, Code: "PLANTA-01", Name: "Planta Principal",
		Kind: entity.LocationKindProduction, IsActive: true,
	}))
	require.NoError(t, s.Items().Create(&entity.Item{
		ID: itemID, Code: "SKU-001", Name: "Harina 1kg", UnitMeasure: "UND", IsActive: true,
	}))
	require.NoError(t, s.Repos().Batches.Create(&entity.Batch{
		ID: batchID, LocationID: locationID, Code: "B-2026-001",
		ProductionDate: time.Now(), CreatedAt: time.Now(),
	}))
	return locationID, itemID, batchID
}

// applyDelta ejecuta una mutación dentro de su propia transacción.
func applyDelta(t *testing.T, s *memory.Store, locationID, itemID, batchID string, delta int64, reason string) (int64, error) {
	t.Helper()
	var resulting int64
	err := s.TxRunner().Run(context.Background(), func(r ports.TxRepos) error {
		led := ledger.New(r.Stock, r.History)
		res, err := led.ApplyDelta(locationID, itemID, batchID, delta, reason, testActor)
		if err != nil {
			return err
		}
		resulting = res
		return nil
	})
	return resulting, err
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta
// ──────────────────────────────────────────────────────────────────────────────

// La cantidad viva es la suma de los deltas aplicados.
func TestApplyDelta_AcumulaDeltas(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)

	res, err := applyDelta(t, s, loc, item, batch, 10, entity.ReasonProduction)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res)

	res, err = applyDelta(t, s, loc, item, batch, 5, entity.ReasonProduction)
	require.NoError(t, err)
	assert.Equal(t, int64(15), res)

	res, err = applyDelta(t, s, loc, item, batch, -3, entity.ReasonTransferOut)
	require.NoError(t, err)
	assert.Equal(t, int64(12), res)

	led := ledger.New(s.Repos().Stock, s.Repos().History)
	qty, err := led.GetQuantity(loc, item, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(12), qty, "la cantidad viva debe ser la suma de los deltas")
}

// Un delta que dejaría la cantidad negativa se rechaza y no persiste nada.
func TestApplyDelta_RechazaResultadoNegativo(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)

	_, err := applyDelta(t, s, loc, item, batch, 5, entity.ReasonProduction)
	require.NoError(t, err)

	_, err = applyDelta(t, s, loc, item, batch, -8, entity.ReasonTransferOut)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	led := ledger.New(s.Repos().Stock, s.Repos().History)
	qty, err := led.GetQuantity(loc, item, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty, "el rechazo no debe alterar la cantidad")

	rows, err := s.Repos().History.ListByKey(loc, item, batch)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "el rechazo no debe dejar fila de auditoría")
}

func TestApplyDelta_EntradaInvalida(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)

	// Delta cero
	_, err := applyDelta(t, s, loc, item, batch, 0, entity.ReasonProduction)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Motivo fuera del conjunto cerrado
	_, err = applyDelta(t, s, loc, item, batch, 1, "REGALO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Tripleta incompleta
	_, err = applyDelta(t, s, loc, item, "", 1, entity.ReasonProduction)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cada mutación escribe exactamente una fila de auditoría y el replay de las
// filas reproduce la cantidad viva.
func TestApplyDelta_AuditoriaReplay(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)

	deltas := []int64{10, 7, -4, 2, -1}
	for _, d := range deltas {
		reason := entity.ReasonProduction
		if d < 0 {
			reason = entity.ReasonTransferOut
		}
		_, err := applyDelta(t, s, loc, item, batch, d, reason)
		require.NoError(t, err)
	}

	rows, err := s.Repos().History.ListByKey(loc, item, batch)
	require.NoError(t, err)
	require.Len(t, rows, len(deltas), "una fila de auditoría por mutación")

	var replay int64
	for i, row := range rows {
		replay += row.Delta
		assert.Equal(t, replay, row.Resulting, "resulting debe reflejar el acumulado en la fila %d", i)
		assert.Equal(t, testActor, row.CreatedBy)
	}

	led := ledger.New(s.Repos().Stock, s.Repos().History)
	qty, err := led.GetQuantity(loc, item, batch)
	require.NoError(t, err)
	assert.Equal(t, replay, qty, "el replay del historial debe reproducir la cantidad viva")
}

// Si la transacción falla después de un delta, ni el stock ni la auditoría
// quedan persistidos.
func TestApplyDelta_RollbackAtomico(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)

	errBoom := domain.ErrConflict
	err := s.TxRunner().Run(context.Background(), func(r ports.TxRepos) error {
		led := ledger.New(r.Stock, r.History)
		if _, err := led.ApplyDelta(loc, item, batch, 10, entity.ReasonProduction, testActor); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	led := ledger.New(s.Repos().Stock, s.Repos().History)
	qty, err := led.GetQuantity(loc, item, batch)
	require.NoError(t, err)
	assert.Zero(t, qty, "el rollback debe revertir el stock")

	rows, err := s.Repos().History.ListByKey(loc, item, batch)
	require.NoError(t, err)
	assert.Empty(t, rows, "el rollback debe revertir la auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales
// ──────────────────────────────────────────────────────────────────────────────

func newAdjustmentUC(s *memory.Store) *ledger.AdjustmentUseCase {
	return ledger.NewAdjustmentUseCase(
		s.TxRunner(), s.Locations(), s.Items(), s.Repos().Batches, logger.Nop(),
	)
}

func TestRegisterAdjustment_AplicaYAudita(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)
	uc := newAdjustmentUC(s)

	resulting, err := uc.RegisterAdjustment(context.Background(), ledger.AdjustmentInput{
		LocationID: loc, ItemID: item, BatchID: batch, Delta: 25, ActorID: testActor,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), resulting)

	rows, err := s.Repos().History.ListByKey(loc, item, batch)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.ReasonManualAdjustment, rows[0].Reason)
}

func TestRegisterAdjustment_ReferenciasInexistentes(t *testing.T) {
	s := memory.NewStore()
	loc, item, _ := seedBase(t, s)
	uc := newAdjustmentUC(s)

	_, err := uc.RegisterAdjustment(context.Background(), ledger.AdjustmentInput{
		LocationID: loc, ItemID: item, BatchID: uuid.New().String(), Delta: 5, ActorID: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "lote inexistente debe rechazarse")
}

func TestRegisterAdjustment_NegativoSinStock(t *testing.T) {
	s := memory.NewStore()
	loc, item, batch := seedBase(t, s)
	uc := newAdjustmentUC(s)

	_, err := uc.RegisterAdjustment(context.Background(), ledger.AdjustmentInput{
		LocationID: loc, ItemID: item, BatchID: batch, Delta: -1, ActorID: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rows, err := s.Repos().History.ListByKey(loc, item, batch)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

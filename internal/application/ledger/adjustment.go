package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// AdjustmentUseCase aplica ajustes manuales auditados (positivos o negativos)
// sobre una tripleta concreta, con motivo MANUAL_ADJUSTMENT.
type AdjustmentUseCase struct {
	txRunner  ports.TxRunner
	locations repository.LocationRepository
	items     repository.ItemRepository
	batches   repository.BatchRepository
	log       *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner ports.TxRunner,
	locations repository.LocationRepository,
	items repository.ItemRepository,
	batches repository.BatchRepository,
	log *logger.Logger,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:  txRunner,
		locations: locations,
		items:     items,
		batches:   batches,
		log:       log,
	}
}

// AdjustmentInput entrada para registrar un ajuste manual.
type AdjustmentInput struct {
	LocationID string
	ItemID     string
	BatchID    string
	Delta      int64
	ActorID    string
}

// RegisterAdjustment valida las referencias y aplica el delta en una
// transacción. Devuelve la cantidad resultante.
func (uc *AdjustmentUseCase) RegisterAdjustment(ctx context.Context, input AdjustmentInput) (int64, error) {
	if input.Delta == 0 || input.ActorID == "" {
		return 0, domain.ErrInvalidInput
	}
	loc, err := uc.locations.GetByID(input.LocationID)
	if err != nil || loc == nil {
		return 0, domain.ErrNotFound
	}
	item, err := uc.items.GetByID(input.ItemID)
	if err != nil || item == nil {
		return 0, domain.ErrNotFound
	}
	batch, err := uc.batches.GetByID(input.BatchID)
	if err != nil || batch == nil {
		return 0, domain.ErrNotFound
	}

	var resulting int64
	err = uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		led := New(r.Stock, r.History)
		res, err := led.ApplyDelta(input.LocationID, input.ItemID, input.BatchID,
			input.Delta, entity.ReasonManualAdjustment, input.ActorID)
		if err != nil {
			return err
		}
		resulting = res
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().
		Str("location_id", input.LocationID).
		Str("item_id", input.ItemID).
		Str("batch_id", input.BatchID).
		Int64("delta", input.Delta).
		Int64("resulting", resulting).
		Msg("ajuste manual registrado")
	return resulting, nil
}

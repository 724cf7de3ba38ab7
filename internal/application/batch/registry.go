package batch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Registry crea y localiza lotes: los de producción (con sus altas de stock en
// la misma transacción) y el centinela LEGACY por ubicación de producción.
type Registry struct {
	txRunner  ports.TxRunner
	locations repository.LocationRepository
	items     repository.ItemRepository
	batches   repository.BatchRepository
	log       *logger.Logger
}

// NewRegistry construye el registro de lotes.
func NewRegistry(
	txRunner ports.TxRunner,
	locations repository.LocationRepository,
	items repository.ItemRepository,
	batches repository.BatchRepository,
	log *logger.Logger,
) *Registry {
	return &Registry{
		txRunner:  txRunner,
		locations: locations,
		items:     items,
		batches:   batches,
		log:       log,
	}
}

// EnsureLegacyBatch devuelve el lote centinela LEGACY de la ubicación,
// creándolo si no existe (get-or-create idempotente). La ubicación debe ser
// de tipo PRODUCTION; si no, ErrNotFound.
func (rg *Registry) EnsureLegacyBatch(ctx context.Context, locationID string) (*entity.Batch, error) {
	loc, err := rg.locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil || loc.Kind != entity.LocationKindProduction {
		return nil, domain.ErrNotFound
	}

	existing, err := rg.batches.GetByCode(locationID, entity.BatchCodeLegacy)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	b := &entity.Batch{
		ID:         uuid.New().String(),
		LocationID: locationID,
		Code:       entity.BatchCodeLegacy,
		CreatedAt:  time.Now(),
	}
	if err := rg.batches.Create(b); err != nil {
		// Carrera con otro creador: el unique (ubicación, código) ganó; re-leer
		if errors.Is(err, domain.ErrDuplicate) {
			return rg.batches.GetByCode(locationID, entity.BatchCodeLegacy)
		}
		return nil, err
	}
	rg.log.Info().Str("location_id", locationID).Str("batch_id", b.ID).Msg("lote LEGACY creado")
	return b, nil
}

// ProductionLine es una línea de alta de un lote de producción.
type ProductionLine struct {
	ItemID   string
	Quantity int64
}

// ProductionBatchInput entrada para crear un lote de producción.
type ProductionBatchInput struct {
	LocationID     string
	Code           string
	ProductionDate time.Time
	Lines          []ProductionLine
	ActorID        string
}

// CreateProductionBatch crea el lote y aplica el alta PRODUCTION de cada línea
// en una sola transacción: el lote y todos sus deltas, o nada.
// Código duplicado en la ubicación → ErrDuplicate.
func (rg *Registry) CreateProductionBatch(ctx context.Context, input ProductionBatchInput) (*entity.Batch, error) {
	if input.Code == "" || input.Code == entity.BatchCodeLegacy || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	loc, err := rg.locations.GetByID(input.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if loc.Kind != entity.LocationKindProduction {
		return nil, domain.ErrInvalidInput
	}
	for i, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, domain.NewLineError(i, line.ItemID, domain.ErrInvalidInput)
		}
		item, err := rg.items.GetByID(line.ItemID)
		if err != nil || item == nil {
			return nil, domain.NewLineError(i, line.ItemID, domain.ErrNotFound)
		}
	}

	b := &entity.Batch{
		ID:             uuid.New().String(),
		LocationID:     input.LocationID,
		Code:           input.Code,
		ProductionDate: input.ProductionDate,
		CreatedAt:      time.Now(),
	}
	err = rg.txRunner.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Batches.Create(b); err != nil {
			return err
		}
		led := ledger.New(r.Stock, r.History)
		for i, line := range input.Lines {
			if _, err := led.ApplyDelta(input.LocationID, line.ItemID, b.ID,
				line.Quantity, entity.ReasonProduction, input.ActorID); err != nil {
				return domain.NewLineError(i, line.ItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rg.log.Info().
		Str("batch_id", b.ID).
		Str("batch_code", b.Code).
		Str("location_id", b.LocationID).
		Int("lines", len(input.Lines)).
		Msg("lote de producción creado")
	return b, nil
}

package batch

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Allocator decide de qué lotes se descuenta una cantidad solicitada.
// Solo lee; nunca muta. Debe usarse con un repositorio atado a la transacción
// del caller: las filas candidatas quedan bloqueadas (FOR UPDATE) para que los
// deltas posteriores de esa misma tx no puedan fallar por carrera.
type Allocator struct {
	stock repository.StockRepository
}

// NewAllocator construye el asignador sobre el repositorio de stock dado.
func NewAllocator(stock repository.StockRepository) *Allocator {
	return &Allocator{stock: stock}
}

// Allocate devuelve las porciones (lote, cantidad) que suman exactamente
// requested para (ubicación, item).
//
// Con explicitBatchID la asignación es de un solo lote y valida que su
// disponibilidad cubra lo solicitado. Sin él, consume greedy los lotes
// disponibles del más antiguo (código ascendente) al más nuevo. Si el total
// disponible no alcanza falla con ErrInsufficientStock: nunca se devuelve una
// asignación parcial.
func (a *Allocator) Allocate(locationID, itemID string, requested int64, explicitBatchID string) ([]entity.BatchAllocation, error) {
	if locationID == "" || itemID == "" || requested <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if explicitBatchID != "" {
		stock, err := a.stock.GetForUpdate(locationID, itemID, explicitBatchID)
		if err != nil {
			return nil, err
		}
		if stock.Quantity < requested {
			return nil, domain.ErrInsufficientStock
		}
		return []entity.BatchAllocation{{BatchID: explicitBatchID, Quantity: requested}}, nil
	}

	available, err := a.stock.AvailableBatchesForUpdate(locationID, itemID)
	if err != nil {
		return nil, err
	}
	var allocs []entity.BatchAllocation
	remaining := requested
	for _, bs := range available {
		if remaining == 0 {
			break
		}
		take := bs.Quantity
		if take > remaining {
			take = remaining
		}
		allocs = append(allocs, entity.BatchAllocation{BatchID: bs.BatchID, Quantity: take})
		remaining -= take
	}
	if remaining > 0 {
		return nil, domain.ErrInsufficientStock
	}
	return allocs, nil
}

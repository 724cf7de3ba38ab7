package ledger

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
)

// Ledger es el único punto donde se mutan cantidades de stock. Cada mutación
// bloquea la fila (SELECT FOR UPDATE), rechaza resultados negativos y escribe
// su fila de auditoría en la misma transacción: ambas o ninguna.
//
// Construir con repositorios atados a la tx para escribir; con repositorios
// sobre el pool para las lecturas sueltas (GetQuantity, AvailableBatches).
type Ledger struct {
	stock   repository.StockRepository
	history repository.StockHistoryRepository
}

// New construye el ledger sobre los repositorios dados.
func New(stock repository.StockRepository, history repository.StockHistoryRepository) *Ledger {
	return &Ledger{stock: stock, history: history}
}

// ApplyDelta aplica current + delta sobre la tripleta bloqueada y devuelve la
// cantidad resultante. Si el resultado sería negativo falla con
// ErrInsufficientStock y no persiste nada.
func (l *Ledger) ApplyDelta(locationID, itemID, batchID string, delta int64, reason, actorID string) (int64, error) {
	if locationID == "" || itemID == "" || batchID == "" {
		return 0, domain.ErrInvalidInput
	}
	if delta == 0 || !entity.ValidReason(reason) {
		return 0, domain.ErrInvalidInput
	}

	// Bloquea la fila para serializar los read-modify-write por tripleta
	stock, err := l.stock.GetForUpdate(locationID, itemID, batchID)
	if err != nil {
		return 0, err
	}
	resulting := stock.Quantity + delta
	if resulting < 0 {
		metrics.InsufficientStockTotal.Inc()
		return 0, domain.ErrInsufficientStock
	}

	now := time.Now()
	stock.Quantity = resulting
	stock.UpdatedAt = now
	if err := l.stock.Upsert(stock); err != nil {
		return 0, err
	}
	row := &entity.StockHistory{
		LocationID: locationID,
		ItemID:     itemID,
		BatchID:    batchID,
		Delta:      delta,
		Resulting:  resulting,
		Reason:     reason,
		CreatedBy:  actorID,
		CreatedAt:  now,
	}
	if err := l.history.Create(row); err != nil {
		return 0, err
	}
	metrics.LedgerMutationsTotal.WithLabelValues(reason).Inc()
	return resulting, nil
}

// GetQuantity devuelve la cantidad viva de la tripleta (0 si la fila no existe).
func (l *Ledger) GetQuantity(locationID, itemID, batchID string) (int64, error) {
	stock, err := l.stock.Get(locationID, itemID, batchID)
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// AvailableBatches devuelve los lotes con cantidad > 0 para (ubicación, item),
// ordenados por código ascendente (convención: el más antiguo primero).
func (l *Ledger) AvailableBatches(locationID, itemID string) ([]*entity.BatchStock, error) {
	if locationID == "" || itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return l.stock.AvailableBatches(locationID, itemID)
}

package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockHistoryFilter filtros para consultar el libro de auditoría.
type StockHistoryFilter struct {
	LocationID string
	ItemID     string
	BatchID    string
	Reason     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// StockHistoryRepository define el puerto del libro de auditoría append-only.
// No hay Update ni Delete: las filas son inmutables.
type StockHistoryRepository interface {
	Create(row *entity.StockHistory) error
	List(filter StockHistoryFilter) ([]*entity.StockHistory, error)
	// ListByKey devuelve las filas de una tripleta en orden de inserción,
	// para verificación de replay.
	ListByKey(locationID, itemID, batchID string) ([]*entity.StockHistory, error)
}

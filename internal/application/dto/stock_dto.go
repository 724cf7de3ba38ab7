package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RegisterAdjustmentRequest body para POST /api/stock/adjustments.
type RegisterAdjustmentRequest struct {
	LocationID string `json:"location_id"`
	ItemID     string `json:"item_id"`
	BatchID    string `json:"batch_id"`
	Delta      int64  `json:"delta"` // positivo entrada, negativo salida
}

// BatchStockDTO disponibilidad de un lote para (ubicación, item).
type BatchStockDTO struct {
	BatchID   string `json:"batch_id"`
	BatchCode string `json:"batch_code"`
	Quantity  int64  `json:"quantity"`
}

// NewBatchStockDTO mapea la disponibilidad a JSON.
func NewBatchStockDTO(bs *entity.BatchStock) BatchStockDTO {
	return BatchStockDTO{BatchID: bs.BatchID, BatchCode: bs.BatchCode, Quantity: bs.Quantity}
}

// StockHistoryDTO fila del libro de auditoría.
type StockHistoryDTO struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	ItemID     string    `json:"item_id"`
	BatchID    string    `json:"batch_id"`
	Delta      int64     `json:"delta"`
	Resulting  int64     `json:"resulting"`
	Reason     string    `json:"reason"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewStockHistoryDTO mapea una fila de auditoría a JSON.
func NewStockHistoryDTO(h *entity.StockHistory) StockHistoryDTO {
	return StockHistoryDTO{
		ID:         h.ID,
		LocationID: h.LocationID,
		ItemID:     h.ItemID,
		BatchID:    h.BatchID,
		Delta:      h.Delta,
		Resulting:  h.Resulting,
		Reason:     h.Reason,
		CreatedBy:  h.CreatedBy,
		CreatedAt:  h.CreatedAt,
	}
}

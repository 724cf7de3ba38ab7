package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateProductionBatchRequest body para POST /api/batches/production.
type CreateProductionBatchRequest struct {
	LocationID     string               `json:"location_id"`
	Code           string               `json:"code"`
	ProductionDate time.Time            `json:"production_date"`
	Lines          []ProductionLineBody `json:"lines"`
}

// ProductionLineBody línea de alta de producción.
type ProductionLineBody struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// EnsureLegacyBatchRequest body para POST /api/batches/legacy.
type EnsureLegacyBatchRequest struct {
	LocationID string `json:"location_id"`
}

// BatchResponse proyección JSON de un lote.
type BatchResponse struct {
	ID             string    `json:"id"`
	LocationID     string    `json:"location_id"`
	Code           string    `json:"code"`
	ProductionDate time.Time `json:"production_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBatchResponse mapea la entidad a su respuesta JSON.
func NewBatchResponse(b *entity.Batch) BatchResponse {
	return BatchResponse{
		ID:             b.ID,
		LocationID:     b.LocationID,
		Code:           b.Code,
		ProductionDate: b.ProductionDate,
		CreatedAt:      b.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockLevelDTO fila del reporte de niveles de stock.
type StockLevelDTO struct {
	LocationCode string    `json:"location_code"`
	ItemCode     string    `json:"item_code"`
	ItemName     string    `json:"item_name"`
	BatchCode    string    `json:"batch_code"`
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStockLevelDTO mapea la fila de proyección a JSON.
func NewStockLevelDTO(r *entity.StockLevelRow) StockLevelDTO {
	return StockLevelDTO{
		LocationCode: r.LocationCode,
		ItemCode:     r.ItemCode,
		ItemName:     r.ItemName,
		BatchCode:    r.BatchCode,
		Quantity:     r.Quantity,
		UpdatedAt:    r.UpdatedAt,
	}
}

// TransferHistoryDTO fila del reporte de traslados.
type TransferHistoryDTO struct {
	TransferOrderID string    `json:"transfer_order_id"`
	PurchaseOrderID string    `json:"purchase_order_id"`
	SourceLocCode   string    `json:"source_loc_code"`
	DestLocCode     string    `json:"dest_loc_code"`
	Status          string    `json:"status"`
	TotalShipped    int64     `json:"total_shipped"`
	TotalReceived   int64     `json:"total_received"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewTransferHistoryDTO mapea la fila de proyección a JSON.
func NewTransferHistoryDTO(r *entity.TransferHistoryRow) TransferHistoryDTO {
	return TransferHistoryDTO{
		TransferOrderID: r.TransferOrderID,
		PurchaseOrderID: r.PurchaseOrderID,
		SourceLocCode:   r.SourceLocCode,
		DestLocCode:     r.DestLocCode,
		Status:          r.Status,
		TotalShipped:    r.TotalShipped,
		TotalReceived:   r.TotalReceived,
		CreatedAt:       r.CreatedAt,
	}
}

// ProductionSummaryDTO fila del reporte de producción por lote.
type ProductionSummaryDTO struct {
	BatchID        string    `json:"batch_id"`
	BatchCode      string    `json:"batch_code"`
	LocationCode   string    `json:"location_code"`
	ProductionDate time.Time `json:"production_date"`
	TotalProduced  int64     `json:"total_produced"`
	ItemCount      int64     `json:"item_count"`
}

// NewProductionSummaryDTO mapea la fila de proyección a JSON.
func NewProductionSummaryDTO(r *entity.ProductionSummaryRow) ProductionSummaryDTO {
	return ProductionSummaryDTO{
		BatchID:        r.BatchID,
		BatchCode:      r.BatchCode,
		LocationCode:   r.LocationCode,
		ProductionDate: r.ProductionDate,
		TotalProduced:  r.TotalProduced,
		ItemCount:      r.ItemCount,
	}
}

package entity

import "time"

// Filas de proyecciones de solo lectura (joins sin lógica de negocio).

// StockLevelRow es el nivel de stock actual por ubicación/item/lote.
type StockLevelRow struct {
	LocationCode string
	ItemCode     string
	ItemName     string
	BatchCode    string
	Quantity     int64
	UpdatedAt    time.Time
}

// TransferHistoryRow resume una orden de traslado y su recepción (si existe).
type TransferHistoryRow struct {
	TransferOrderID string
	PurchaseOrderID string
	SourceLocCode   string
	DestLocCode     string
	Status          string
	TotalShipped    int64
	TotalReceived   int64
	CreatedAt       time.Time
}

// ProductionSummaryRow resume las altas por producción de un lote.
type ProductionSummaryRow struct {
	BatchID        string
	BatchCode      string
	LocationCode   string
	ProductionDate time.Time
	TotalProduced  int64
	ItemCount      int64
}

package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreatePurchaseOrderRequest body para POST /api/orders/purchase.
type CreatePurchaseOrderRequest struct {
	SourceLocationID string                  `json:"source_location_id"`
	DestLocationID   string                  `json:"dest_location_id"`
	Lines            []PurchaseOrderLineBody `json:"lines"`
}

// PurchaseOrderLineBody línea solicitada.
type PurchaseOrderLineBody struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// CreateTransferOrderRequest body para POST /api/orders/transfer.
// batch_id vacío delega la selección de lotes al asignador.
type CreateTransferOrderRequest struct {
	PurchaseOrderID string                  `json:"purchase_order_id"`
	EmployeeID      string                  `json:"employee_id"`
	Lines           []TransferOrderLineBody `json:"lines"`
}

// TransferOrderLineBody línea a despachar.
type TransferOrderLineBody struct {
	ItemID   string `json:"item_id"`
	BatchID  string `json:"batch_id,omitempty"`
	Quantity int64  `json:"quantity"`
}

// CreateReceiveOrderRequest body para POST /api/orders/receive.
type CreateReceiveOrderRequest struct {
	TransferOrderID string                 `json:"transfer_order_id"`
	Lines           []ReceiveOrderLineBody `json:"lines"`
}

// ReceiveOrderLineBody línea recibida contra la línea despachada (item, lote).
type ReceiveOrderLineBody struct {
	ItemID      string `json:"item_id"`
	BatchID     string `json:"batch_id"`
	QtyReceived int64  `json:"qty_received"`
}

// PurchaseOrderResponse proyección JSON de una orden de compra.
type PurchaseOrderResponse struct {
	ID               string                  `json:"id"`
	SourceLocationID string                  `json:"source_location_id"`
	DestLocationID   string                  `json:"dest_location_id"`
	Status           string                  `json:"status"`
	IsActive         bool                    `json:"is_active"`
	Lines            []PurchaseOrderLineBody `json:"lines"`
	CreatedBy        string                  `json:"created_by"`
	CreatedAt        time.Time               `json:"created_at"`
}

// NewPurchaseOrderResponse mapea la entidad a su respuesta JSON.
func NewPurchaseOrderResponse(po *entity.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:               po.ID,
		SourceLocationID: po.SourceLocID,
		DestLocationID:   po.DestLocID,
		Status:           po.Status,
		IsActive:         po.IsActive,
		CreatedBy:        po.CreatedBy,
		CreatedAt:        po.CreatedAt,
	}
	for _, l := range po.Lines {
		resp.Lines = append(resp.Lines, PurchaseOrderLineBody{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return resp
}

// TransferOrderResponse proyección JSON de una orden de traslado.
type TransferOrderResponse struct {
	ID              string                      `json:"id"`
	PurchaseOrderID string                      `json:"purchase_order_id"`
	EmployeeID      string                      `json:"employee_id"`
	Status          string                      `json:"status"`
	Lines           []TransferOrderLineResolved `json:"lines"`
	CreatedBy       string                      `json:"created_by"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// TransferOrderLineResolved línea despachada con el lote ya resuelto.
type TransferOrderLineResolved struct {
	ItemID   string `json:"item_id"`
	BatchID  string `json:"batch_id"`
	Quantity int64  `json:"quantity"`
}

// NewTransferOrderResponse mapea la entidad a su respuesta JSON.
func NewTransferOrderResponse(to *entity.TransferOrder) TransferOrderResponse {
	resp := TransferOrderResponse{
		ID:              to.ID,
		PurchaseOrderID: to.PurchaseOrderID,
		EmployeeID:      to.EmployeeID,
		Status:          to.Status,
		CreatedBy:       to.CreatedBy,
		CreatedAt:       to.CreatedAt,
	}
	for _, l := range to.Lines {
		resp.Lines = append(resp.Lines, TransferOrderLineResolved{ItemID: l.ItemID, BatchID: l.BatchID, Quantity: l.Quantity})
	}
	return resp
}

// ReceiveOrderResponse proyección JSON de una orden de recepción.
type ReceiveOrderResponse struct {
	ID              string                  `json:"id"`
	TransferOrderID string                  `json:"transfer_order_id"`
	Lines           []ReceiveOrderLineReply `json:"lines"`
	CreatedBy       string                  `json:"created_by"`
	CreatedAt       time.Time               `json:"created_at"`
}

// ReceiveOrderLineReply línea recibida con su discrepancia auditada.
type ReceiveOrderLineReply struct {
	ItemID      string `json:"item_id"`
	BatchID     string `json:"batch_id"`
	QtyShipped  int64  `json:"qty_shipped"`
	QtyReceived int64  `json:"qty_received"`
	Discrepancy int64  `json:"discrepancy"`
}

// NewReceiveOrderResponse mapea la entidad a su respuesta JSON.
func NewReceiveOrderResponse(ro *entity.ReceiveOrder) ReceiveOrderResponse {
	resp := ReceiveOrderResponse{
		ID:              ro.ID,
		TransferOrderID: ro.TransferOrderID,
		CreatedBy:       ro.CreatedBy,
		CreatedAt:       ro.CreatedAt,
	}
	for _, l := range ro.Lines {
		resp.Lines = append(resp.Lines, ReceiveOrderLineReply{
			ItemID:      l.ItemID,
			BatchID:     l.BatchID,
			QtyShipped:  l.QtyShipped,
			QtyReceived: l.QtyReceived,
			Discrepancy: l.Discrepancy,
		})
	}
	return resp
}

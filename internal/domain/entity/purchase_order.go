package entity

import "time"

// Estados de una orden de compra.
const (
	POStatusCreated   = "CREATED"    // recién creada, aún sin traslado
	POStatusInTransit = "IN_TRANSIT" // existe una orden de traslado en camino
	POStatusFulfilled = "FULFILLED"  // recibida en destino (terminal)
)

// PurchaseOrder es la primera etapa del flujo PO → TO → RO: la solicitud de
// mercancía de una ubicación destino a una ubicación origen.
// Las líneas son inmutables tras la creación; solo cambian Status e IsActive.
type PurchaseOrder struct {
	ID          string
	SourceLocID string
	DestLocID   string
	Status      string
	IsActive    bool // desactivable solo mientras Status == CREATED
	Lines       []PurchaseOrderLine
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseOrderLine es una línea solicitada (item, cantidad).
type PurchaseOrderLine struct {
	ItemID   string
	Quantity int64
}

// HasItem indica si la orden solicita el item dado.
func (po *PurchaseOrder) HasItem(itemID string) bool {
	for _, l := range po.Lines {
		if l.ItemID == itemID {
			return true
		}
	}
	return false
}

package entity

import "time"

// Estados de una orden de traslado.
const (
	TOStatusInTransit = "IN_TRANSIT" // despachada, stock descontado en origen
	TOStatusReceived  = "RECEIVED"   // cerrada por una orden de recepción (terminal)
)

// TransferOrder es la segunda etapa del flujo: el despacho físico contra una
// orden de compra. Sus líneas llevan el lote resuelto por el asignador y la
// cantidad descontada en origen. Inmutables tras la creación.
type TransferOrder struct {
	ID              string
	PurchaseOrderID string
	EmployeeID      string // transportista / responsable del traslado
	Status          string
	Lines           []TransferOrderLine
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransferOrderLine es una línea despachada (item, lote, cantidad).
type TransferOrderLine struct {
	ItemID   string
	BatchID  string
	Quantity int64 // cantidad despachada (descontada en origen)
}

// FindLine busca la línea despachada para (item, lote). Devuelve nil si no existe.
func (to *TransferOrder) FindLine(itemID, batchID string) *TransferOrderLine {
	for i := range to.Lines {
		if to.Lines[i].ItemID == itemID && to.Lines[i].BatchID == batchID {
			return &to.Lines[i]
		}
	}
	return nil
}

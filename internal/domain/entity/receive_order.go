package entity

import "time"

// ReceiveOrder es la tercera etapa del flujo: la recepción en destino que
// cierra una orden de traslado (modelo de recepción única y terminal).
// A lo sumo una RO por TO.
type ReceiveOrder struct {
	ID              string
	TransferOrderID string
	Lines           []ReceiveOrderLine
	CreatedBy       string
	CreatedAt       time.Time
}

// ReceiveOrderLine registra lo recibido contra lo despachado para (item, lote).
// Discrepancy = despachado - recibido; solo se audita, nunca dispara reversos.
type ReceiveOrderLine struct {
	ItemID      string
	BatchID     string
	QtyShipped  int64
	QtyReceived int64
	Discrepancy int64
}

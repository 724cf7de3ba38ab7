package entity

import "time"

// Motivos de mutación del ledger (conjunto cerrado; nunca texto libre).
const (
	ReasonProduction       = "PRODUCTION"        // alta por lote de producción
	ReasonTransferOut      = "TRANSFER_OUT"      // salida por orden de traslado
	ReasonReceiveIn        = "RECEIVE_IN"        // entrada por orden de recepción
	ReasonManualAdjustment = "MANUAL_ADJUSTMENT" // ajuste manual auditado
	ReasonLegacyMigration  = "LEGACY_MIGRATION"  // re-ubicación al lote LEGACY
)

// ValidReason indica si el motivo pertenece al conjunto cerrado.
func ValidReason(reason string) bool {
	switch reason {
	case ReasonProduction, ReasonTransferOut, ReasonReceiveIn,
		ReasonManualAdjustment, ReasonLegacyMigration:
		return true
	}
	return false
}

// StockHistory es una fila inmutable del libro de auditoría: exactamente una
// por cada mutación de Stock, escrita en la misma transacción.
//
// Invariante: reproducir las filas de una tripleta en orden de commit devuelve
// la cantidad viva; Resulting de la última fila == Stock.Quantity.
type StockHistory struct {
	ID         string
	LocationID string
	ItemID     string
	BatchID    string
	Delta      int64 // positivo entrada, negativo salida
	Resulting  int64 // cantidad resultante tras aplicar Delta
	Reason     string
	CreatedBy  string // actor (identidad externa)
	CreatedAt  time.Time
}

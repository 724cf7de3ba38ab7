package entity

import "time"

// Stock representa la cantidad viva de un (ubicación, item, lote).
// La tripleta es única; Quantity nunca es negativa. Las filas no se borran:
// pueden quedar en cero indefinidamente.
//
// BatchID vacío identifica stock pre-trazabilidad aún no migrado al lote
// LEGACY (ver application/migration).
type Stock struct {
	LocationID string
	ItemID     string
	BatchID    string
	Quantity   int64
	UpdatedAt  time.Time
}

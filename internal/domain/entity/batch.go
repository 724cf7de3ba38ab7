package entity

import "time"

// BatchCodeLegacy es el lote centinela que absorbe stock registrado antes de
// que existiera la trazabilidad por lotes. Existe uno por ubicación de producción.
const BatchCodeLegacy = "LEGACY"

// Batch representa un lote de producción, dueño de stock trazable.
// Code es único dentro de su ubicación propietaria.
type Batch struct {
	ID             string
	LocationID     string // ubicación propietaria (tipo PRODUCTION)
	Code           string
	ProductionDate time.Time
	CreatedAt      time.Time
}

// IsLegacy indica si el lote es el centinela de stock pre-trazabilidad.
func (b *Batch) IsLegacy() bool { return b.Code == BatchCodeLegacy }

// BatchStock es la disponibilidad de un lote para un (ubicación, item).
type BatchStock struct {
	BatchID   string
	BatchCode string
	Quantity  int64
}

// BatchAllocation es la porción de un lote asignada por el asignador
// para satisfacer una cantidad solicitada.
type BatchAllocation struct {
	BatchID  string
	Quantity int64
}

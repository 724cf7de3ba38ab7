package entity

import "time"

// Tipos de ubicación (inventario físico).
const (
	LocationKindProduction = "PRODUCTION" // planta de producción, origen de lotes
	LocationKindHub        = "HUB"        // centro de distribución
	LocationKindStore      = "STORE"      // punto de venta
)

// Location representa una ubicación física donde se almacena stock (multi-ubicación).
type Location struct {
	ID        string
	Code      string // código único
	Name      string
	Kind      string // PRODUCTION | HUB | STORE
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

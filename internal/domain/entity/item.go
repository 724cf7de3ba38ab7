package entity

import "time"

// Item representa un SKU del catálogo maestro.
type Item struct {
	ID          string
	Code        string // código único
	Name        string
	UnitMeasure string // unidad de medida (UND, KG, CAJA, ...)
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

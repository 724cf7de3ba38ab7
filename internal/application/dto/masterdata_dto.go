package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	UnitMeasure string `json:"unit_measure"`
}

// ItemResponse proyección JSON de un item del catálogo.
type ItemResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	UnitMeasure string    `json:"unit_measure"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItemResponse mapea la entidad a su respuesta JSON.
func NewItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		Name:        i.Name,
		UnitMeasure: i.UnitMeasure,
		IsActive:    i.IsActive,
		CreatedAt:   i.CreatedAt,
	}
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"` // PRODUCTION | HUB | STORE
}

// LocationResponse proyección JSON de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLocationResponse mapea la entidad a su respuesta JSON.
func NewLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Kind:      l.Kind,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
	}
}

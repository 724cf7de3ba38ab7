package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia de lotes.
type BatchRepository interface {
	// Create falla con domain.ErrDuplicate si (ubicación, código) ya existe.
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetByCode devuelve (nil, nil) si el lote no existe en esa ubicación.
	GetByCode(locationID, code string) (*entity.Batch, error)
	ListByLocation(locationID string) ([]*entity.Batch, error)
}

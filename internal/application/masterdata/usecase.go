// Package masterdata gestiona el catálogo de items y ubicaciones que el resto
// del sistema consume como verificaciones de existencia.
package masterdata

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase altas y listados de datos maestros.
type UseCase struct {
	items     repository.ItemRepository
	locations repository.LocationRepository
}

// NewUseCase construye el caso de uso de datos maestros.
func NewUseCase(items repository.ItemRepository, locations repository.LocationRepository) *UseCase {
	return &UseCase{items: items, locations: locations}
}

// CreateItem da de alta un SKU. Código duplicado → ErrDuplicate.
func (uc *UseCase) CreateItem(code, name, unitMeasure string) (*entity.Item, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if unitMeasure == "" {
		unitMeasure = "UND"
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		UnitMeasure: unitMeasure,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems listado paginado del catálogo.
func (uc *UseCase) ListItems(limit, offset int) ([]*entity.Item, error) {
	return uc.items.List(limit, offset)
}

// CreateLocation da de alta una ubicación. El tipo debe pertenecer al conjunto
// PRODUCTION | HUB | STORE.
func (uc *UseCase) CreateLocation(code, name, kind string) (*entity.Location, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch kind {
	case entity.LocationKindProduction, entity.LocationKindHub, entity.LocationKindStore:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Kind:      kind,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// ListLocations listado paginado de ubicaciones.
func (uc *UseCase) ListLocations(limit, offset int) ([]*entity.Location, error) {
	return uc.locations.List(limit, offset)
}

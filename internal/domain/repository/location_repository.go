package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LocationRepository define el puerto de ubicaciones (datos maestros).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
	// FirstByKind devuelve (nil, nil) si no hay ubicaciones de ese tipo.
	FirstByKind(kind string) (*entity.Location, error)
}

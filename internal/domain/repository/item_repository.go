package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ItemRepository define el puerto del catálogo de SKUs (datos maestros).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
}

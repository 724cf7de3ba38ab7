package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de órdenes de compra.
// Las líneas se insertan con la orden y nunca se modifican.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera para la transición de estado.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
	Deactivate(id string) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}

// TransferOrderRepository define el puerto de órdenes de traslado.
type TransferOrderRepository interface {
	Create(to *entity.TransferOrder) error
	GetByID(id string) (*entity.TransferOrder, error)
	GetByIDForUpdate(id string) (*entity.TransferOrder, error)
	UpdateStatus(id, status string) error
}

// ReceiveOrderRepository define el puerto de órdenes de recepción.
type ReceiveOrderRepository interface {
	Create(ro *entity.ReceiveOrder) error
	GetByID(id string) (*entity.ReceiveOrder, error)
}

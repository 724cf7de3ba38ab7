package ports

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRepos agrupa los puertos de persistencia atados a una misma transacción.
type TxRepos struct {
	Stock    repository.StockRepository
	History  repository.StockHistoryRepository
	Batches  repository.BatchRepository
	Purchase repository.PurchaseOrderRepository
	Transfer repository.TransferOrderRepository
	Receive  repository.ReceiveOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger y las
// órdenes: todo commit o todo rollback, nunca estado parcial visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

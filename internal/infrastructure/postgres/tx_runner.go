package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/ports"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
)

// Ensure TxRunner implements ports.TxRunner.
var _ ports.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos totales ante fallos transitorios (serialización/deadlock).
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado para fallos transitorios. Los errores de dominio
// (entrada inválida, stock insuficiente, conflicto) nunca se reintentan.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Reintenta hasta maxTxAttempts ante 40001/40P01; si el
// fallo transitorio persiste aflora como ErrStorageUnavailable.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
		metrics.TxRetriesTotal.Inc()
	}
	return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrStorageUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepos{
		Stock:    NewStockRepository(tx),
		History:  NewStockHistoryRepository(tx),
		Batches:  NewBatchRepository(tx),
		Purchase: NewPurchaseOrderRepository(tx),
		Transfer: NewTransferOrderRepository(tx),
		Receive:  NewReceiveOrderRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

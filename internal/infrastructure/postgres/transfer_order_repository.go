package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransferOrderRepository = (*TransferOrderRepo)(nil)

// TransferOrderRepo implementación de TransferOrderRepository sobre PostgreSQL.
type TransferOrderRepo struct {
	q Querier
}

// NewTransferOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferOrderRepository(q Querier) *TransferOrderRepo {
	return &TransferOrderRepo{q: q}
}

// Create persiste la cabecera y sus líneas (lote ya resuelto por el asignador).
func (r *TransferOrderRepo) Create(to *entity.TransferOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO transfer_orders (id, po_id, employee_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		to.ID, to.PurchaseOrderID, to.EmployeeID, to.Status,
		to.CreatedBy, to.CreatedAt, to.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create transfer order: %w", err)
	}
	lineQuery := `
		INSERT INTO transfer_order_lines (to_id, line_no, item_id, batch_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for i, line := range to.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, to.ID, i, line.ItemID, line.BatchID, line.Quantity); err != nil {
			return fmt.Errorf("create transfer order line %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *TransferOrderRepo) GetByID(id string) (*entity.TransferOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate bloquea la cabecera para el cierre por recepción.
func (r *TransferOrderRepo) GetByIDForUpdate(id string) (*entity.TransferOrder, error) {
	return r.get(id, true)
}

func (r *TransferOrderRepo) get(id string, forUpdate bool) (*entity.TransferOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, po_id, employee_id, status, created_by, created_at, updated_at
		FROM transfer_orders WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var to entity.TransferOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&to.ID, &to.PurchaseOrderID, &to.EmployeeID, &to.Status,
		&to.CreatedBy, &to.CreatedAt, &to.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer order: %w", err)
	}

	lineQuery := `
		SELECT item_id, batch_id, quantity FROM transfer_order_lines
		WHERE to_id = $1 ORDER BY line_no ASC`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("load transfer order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.TransferOrderLine
		if err := rows.Scan(&line.ItemID, &line.BatchID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer order line: %w", err)
		}
		to.Lines = append(to.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &to, nil
}

// UpdateStatus transiciona el estado de la cabecera; ErrNotFound si no existe.
func (r *TransferOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE transfer_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update transfer order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

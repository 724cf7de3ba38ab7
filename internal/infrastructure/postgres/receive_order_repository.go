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

var _ repository.ReceiveOrderRepository = (*ReceiveOrderRepo)(nil)

// ReceiveOrderRepo implementación de ReceiveOrderRepository sobre PostgreSQL.
type ReceiveOrderRepo struct {
	q Querier
}

// NewReceiveOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiveOrderRepository(q Querier) *ReceiveOrderRepo {
	return &ReceiveOrderRepo{q: q}
}

// Create persiste la recepción y sus líneas. El unique sobre to_id respalda
// en BD el modelo de recepción única por traslado → domain.ErrDuplicate.
func (r *ReceiveOrderRepo) Create(ro *entity.ReceiveOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO receive_orders (id, to_id, created_by, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, ro.ID, ro.TransferOrderID, ro.CreatedBy, ro.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create receive order: %w", err)
	}
	lineQuery := `
		INSERT INTO receive_order_lines (ro_id, line_no, item_id, batch_id, qty_shipped, qty_received, discrepancy)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, line := range ro.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, ro.ID, i,
			line.ItemID, line.BatchID, line.QtyShipped, line.QtyReceived, line.Discrepancy); err != nil {
			return fmt.Errorf("create receive order line %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene la recepción con sus líneas; nil si no existe.
func (r *ReceiveOrderRepo) GetByID(id string) (*entity.ReceiveOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, to_id, created_by, created_at
		FROM receive_orders WHERE id = $1`
	var ro entity.ReceiveOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&ro.ID, &ro.TransferOrderID, &ro.CreatedBy, &ro.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receive order: %w", err)
	}

	lineQuery := `
		SELECT item_id, batch_id, qty_shipped, qty_received, discrepancy
		FROM receive_order_lines WHERE ro_id = $1 ORDER BY line_no ASC`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("load receive order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.ReceiveOrderLine
		if err := rows.Scan(&line.ItemID, &line.BatchID,
			&line.QtyShipped, &line.QtyReceived, &line.Discrepancy); err != nil {
			return nil, fmt.Errorf("scan receive order line: %w", err)
		}
		ro.Lines = append(ro.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &ro, nil
}

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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la cabecera y sus líneas (insertadas una vez, nunca mutadas).
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (id, source_loc_id, dest_loc_id, status, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.SourceLocID, po.DestLocID, po.Status, po.IsActive,
		po.CreatedBy, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_order_lines (po_id, line_no, item_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i, line := range po.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, po.ID, i, line.ItemID, line.Quantity); err != nil {
			return fmt.Errorf("create purchase order line %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate bloquea la cabecera para la transición de estado.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.get(id, true)
}

func (r *PurchaseOrderRepo) get(id string, forUpdate bool) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, source_loc_id, dest_loc_id, status, is_active, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.SourceLocID, &po.DestLocID, &po.Status, &po.IsActive,
		&po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadLines(ctx, &po); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		SELECT item_id, quantity FROM purchase_order_lines
		WHERE po_id = $1 ORDER BY line_no ASC`
	rows, err := r.q.Query(ctx, query, po.ID)
	if err != nil {
		return fmt.Errorf("load purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.PurchaseOrderLine
		if err := rows.Scan(&line.ItemID, &line.Quantity); err != nil {
			return fmt.Errorf("scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, line)
	}
	return rows.Err()
}

// UpdateStatus transiciona el estado de la cabecera; ErrNotFound si no existe.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate apaga el flag is_active (la validación de estado es del caso de uso).
func (r *PurchaseOrderRepo) Deactivate(id string) error {
	query := `UPDATE purchase_orders SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve órdenes paginadas, más recientes primero, con líneas.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	ctx := context.Background()
	query := `
		SELECT id, source_loc_id, dest_loc_id, status, is_active, created_by, created_at, updated_at
		FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var result []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.SourceLocID, &po.DestLocID, &po.Status,
			&po.IsActive, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		result = append(result, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range result {
		if err := r.loadLines(ctx, po); err != nil {
			return nil, err
		}
	}
	return result, nil
}

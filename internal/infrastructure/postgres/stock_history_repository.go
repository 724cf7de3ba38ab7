package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo implementación del libro de auditoría sobre PostgreSQL.
// Solo inserta y lee: las filas son inmutables.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Create persiste una fila de auditoría.
func (r *StockHistoryRepo) Create(row *entity.StockHistory) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_history (id, location_id, item_id, batch_id, delta, resulting, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		row.ID, row.LocationID, row.ItemID, row.BatchID,
		row.Delta, row.Resulting, row.Reason, row.CreatedBy, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock history: %w", err)
	}
	return nil
}

// List consulta el libro con filtros opcionales y paginación.
func (r *StockHistoryRepo) List(filter repository.StockHistoryFilter) ([]*entity.StockHistory, error) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, cond+"$"+strconv.Itoa(len(args)))
	}
	if filter.LocationID != "" {
		add("location_id = ", filter.LocationID)
	}
	if filter.ItemID != "" {
		add("item_id = ", filter.ItemID)
	}
	if filter.BatchID != "" {
		add("batch_id = ", filter.BatchID)
	}
	if filter.Reason != "" {
		add("reason = ", filter.Reason)
	}
	if filter.From != nil {
		add("created_at >= ", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= ", *filter.To)
	}

	query := `
		SELECT id, location_id, item_id, batch_id, delta, resulting, reason, created_by, created_at
		FROM stock_history`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC, id DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

// ListByKey devuelve las filas de una tripleta en orden de inserción.
func (r *StockHistoryRepo) ListByKey(locationID, itemID, batchID string) ([]*entity.StockHistory, error) {
	query := `
		SELECT id, location_id, item_id, batch_id, delta, resulting, reason, created_by, created_at
		FROM stock_history
		WHERE location_id = $1 AND item_id = $2 AND batch_id = $3
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, locationID, itemID, batchID)
	if err != nil {
		return nil, fmt.Errorf("list stock history by key: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func scanHistoryRows(rows pgx.Rows) ([]*entity.StockHistory, error) {
	var result []*entity.StockHistory
	for rows.Next() {
		var h entity.StockHistory
		if err := rows.Scan(&h.ID, &h.LocationID, &h.ItemID, &h.BatchID,
			&h.Delta, &h.Resulting, &h.Reason, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		result = append(result, &h)
	}
	return result, rows.Err()
}

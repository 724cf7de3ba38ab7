package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo proyecciones de solo lectura. Cada consulta corre en una tx
// REPEATABLE READ de solo lectura para una vista consistente
// punto-en-el-tiempo entre las tablas del join.
type ReportsRepo struct {
	pool *pgxpool.Pool
}

// NewReportsRepository construye el adaptador de reportes sobre el pool.
func NewReportsRepository(pool *pgxpool.Pool) *ReportsRepo {
	return &ReportsRepo{pool: pool}
}

func (r *ReportsRepo) inReadTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// StockLevels niveles actuales por ubicación/item/lote (locationID vacío = todas).
func (r *ReportsRepo) StockLevels(ctx context.Context, locationID string) ([]*entity.StockLevelRow, error) {
	query := `
		SELECT l.code, i.code, i.name, COALESCE(b.code, ''), s.quantity, s.updated_at
		FROM stock s
		JOIN locations l ON l.id = s.location_id
		JOIN items i ON i.id = s.item_id
		LEFT JOIN batches b ON b.id = s.batch_id
		WHERE ($1 = '' OR s.location_id = $1)
		ORDER BY l.code, i.code, b.code NULLS FIRST`
	var result []*entity.StockLevelRow
	err := r.inReadTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, locationID)
		if err != nil {
			return fmt.Errorf("stock levels: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var row entity.StockLevelRow
			if err := rows.Scan(&row.LocationCode, &row.ItemCode, &row.ItemName,
				&row.BatchCode, &row.Quantity, &row.UpdatedAt); err != nil {
				return fmt.Errorf("scan stock level: %w", err)
			}
			result = append(result, &row)
		}
		return rows.Err()
	})
	return result, err
}

// TransferHistory traslados con totales despachados/recibidos, más recientes primero.
func (r *ReportsRepo) TransferHistory(ctx context.Context, limit, offset int) ([]*entity.TransferHistoryRow, error) {
	query := `
		SELECT t.id, t.po_id, src.code, dst.code, t.status,
		       COALESCE(SUM(tl.quantity), 0),
		       COALESCE((SELECT SUM(rl.qty_received)
		                 FROM receive_orders ro
		                 JOIN receive_order_lines rl ON rl.ro_id = ro.id
		                 WHERE ro.to_id = t.id), 0),
		       t.created_at
		FROM transfer_orders t
		JOIN purchase_orders p ON p.id = t.po_id
		JOIN locations src ON src.id = p.source_loc_id
		JOIN locations dst ON dst.id = p.dest_loc_id
		LEFT JOIN transfer_order_lines tl ON tl.to_id = t.id
		GROUP BY t.id, t.po_id, src.code, dst.code, t.status, t.created_at
		ORDER BY t.created_at DESC
		LIMIT $1 OFFSET $2`
	var result []*entity.TransferHistoryRow
	err := r.inReadTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, limit, offset)
		if err != nil {
			return fmt.Errorf("transfer history: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var row entity.TransferHistoryRow
			if err := rows.Scan(&row.TransferOrderID, &row.PurchaseOrderID,
				&row.SourceLocCode, &row.DestLocCode, &row.Status,
				&row.TotalShipped, &row.TotalReceived, &row.CreatedAt); err != nil {
				return fmt.Errorf("scan transfer history: %w", err)
			}
			result = append(result, &row)
		}
		return rows.Err()
	})
	return result, err
}

// ProductionSummary altas por lote de producción (locationID vacío = todas).
func (r *ReportsRepo) ProductionSummary(ctx context.Context, locationID string) ([]*entity.ProductionSummaryRow, error) {
	query := `
		SELECT b.id, b.code, l.code, b.production_date,
		       COALESCE(SUM(h.delta), 0), COUNT(DISTINCT h.item_id)
		FROM batches b
		JOIN locations l ON l.id = b.location_id
		LEFT JOIN stock_history h ON h.batch_id = b.id AND h.reason = 'PRODUCTION'
		WHERE ($1 = '' OR b.location_id = $1)
		GROUP BY b.id, b.code, l.code, b.production_date
		ORDER BY b.code ASC`
	var result []*entity.ProductionSummaryRow
	err := r.inReadTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, locationID)
		if err != nil {
			return fmt.Errorf("production summary: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var row entity.ProductionSummaryRow
			if err := rows.Scan(&row.BatchID, &row.BatchCode, &row.LocationCode,
				&row.ProductionDate, &row.TotalProduced, &row.ItemCount); err != nil {
				return fmt.Errorf("scan production summary: %w", err)
			}
			result = append(result, &row)
		}
		return rows.Err()
	})
	return result, err
}

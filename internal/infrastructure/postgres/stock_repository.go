package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de la tripleta; cantidad cero si no existe.
func (r *StockRepo) Get(locationID, itemID, batchID string) (*entity.Stock, error) {
	query := `
		SELECT location_id, item_id, batch_id, quantity, updated_at
		FROM stock WHERE location_id = $1 AND item_id = $2 AND batch_id = $3`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, locationID, itemID, batchID).Scan(
		&s.LocationID, &s.ItemID, &s.BatchID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{LocationID: locationID, ItemID: itemID, BatchID: batchID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
// Si la tripleta aún no existe la materializa en cero y la re-lee bajo
// bloqueo: sin fila no hay nada que bloquear, y dos primeras escrituras
// concurrentes leerían cero las dos y la segunda pisaría a la primera.
func (r *StockRepo) GetForUpdate(locationID, itemID, batchID string) (*entity.Stock, error) {
	query := `
		SELECT location_id, item_id, batch_id, quantity, updated_at
		FROM stock WHERE location_id = $1 AND item_id = $2 AND batch_id = $3
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, locationID, itemID, batchID).Scan(
		&s.LocationID, &s.ItemID, &s.BatchID, &s.Quantity, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		insert := `
			INSERT INTO stock (location_id, item_id, batch_id, quantity, updated_at)
			VALUES ($1, $2, $3, 0, now())
			ON CONFLICT (location_id, item_id, batch_id) WHERE batch_id IS NOT NULL
			DO NOTHING`
		if _, err := r.q.Exec(context.Background(), insert, locationID, itemID, batchID); err != nil {
			return nil, fmt.Errorf("init stock row: %w", err)
		}
		err = r.q.QueryRow(context.Background(), query, locationID, itemID, batchID).Scan(
			&s.LocationID, &s.ItemID, &s.BatchID, &s.Quantity, &s.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad de la tripleta.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (location_id, item_id, batch_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (location_id, item_id, batch_id) WHERE batch_id IS NOT NULL
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.LocationID, stock.ItemID, stock.BatchID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// AvailableBatches devuelve los lotes con cantidad > 0 para (ubicación, item),
// ordenados por código ascendente (el más antiguo primero).
func (r *StockRepo) AvailableBatches(locationID, itemID string) ([]*entity.BatchStock, error) {
	return r.availableBatches(locationID, itemID, false)
}

// AvailableBatchesForUpdate ídem, bloqueando las filas de stock. El orden por
// código hace el orden de bloqueo determinista entre transacciones.
func (r *StockRepo) AvailableBatchesForUpdate(locationID, itemID string) ([]*entity.BatchStock, error) {
	return r.availableBatches(locationID, itemID, true)
}

func (r *StockRepo) availableBatches(locationID, itemID string, forUpdate bool) ([]*entity.BatchStock, error) {
	query := `
		SELECT s.batch_id, b.code, s.quantity
		FROM stock s
		JOIN batches b ON b.id = s.batch_id
		WHERE s.location_id = $1 AND s.item_id = $2 AND s.quantity > 0
		ORDER BY b.code ASC`
	if forUpdate {
		query += `
		FOR UPDATE OF s`
	}
	rows, err := r.q.Query(context.Background(), query, locationID, itemID)
	if err != nil {
		return nil, fmt.Errorf("available batches: %w", err)
	}
	defer rows.Close()

	var result []*entity.BatchStock
	for rows.Next() {
		var bs entity.BatchStock
		if err := rows.Scan(&bs.BatchID, &bs.BatchCode, &bs.Quantity); err != nil {
			return nil, fmt.Errorf("scan available batch: %w", err)
		}
		result = append(result, &bs)
	}
	return result, rows.Err()
}

// ListUnbatched devuelve filas pre-trazabilidad (batch_id NULL), solo para la
// migración LEGACY.
func (r *StockRepo) ListUnbatched(limit int) ([]*entity.Stock, error) {
	query := `
		SELECT location_id, item_id, quantity, updated_at
		FROM stock WHERE batch_id IS NULL
		ORDER BY location_id, item_id
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unbatched stock: %w", err)
	}
	defer rows.Close()

	var result []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.LocationID, &s.ItemID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unbatched stock: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

// GetUnbatchedForUpdate bloquea una fila pre-trazabilidad; nil si ya no existe.
func (r *StockRepo) GetUnbatchedForUpdate(locationID, itemID string) (*entity.Stock, error) {
	query := `
		SELECT location_id, item_id, quantity, updated_at
		FROM stock WHERE location_id = $1 AND item_id = $2 AND batch_id IS NULL
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, locationID, itemID).Scan(
		&s.LocationID, &s.ItemID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unbatched stock for update: %w", err)
	}
	return &s, nil
}

// DeleteUnbatched elimina la fila pre-trazabilidad de (ubicación, item).
func (r *StockRepo) DeleteUnbatched(locationID, itemID string) error {
	query := `DELETE FROM stock WHERE location_id = $1 AND item_id = $2 AND batch_id IS NULL`
	if _, err := r.q.Exec(context.Background(), query, locationID, itemID); err != nil {
		return fmt.Errorf("delete unbatched stock: %w", err)
	}
	return nil
}

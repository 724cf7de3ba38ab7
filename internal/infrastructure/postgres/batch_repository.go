package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote. Unique (location_id, code) → domain.ErrDuplicate.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (id, location_id, code, production_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.LocationID, batch.Code, batch.ProductionDate, batch.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `
		SELECT id, location_id, code, production_date, created_at
		FROM batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCode obtiene un lote por (ubicación, código); nil si no existe.
func (r *BatchRepo) GetByCode(locationID, code string) (*entity.Batch, error) {
	query := `
		SELECT id, location_id, code, production_date, created_at
		FROM batches WHERE location_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, locationID, code))
}

// ListByLocation devuelve los lotes de una ubicación, código ascendente.
func (r *BatchRepo) ListByLocation(locationID string) ([]*entity.Batch, error) {
	query := `
		SELECT id, location_id, code, production_date, created_at
		FROM batches WHERE location_id = $1
		ORDER BY code ASC`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var result []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.LocationID, &b.Code, &b.ProductionDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.LocationID, &b.Code, &b.ProductionDate, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación. Código duplicado → domain.ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, code, name, kind, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Code, location.Name, location.Kind, location.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID; nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `
		SELECT id, code, name, kind, is_active, created_at, updated_at
		FROM locations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List devuelve ubicaciones paginadas por código ascendente.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := `
		SELECT id, code, name, kind, is_active, created_at, updated_at
		FROM locations ORDER BY code ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var result []*entity.Location
	for rows.Next() {
		var loc entity.Location
		if err := rows.Scan(&loc.ID, &loc.Code, &loc.Name, &loc.Kind,
			&loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		result = append(result, &loc)
	}
	return result, rows.Err()
}

// FirstByKind devuelve la primera ubicación activa del tipo dado; nil si no hay.
func (r *LocationRepo) FirstByKind(kind string) (*entity.Location, error) {
	query := `
		SELECT id, code, name, kind, is_active, created_at, updated_at
		FROM locations WHERE kind = $1 AND is_active
		ORDER BY code ASC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, kind))
}

func (r *LocationRepo) scanOne(row pgx.Row) (*entity.Location, error) {
	var loc entity.Location
	err := row.Scan(&loc.ID, &loc.Code, &loc.Name, &loc.Kind,
		&loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &loc, nil
}

package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el contador vivo
// por (ubicación, item, lote). Las mutaciones se usan solo dentro de
// transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la fila; cantidad cero si no existe (fila lazy).
	Get(locationID, itemID, batchID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(locationID, itemID, batchID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error

	// AvailableBatches devuelve (lote, cantidad) con cantidad > 0 para un
	// (ubicación, item), ordenado por código de lote ascendente (el más
	// antiguo primero).
	AvailableBatches(locationID, itemID string) ([]*entity.BatchStock, error)
	// AvailableBatchesForUpdate ídem, bloqueando las filas (orden de bloqueo
	// determinista: código ascendente).
	AvailableBatchesForUpdate(locationID, itemID string) ([]*entity.BatchStock, error)

	// Filas pre-trazabilidad (BatchID vacío), solo para la migración LEGACY.
	ListUnbatched(limit int) ([]*entity.Stock, error)
	GetUnbatchedForUpdate(locationID, itemID string) (*entity.Stock, error)
	DeleteUnbatched(locationID, itemID string) error
}

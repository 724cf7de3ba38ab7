package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReportsRepository define el puerto de proyecciones de solo lectura.
// Cada método ejecuta sus joins con una vista consistente punto-en-el-tiempo.
type ReportsRepository interface {
	StockLevels(ctx context.Context, locationID string) ([]*entity.StockLevelRow, error)
	TransferHistory(ctx context.Context, limit, offset int) ([]*entity.TransferHistoryRow, error)
	ProductionSummary(ctx context.Context, locationID string) ([]*entity.ProductionSummaryRow, error)
}

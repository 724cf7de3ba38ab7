package reports

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase expone las proyecciones de solo lectura (niveles de stock, historial
// de traslados, resumen de producción). Sin lógica de negocio: joins puros con
// lectura consistente punto-en-el-tiempo, delegada al repositorio.
type UseCase struct {
	reports repository.ReportsRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reports repository.ReportsRepository) *UseCase {
	return &UseCase{reports: reports}
}

// StockLevels niveles actuales por ubicación/item/lote (locationID vacío = todas).
func (uc *UseCase) StockLevels(ctx context.Context, locationID string) ([]*entity.StockLevelRow, error) {
	return uc.reports.StockLevels(ctx, locationID)
}

// TransferHistory traslados con totales despachados/recibidos, paginado.
func (uc *UseCase) TransferHistory(ctx context.Context, limit, offset int) ([]*entity.TransferHistoryRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.reports.TransferHistory(ctx, limit, offset)
}

// ProductionSummary altas por lote de producción (locationID vacío = todas).
func (uc *UseCase) ProductionSummary(ctx context.Context, locationID string) ([]*entity.ProductionSummaryRow, error) {
	return uc.reports.ProductionSummary(ctx, locationID)
}

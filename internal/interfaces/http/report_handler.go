package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

// ReportHandler proyecciones de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockLevels godoc
// @Summary      Niveles de stock por ubicación/item/lote
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.StockLevelDTO
// @Router       /api/reports/stock-levels [get]
func (h *ReportHandler) StockLevels(c *fiber.Ctx) error {
	rows, err := h.uc.StockLevels(c.UserContext(), c.Query("location_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockLevelDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewStockLevelDTO(r))
	}
	return c.JSON(out)
}

// Transfers godoc
// @Summary      Historial de traslados con totales despachados/recibidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.TransferHistoryDTO
// @Router       /api/reports/transfers [get]
func (h *ReportHandler) Transfers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	rows, err := h.uc.TransferHistory(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.TransferHistoryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewTransferHistoryDTO(r))
	}
	return c.JSON(out)
}

// Production godoc
// @Summary      Resumen de altas por lote de producción
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.ProductionSummaryDTO
// @Router       /api/reports/production [get]
func (h *ReportHandler) Production(c *fiber.Ctx) error {
	rows, err := h.uc.ProductionSummary(c.UserContext(), c.Query("location_id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductionSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NewProductionSummaryDTO(r))
	}
	return c.JSON(out)
}

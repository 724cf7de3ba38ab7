package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockHandler consultas de stock, historial de auditoría y ajustes manuales
// (protegido).
type StockHandler struct {
	reader       *ledger.Ledger
	history      repository.StockHistoryRepository
	adjustmentUC *ledger.AdjustmentUseCase
}

// NewStockHandler construye el handler. reader debe ir atado al pool (lecturas
// sueltas, sin transacción).
func NewStockHandler(reader *ledger.Ledger, history repository.StockHistoryRepository, adjustmentUC *ledger.AdjustmentUseCase) *StockHandler {
	return &StockHandler{reader: reader, history: history, adjustmentUC: adjustmentUC}
}

// AvailableBatches godoc
// @Summary      Lotes con stock disponible para (ubicación, item)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Param        item_id      query  string  true  "ID del item"
// @Success      200  {array}  dto.BatchStockDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/batches [get]
func (h *StockHandler) AvailableBatches(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	itemID := c.Query("item_id")
	batches, err := h.reader.AvailableBatches(locationID, itemID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BatchStockDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.NewBatchStockDTO(b))
	}
	return c.JSON(out)
}

// Quantity godoc
// @Summary      Cantidad viva de una tripleta (ubicación, item, lote)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Param        item_id      query  string  true  "ID del item"
// @Param        batch_id     query  string  true  "ID del lote"
// @Success      200  {object}  map[string]int64
// @Router       /api/stock/quantity [get]
func (h *StockHandler) Quantity(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	itemID := c.Query("item_id")
	batchID := c.Query("batch_id")
	if locationID == "" || itemID == "" || batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id, item_id y batch_id son requeridos"})
	}
	qty, err := h.reader.GetQuantity(locationID, itemID, batchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"quantity": qty})
}

// History godoc
// @Summary      Historial de auditoría del stock (filtros opcionales)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "ID de la ubicación"
// @Param        item_id      query  string  false  "ID del item"
// @Param        batch_id     query  string  false  "ID del lote"
// @Param        reason       query  string  false  "Motivo (PRODUCTION, TRANSFER_OUT, ...)"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockHistoryDTO
// @Router       /api/stock/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	filter := repository.StockHistoryFilter{
		LocationID: c.Query("location_id"),
		ItemID:     c.Query("item_id"),
		BatchID:    c.Query("batch_id"),
		Reason:     c.Query("reason"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	rows, err := h.history.List(filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockHistoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewStockHistoryDTO(row))
	}
	return c.JSON(out)
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste manual de stock (positivo o negativo)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "Ajuste a aplicar"
// @Success      200   {object}  map[string]int64
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resulting, err := h.adjustmentUC.RegisterAdjustment(c.UserContext(), ledger.AdjustmentInput{
		LocationID: in.LocationID,
		ItemID:     in.ItemID,
		BatchID:    in.BatchID,
		Delta:      in.Delta,
		ActorID:    GetActorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"resulting": resulting})
}

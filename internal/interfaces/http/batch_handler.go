package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/batch"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// BatchHandler maneja lotes de producción y el centinela LEGACY (protegido).
type BatchHandler struct {
	registry *batch.Registry
	batches  repository.BatchRepository
}

// NewBatchHandler construye el handler.
func NewBatchHandler(registry *batch.Registry, batches repository.BatchRepository) *BatchHandler {
	return &BatchHandler{registry: registry, batches: batches}
}

// CreateProduction godoc
// @Summary      Crear lote de producción con sus altas de stock
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionBatchRequest  true  "Lote y líneas producidas"
// @Success      201   {object}  dto.BatchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/production [post]
func (h *BatchHandler) CreateProduction(c *fiber.Ctx) error {
	var in dto.CreateProductionBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := batch.ProductionBatchInput{
		LocationID:     in.LocationID,
		Code:           in.Code,
		ProductionDate: in.ProductionDate,
		ActorID:        GetActorID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, batch.ProductionLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	b, err := h.registry.CreateProductionBatch(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBatchResponse(b))
}

// EnsureLegacy godoc
// @Summary      Asegurar el lote centinela LEGACY de una ubicación de producción
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnsureLegacyBatchRequest  true  "Ubicación de producción"
// @Success      200   {object}  dto.BatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/legacy [post]
func (h *BatchHandler) EnsureLegacy(c *fiber.Ctx) error {
	var in dto.EnsureLegacyBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.registry.EnsureLegacyBatch(c.UserContext(), in.LocationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewBatchResponse(b))
}

// ListByLocation godoc
// @Summary      Listar lotes de una ubicación
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
func (h *BatchHandler) ListByLocation(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es requerido"})
	}
	list, err := h.batches.ListByLocation(locationID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NewBatchResponse(b))
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
)

// OrderHandler maneja el flujo PO → TO → RO (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// CreatePurchase godoc
// @Summary      Crear orden de compra
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Orden solicitada"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/purchase [post]
func (h *OrderHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := orders.PurchaseOrderInput{
		SourceLocID: in.SourceLocationID,
		DestLocID:   in.DestLocationID,
		ActorID:     GetActorID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, orders.PurchaseLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	po, err := h.uc.CreatePurchaseOrder(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOrderResponse(po))
}

// DeactivatePurchase godoc
// @Summary      Desactivar orden de compra (solo en estado CREATED)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de compra"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/purchase/{id}/deactivate [post]
func (h *OrderHandler) DeactivatePurchase(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeactivatePurchaseOrder(c.UserContext(), id, GetActorID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTransfer godoc
// @Summary      Crear orden de traslado (descuenta stock en origen)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferOrderRequest  true  "Traslado a despachar"
// @Success      201   {object}  dto.TransferOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/transfer [post]
func (h *OrderHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := orders.TransferOrderInput{
		PurchaseOrderID: in.PurchaseOrderID,
		EmployeeID:      in.EmployeeID,
		ActorID:         GetActorID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, orders.TransferLine{ItemID: l.ItemID, BatchID: l.BatchID, Quantity: l.Quantity})
	}
	to, err := h.uc.CreateTransferOrder(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferOrderResponse(to))
}

// CreateReceive godoc
// @Summary      Crear orden de recepción (cierra el traslado)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiveOrderRequest  true  "Recepción en destino"
// @Success      201   {object}  dto.ReceiveOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/receive [post]
func (h *OrderHandler) CreateReceive(c *fiber.Ctx) error {
	var in dto.CreateReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := orders.ReceiveOrderInput{
		TransferOrderID: in.TransferOrderID,
		ActorID:         GetActorID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, orders.ReceiveLine{ItemID: l.ItemID, BatchID: l.BatchID, QtyReceived: l.QtyReceived})
	}
	ro, err := h.uc.CreateReceiveOrder(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReceiveOrderResponse(ro))
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/masterdata"
)

// MasterDataHandler altas y listados de items y ubicaciones (protegido).
type MasterDataHandler struct {
	uc *masterdata.UseCase
}

// NewMasterDataHandler construye el handler.
func NewMasterDataHandler(uc *masterdata.UseCase) *MasterDataHandler {
	return &MasterDataHandler{uc: uc}
}

// CreateItem godoc
// @Summary      Crear item del catálogo
// @Tags         masterdata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *MasterDataHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(in.Code, in.Name, in.UnitMeasure)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// ListItems godoc
// @Summary      Listar items
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *MasterDataHandler) ListItems(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	items, err := h.uc.ListItems(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewItemResponse(item))
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         masterdata
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos de la ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *MasterDataHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.CreateLocation(in.Code, in.Name, in.Kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLocationResponse(loc))
}

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         masterdata
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *MasterDataHandler) ListLocations(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	locs, err := h.uc.ListLocations(limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, loc := range locs {
		out = append(out, dto.NewLocationResponse(loc))
	}
	return c.JSON(out)
}

func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 50)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

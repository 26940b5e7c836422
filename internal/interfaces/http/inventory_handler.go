package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// InventoryHandler consultas de ingresos y órdenes, para confirmar un resultado tras un timeout.
type InventoryHandler struct {
	queries WarehouseQueries
	log     *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(queries WarehouseQueries, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{queries: queries, log: log}
}

// GetStockEntry godoc
// @Summary      Obtener ingreso por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del registro en product_warehouse"
// @Success      200  {object}  dto.StockEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-entries/{id} [get]
func (h *InventoryHandler) GetStockEntry(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.queries.GetStockEntry(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener orden por ID
// @Description  Incluye fulfilled_at (null mientras la orden esté pendiente).
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *InventoryHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.queries.GetOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

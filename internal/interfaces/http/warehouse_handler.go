package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// ProductAdder lo implementa *inventory.AddProductUseCase.
type ProductAdder interface {
	AddProductToWarehouse(ctx context.Context, input inventory.AddProductInput) (int64, error)
}

// WarehouseQueries lo implementa *usecase.WarehouseUseCase.
type WarehouseQueries interface {
	GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error)
	ListStock(ctx context.Context, warehouseID int64, page dto.PageRequest) (*dto.StockEntryListResponse, error)
	GetStockEntry(ctx context.Context, id int64) (*dto.StockEntryResponse, error)
	GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error)
}

// WarehouseHandler maneja las peticiones HTTP de bodegas e ingresos.
type WarehouseHandler struct {
	adder   ProductAdder
	queries WarehouseQueries
	idem    *Idempotency
	log     *logger.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(adder ProductAdder, queries WarehouseQueries, idem *Idempotency, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{adder: adder, queries: queries, idem: idem, log: log}
}

// AddProduct godoc
// @Summary      Ingresar producto a bodega
// @Description  Busca la orden elegible más antigua del producto (amount >= solicitado, creada antes de created_at),
// @Description  la marca como completada y registra el ingreso con el precio total.
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Llave para repetir la solicitud sin duplicar"
// @Param        body             body    dto.AddProductRequest      true   "id_product, id_warehouse, amount, created_at"
// @Success      201   {object}  dto.AddProductResponse
// @Success      200   {object}  dto.AddProductResponse  "Repetición idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "Idempotency-Key reutilizada con otra solicitud"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouses/products [post]
func (h *WarehouseHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.AddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx := c.UserContext()
	input := inventory.AddProductInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Amount:      in.Amount,
		CreatedAt:   in.CreatedAt,
	}

	key := c.Get(HeaderIdempotencyKey)
	if key == "" {
		id, err := h.adder.AddProductToWarehouse(ctx, input)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.AddProductResponse{ID: id})
	}

	id, replayed, err := h.idem.Do(ctx, key, requestFingerprint(input), func() (int64, error) {
		return h.adder.AddProductToWarehouse(ctx, input)
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	if replayed {
		c.Set(HeaderReplayed, "true")
		return c.Status(fiber.StatusOK).JSON(dto.AddProductResponse{ID: id})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddProductResponse{ID: id})
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.queries.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Listar ingresos de una bodega
// @Tags         warehouses
// @Produce      json
// @Param        id      path   int  true   "ID de la bodega"
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StockEntryListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *WarehouseHandler) ListStock(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.queries.ListStock(c.UserContext(), id, page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

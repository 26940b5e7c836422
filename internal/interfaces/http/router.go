package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AddProduct  ProductAdder
	Queries     WarehouseQueries
	Idempotency *Idempotency
	Health      func(ctx context.Context) error // nil = siempre ok
	ServiceName string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	idem := deps.Idempotency
	if idem == nil {
		idem = NewIdempotency(nil, deps.Log)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				deps.Log.Error().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.AddProduct, deps.Queries, idem, deps.Log)
	warehouses.Post("/products", warehouseHandler.AddProduct)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/stock", warehouseHandler.ListStock)

	// Ingresos y órdenes (solo lectura)
	inventoryHandler := NewInventoryHandler(deps.Queries, deps.Log)
	api.Get("/stock-entries/:id", inventoryHandler.GetStockEntry)
	api.Get("/orders/:id", inventoryHandler.GetOrder)
}

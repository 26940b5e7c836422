package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit solo si fn devuelve nil; en cualquier otro caso Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		entryRepo repository.StockEntryRepository,
	) error) error
}

// EventPublisher publica eventos de inventario después del Commit.
type EventPublisher interface {
	PublishStockRecorded(ctx context.Context, event StockRecordedEvent) error
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

// PublishStockRecorded no hace nada.
func (NopPublisher) PublishStockRecorded(context.Context, StockRecordedEvent) error { return nil }

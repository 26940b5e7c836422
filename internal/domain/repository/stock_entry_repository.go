package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// StockEntryRepository define el puerto para los registros de product_warehouse.
// Los registros solo se insertan; nunca se actualizan ni eliminan.
type StockEntryRepository interface {
	// Create inserta el registro y asigna el ID generado en entry.ID.
	Create(ctx context.Context, entry *entity.StockEntry) error
	GetByID(ctx context.Context, id int64) (*entity.StockEntry, error)
	ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockEntry, error)
}

package usecase

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// WarehouseUseCase consultas de solo lectura sobre bodegas, ingresos y órdenes.
// Las escrituras pasan por inventory.AddProductUseCase.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
	entries    repository.StockEntryRepository
	orders     repository.OrderRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	warehouses repository.WarehouseRepository,
	entries repository.StockEntryRepository,
	orders repository.OrderRepository,
) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses, entries: entries, orders: orders}
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address}, nil
}

// GetStockEntry obtiene un registro de ingreso por ID.
func (uc *WarehouseUseCase) GetStockEntry(ctx context.Context, id int64) (*dto.StockEntryResponse, error) {
	e, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toStockEntryResponse(e), nil
}

// ListStock lista los ingresos de una bodega, del más reciente al más antiguo.
func (uc *WarehouseUseCase) ListStock(ctx context.Context, warehouseID int64, page dto.PageRequest) (*dto.StockEntryListResponse, error) {
	ok, err := uc.warehouses.Exists(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrWarehouseNotFound
	}
	page.DefaultPage()
	list, err := uc.entries.ListByWarehouse(ctx, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toStockEntryResponse(e))
	}
	return &dto.StockEntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetOrder obtiene una orden por ID, incluido su fulfilled_at.
func (uc *WarehouseUseCase) GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		ProductID:   o.ProductID,
		Amount:      o.Amount,
		CreatedAt:   o.CreatedAt,
		FulfilledAt: o.FulfilledAt,
	}, nil
}

func toStockEntryResponse(e *entity.StockEntry) *dto.StockEntryResponse {
	return &dto.StockEntryResponse{
		ID:          e.ID,
		WarehouseID: e.WarehouseID,
		ProductID:   e.ProductID,
		OrderID:     e.OrderID,
		Amount:      e.Amount,
		TotalPrice:  e.TotalPrice,
		CreatedAt:   e.CreatedAt,
	}
}

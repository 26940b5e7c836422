package inventory

import (
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRecordedEvent se emite una vez por cada ingreso a bodega confirmado.
type StockRecordedEvent struct {
	OperationID string          `json:"operation_id"`
	EntryID     int64           `json:"id"`
	OrderID     int64           `json:"id_order"`
	ProductID   int64           `json:"id_product"`
	WarehouseID int64           `json:"id_warehouse"`
	Amount      int             `json:"amount"`
	TotalPrice  decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newStockRecordedEvent(opID string, e *entity.StockEntry) StockRecordedEvent {
	return StockRecordedEvent{
		OperationID: opID,
		EntryID:     e.ID,
		OrderID:     e.OrderID,
		ProductID:   e.ProductID,
		WarehouseID: e.WarehouseID,
		Amount:      e.Amount,
		TotalPrice:  e.TotalPrice,
		CreatedAt:   e.CreatedAt,
	}
}

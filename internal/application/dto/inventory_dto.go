package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryResponse salida de un registro de ingreso a bodega.
type StockEntryResponse struct {
	ID          int64           `json:"id"`
	WarehouseID int64           `json:"id_warehouse"`
	ProductID   int64           `json:"id_product"`
	OrderID     int64           `json:"id_order"`
	Amount      int             `json:"amount"`
	TotalPrice  decimal.Decimal `json:"price"` // precio unitario * amount
	CreatedAt   time.Time       `json:"created_at"`
}

// StockEntryListResponse lista paginada de ingresos de una bodega.
type StockEntryListResponse struct {
	Items []StockEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          int64      `json:"id"`
	ProductID   int64      `json:"id_product"`
	Amount      int        `json:"amount"`
	CreatedAt   time.Time  `json:"created_at"`
	FulfilledAt *time.Time `json:"fulfilled_at"`
}

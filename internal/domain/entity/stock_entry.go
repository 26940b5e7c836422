package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry registro inmutable de producto ingresado a una bodega (tabla product_warehouse).
// Se crea una sola vez por orden completada.
type StockEntry struct {
	ID          int64
	WarehouseID int64
	ProductID   int64
	OrderID     int64
	Amount      int
	TotalPrice  decimal.Decimal // precio unitario * cantidad
	CreatedAt   time.Time
}

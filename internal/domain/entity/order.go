package entity

import (
	"math"
	"time"
)

// MaxOrderAmount es la mayor cantidad que cabe en orders.amount (INTEGER).
const MaxOrderAmount = math.MaxInt32

// Order representa una orden de compra de un único producto.
// FulfilledAt pasa de nil a una fecha una sola vez y no vuelve a cambiar.
type Order struct {
	ID          int64
	ProductID   int64
	Amount      int
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// IsFulfilled indica si la orden ya fue completada.
func (o *Order) IsFulfilled() bool {
	return o.FulfilledAt != nil
}

// Covers indica si la orden es elegible para ingresar amount unidades de productID
// con fecha de referencia at (sin considerar si ya fue completada).
func (o *Order) Covers(productID int64, amount int, at time.Time) bool {
	return o.ProductID == productID && o.Amount >= amount && o.CreatedAt.Before(at)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	// GetPrice devuelve el precio unitario actual; ok=false si el producto ya no existe.
	GetPrice(ctx context.Context, id int64) (price decimal.Decimal, ok bool, err error)
}

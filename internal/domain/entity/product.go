package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Para el flujo de ingreso a bodega es inmutable.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario (>= 0)
}

package inventory

import "github.com/shopspring/decimal"

// TotalPrice calcula el valor del ingreso a bodega (servicio de dominio).
// PrecioTotal = PrecioUnitario * Cantidad, en aritmética decimal exacta (sin redondeo).
func TotalPrice(unitPrice decimal.Decimal, amount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(amount)))
}

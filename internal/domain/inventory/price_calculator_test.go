package inventory_test

import (
	"testing"

	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalPrice_CasoReferencia(t *testing.T) {
	total := inventory.TotalPrice(decimal.RequireFromString("10.00"), 3)

	assert.True(t, total.Equal(decimal.RequireFromString("30.00")),
		"10.00 * 3 debe ser exactamente 30.00, obtenido %s", total)
}

func TestTotalPrice_Tabla(t *testing.T) {
	cases := []struct {
		name   string
		price  string
		amount int
		want   string
	}{
		{"precio cero", "0", 7, "0"},
		{"una unidad", "19.99", 1, "19.99"},
		{"centavos que en float64 derivan", "0.10", 3, "0.30"},
		{"precio con muchos decimales", "1.005", 200, "201"},
		{"cantidad grande", "25.50", 1_000_000, "25500000"},
		{"precio grande", "9999999999999.99", 9, "89999999999999.91"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.TotalPrice(decimal.RequireFromString(tc.price), tc.amount)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"%s * %d: esperado %s, obtenido %s", tc.price, tc.amount, tc.want, got)
		})
	}
}

// Sumar el precio unitario amount veces debe coincidir con la multiplicación: sin deriva de redondeo.
func TestTotalPrice_SinDerivaFrenteASumaRepetida(t *testing.T) {
	prices := []string{"0.01", "0.10", "0.33", "1.15", "10.00", "123.45"}
	for _, p := range prices {
		unit := decimal.RequireFromString(p)
		sum := decimal.Zero
		for amount := 1; amount <= 500; amount++ {
			sum = sum.Add(unit)
			got := inventory.TotalPrice(unit, amount)
			if !assert.True(t, got.Equal(sum), "precio %s cantidad %d: %s != %s", p, amount, got, sum) {
				return
			}
		}
	}
}

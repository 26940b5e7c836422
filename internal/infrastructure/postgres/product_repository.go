package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Exists indica si existe un producto con el ID dado.
func (r *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, `SELECT 1 FROM products WHERE id = $1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, storeErr("product exists", err)
	}
	return true, nil
}

// GetPrice obtiene el precio unitario vigente del producto.
func (r *ProductRepo) GetPrice(ctx context.Context, id int64) (decimal.Decimal, bool, error) {
	var price decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT price FROM products WHERE id = $1`, id).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, storeErr("get product price", err)
	}
	return price, true, nil
}

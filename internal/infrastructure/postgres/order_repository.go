package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT id, product_id, amount, created_at, fulfilled_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get order", err)
	}
	return &o, nil
}

// FindEligibleForUpdate obtiene la orden candidata y bloquea la fila (SELECT FOR UPDATE).
// Orden de desempate: primero no completadas, luego la más antigua, luego el menor id.
// Si otra tx tiene la fila bloqueada se espera su Commit; en READ COMMITTED la fila se relee
// y llega con fulfilled_at ya asignado.
// Una cantidad mayor que MaxOrderAmount no cabe en INTEGER y ninguna fila la cubre.
func (r *OrderRepo) FindEligibleForUpdate(ctx context.Context, productID int64, amount int, at time.Time) (*entity.Order, error) {
	if amount > entity.MaxOrderAmount {
		return nil, nil
	}
	query := `
		SELECT id, product_id, amount, created_at, fulfilled_at
		FROM orders
		WHERE product_id = $1 AND amount >= $2 AND created_at < $3
		ORDER BY (fulfilled_at IS NOT NULL), created_at, id
		LIMIT 1
		FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, productID, amount, at).Scan(
		&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isSerializationFailure(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrAlreadyFulfilled, err)
		}
		return nil, storeErr("find eligible order", err)
	}
	return &o, nil
}

// MarkFulfilled asigna fulfilled_at solo si sigue en NULL (compare-and-set).
func (r *OrderRepo) MarkFulfilled(ctx context.Context, orderID int64, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET fulfilled_at = $2 WHERE id = $1 AND fulfilled_at IS NULL`,
		orderID, at,
	)
	if err != nil {
		if isSerializationFailure(err) {
			return 0, nil
		}
		return 0, storeErr("mark order fulfilled", err)
	}
	return cmd.RowsAffected(), nil
}

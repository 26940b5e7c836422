package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación sobre PostgreSQL de los registros product_warehouse (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create inserta el registro y devuelve el ID generado en entry.ID.
// UNIQUE(order_id) respalda la regla de un ingreso por orden.
func (r *StockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	query := `
		INSERT INTO product_warehouse (warehouse_id, product_id, order_id, amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		entry.WarehouseID, entry.ProductID, entry.OrderID, entry.Amount, entry.TotalPrice, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un ingreso para la orden %d", domain.ErrAlreadyFulfilled, entry.OrderID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInconsistentState, err)
		}
		return storeErr("create stock entry", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *StockEntryRepo) GetByID(ctx context.Context, id int64) (*entity.StockEntry, error) {
	query := `
		SELECT id, warehouse_id, product_id, order_id, amount, price, created_at
		FROM product_warehouse WHERE id = $1`
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.WarehouseID, &e.ProductID, &e.OrderID, &e.Amount, &e.TotalPrice, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get stock entry", err)
	}
	return &e, nil
}

// ListByWarehouse lista los ingresos de una bodega, más recientes primero.
func (r *StockEntryRepo) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, warehouse_id, product_id, order_id, amount, price, created_at
		FROM product_warehouse WHERE warehouse_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, storeErr("list stock entries", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.WarehouseID, &e.ProductID, &e.OrderID, &e.Amount, &e.TotalPrice, &e.CreatedAt); err != nil {
			return nil, storeErr("scan stock entry", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list stock entries", err)
	}
	return list, nil
}

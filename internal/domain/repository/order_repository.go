package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// FindEligibleForUpdate busca la orden del producto con amount >= al pedido y creada antes de at,
	// priorizando las no completadas y luego la más antigua, y bloquea la fila (SELECT FOR UPDATE).
	// Devuelve nil si ninguna orden cumple; puede devolver una orden ya completada
	// cuando todas las candidatas lo están.
	FindEligibleForUpdate(ctx context.Context, productID int64, amount int, at time.Time) (*entity.Order, error)
	// MarkFulfilled fija fulfilled_at solo si sigue en NULL y devuelve las filas afectadas (0 o 1).
	MarkFulfilled(ctx context.Context, orderID int64, at time.Time) (int64, error)
}

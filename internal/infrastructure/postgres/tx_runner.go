package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxRunner construye el runner con el pool y el nivel de aislamiento
// ("read_committed", "repeatable_read" o "serializable"; vacío = read_committed).
func NewTxRunner(pool *pgxpool.Pool, isolation string) (*TxRunner, error) {
	level, err := ParseIsolation(isolation)
	if err != nil {
		return nil, err
	}
	return &TxRunner{pool: pool, opts: pgx.TxOptions{IsoLevel: level}}, nil
}

// ParseIsolation traduce el nombre de configuración al nivel de aislamiento de pgx.
func ParseIsolation(name string) (pgx.TxIsoLevel, error) {
	switch name {
	case "", "read_committed":
		return pgx.ReadCommitted, nil
	case "repeatable_read":
		return pgx.RepeatableRead, nil
	case "serializable":
		return pgx.Serializable, nil
	}
	return "", fmt.Errorf("nivel de aislamiento desconocido: %q", name)
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido cubre todas las salidas (error de negocio, falla o panic).
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	entryRepo repository.StockEntryRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, r.opts)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(
		NewProductRepository(tx),
		NewWarehouseRepository(tx),
		NewOrderRepository(tx),
		NewStockEntryRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		// En SERIALIZABLE el perdedor de la carrera puede enterarse recién en el Commit.
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrAlreadyFulfilled, err)
		}
		return storeErr("commit transaction", err)
	}
	return nil
}

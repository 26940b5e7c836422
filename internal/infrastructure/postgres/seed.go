package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// Seeder carga datos maestros (productos, bodegas, órdenes) con upsert por ID.
// Los registros de product_warehouse nunca se siembran: solo los crea el flujo de ingreso.
type Seeder struct {
	pool *pgxpool.Pool
}

// NewSeeder construye el seeder.
func NewSeeder(pool *pgxpool.Pool) *Seeder {
	return &Seeder{pool: pool}
}

// Seed inserta o actualiza todo en una sola transacción, respetando el orden de las FKs.
func (s *Seeder) Seed(ctx context.Context, products []entity.Product, warehouses []entity.Warehouse, orders []entity.Order) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range products {
			batch.Queue(`
				INSERT INTO products (id, name, description, price) VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price`,
				p.ID, p.Name, p.Description, p.Price)
		}
		for _, w := range warehouses {
			batch.Queue(`
				INSERT INTO warehouses (id, name, address) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address`,
				w.ID, w.Name, w.Address)
		}
		// fulfilled_at no se toca en conflicto: solo puede fijarse una vez.
		for _, o := range orders {
			batch.Queue(`
				INSERT INTO orders (id, product_id, amount, created_at, fulfilled_at) VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO UPDATE SET amount = EXCLUDED.amount, created_at = EXCLUDED.created_at
				WHERE orders.fulfilled_at IS NULL`,
				o.ID, o.ProductID, o.Amount, o.CreatedAt, o.FulfilledAt)
		}
		if batch.Len() == 0 {
			return nil
		}

		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("seed: sentencia %d: %w", i+1, err)
			}
		}
		return br.Close()
	})
}

// seed aplica las migraciones y carga productos, bodegas y órdenes desde archivos CSV.
//
// Uso: go run ./cmd/seed -products products.csv -warehouses warehouses.csv -orders orders.csv [-latin1]
// Cualquier archivo puede omitirse. La conexión se toma de la misma configuración que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

func main() {
	productsPath := flag.String("products", "", "CSV de productos: id,name,description,price")
	warehousesPath := flag.String("warehouses", "", "CSV de bodegas: id,name,address")
	ordersPath := flag.String("orders", "", "CSV de órdenes: id,product_id,amount,created_at[,fulfilled_at]")
	latin1 := flag.Bool("latin1", false, "los CSV vienen en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

	var (
		products   []entity.Product
		warehouses []entity.Warehouse
		orders     []entity.Order
	)
	if err := loadFile(*productsPath, func(r io.Reader) (err error) {
		products, err = parseProducts(r, *latin1)
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("leer productos")
	}
	if err := loadFile(*warehousesPath, func(r io.Reader) (err error) {
		warehouses, err = parseWarehouses(r, *latin1)
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("leer bodegas")
	}
	if err := loadFile(*ordersPath, func(r io.Reader) (err error) {
		orders, err = parseOrders(r, *latin1)
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("leer órdenes")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")

	if err := postgres.NewSeeder(pool).Seed(ctx, products, warehouses, orders); err != nil {
		log.Fatal().Err(err).Msg("cargar datos")
	}
	log.Info().
		Int("products", len(products)).
		Int("warehouses", len(warehouses)).
		Int("orders", len(orders)).
		Msg("datos cargados")
}

// loadFile abre path y se lo pasa a parse; path vacío no hace nada.
func loadFile(path string, parse func(io.Reader) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return parse(f)
}

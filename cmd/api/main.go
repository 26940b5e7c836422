package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/warehouse-api/docs"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/rabbitmq"
	infraredis "github.com/jhoicas/warehouse-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/warehouse-api/internal/interfaces/http"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// @title        Warehouse API
// @version      1.0
// @description  Ingreso de productos a bodega contra órdenes de compra.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("isolation", cfg.Fulfillment.Isolation).
		Msg("iniciando aplicación")

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
	if len(applied) > 0 {
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	txRunner, err := postgres.NewTxRunner(pool, cfg.Fulfillment.Isolation)
	if err != nil {
		log.Fatal().Err(err).Msg("tx runner")
	}

	// Eventos stock.recorded: sin AMQP_URL no se publica nada.
	var publisher inventory.EventPublisher = inventory.NopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, ch, err := rabbitmq.SetupConn(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		defer ch.Close()
		publisher = rabbitmq.NewPublisher(ch, cfg.AMQP.Exchange)
	}

	// Idempotency-Key: sin REDIS_ADDR solo se colapsan solicitudes en vuelo.
	var idemStore httpRouter.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		idemStore = infraredis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
	}

	addProductUC := inventory.NewAddProductUseCase(txRunner, publisher, log)
	warehouseUC := usecase.NewWarehouseUseCase(
		postgres.NewWarehouseRepository(pool),
		postgres.NewStockEntryRepository(pool),
		postgres.NewOrderRepository(pool),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AddProduct:  addProductUC,
		Queries:     warehouseUC,
		Idempotency: httpRouter.NewIdempotency(idemStore, log),
		Health:      pool.Ping,
		ServiceName: cfg.App.Name,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

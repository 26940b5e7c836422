package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

const publishTimeout = 5 * time.Second

// AddProductUseCase registra el ingreso de un producto a una bodega contra una orden de compra.
// Valida producto y bodega, bloquea la orden elegible (SELECT FOR UPDATE), la marca como completada
// y guarda el registro en product_warehouse, todo en una sola transacción con Commit/Rollback.
type AddProductUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewAddProductUseCase construye el caso de uso. publisher puede ser nil (no se publican eventos).
func NewAddProductUseCase(txRunner TxRunner, publisher EventPublisher, log *logger.Logger) *AddProductUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &AddProductUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj usado para fulfilled_at y created_at (tests).
func (uc *AddProductUseCase) WithClock(now func() time.Time) *AddProductUseCase {
	uc.now = now
	return uc
}

// AddProductInput entrada del ingreso a bodega. CreatedAt es la fecha de referencia de la solicitud.
type AddProductInput struct {
	ProductID   int64
	WarehouseID int64
	Amount      int
	CreatedAt   time.Time
}

func (in AddProductInput) validate() error {
	if in.ProductID <= 0 || in.WarehouseID <= 0 {
		return fmt.Errorf("%w: id_product e id_warehouse deben ser positivos", domain.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if in.CreatedAt.IsZero() {
		return fmt.Errorf("%w: created_at es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// AddProductToWarehouse ejecuta el flujo completo y devuelve el ID del registro creado.
// Errores de negocio: ErrInvalidInput, ErrProductNotFound, ErrWarehouseNotFound, ErrNoEligibleOrder,
// ErrAlreadyFulfilled. Fallas: ErrInconsistentState, ErrStoreUnavailable.
func (uc *AddProductUseCase) AddProductToWarehouse(ctx context.Context, input AddProductInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}

	opID := uuid.New().String()
	now := uc.now()
	var entry *entity.StockEntry

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		entryRepo repository.StockEntryRepository,
	) error {
		if err := uc.validateReferences(ctx, productRepo, warehouseRepo, input); err != nil {
			return err
		}

		// Ninguna orden guardada puede cubrir una cantidad fuera del rango de orders.amount.
		if input.Amount > entity.MaxOrderAmount {
			return domain.ErrNoEligibleOrder
		}

		order, err := orderRepo.FindEligibleForUpdate(ctx, input.ProductID, input.Amount, input.CreatedAt)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNoEligibleOrder
		}
		if !order.Covers(input.ProductID, input.Amount, input.CreatedAt) {
			return fmt.Errorf("%w: la orden %d bloqueada no cubre la solicitud", domain.ErrInconsistentState, order.ID)
		}
		if order.IsFulfilled() {
			return domain.ErrAlreadyFulfilled
		}

		// La cantidad de filas afectadas decide quién gana la carrera por la orden.
		affected, err := orderRepo.MarkFulfilled(ctx, order.ID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrAlreadyFulfilled
		}

		entry, err = uc.recordStock(ctx, productRepo, entryRepo, input, order.ID, now)
		return err
	})
	if err != nil {
		uc.logFailure(opID, input, err)
		return 0, err
	}

	uc.log.Info().
		Str("op_id", opID).
		Int64("entry_id", entry.ID).
		Int64("order_id", entry.OrderID).
		Int64("product_id", entry.ProductID).
		Int64("warehouse_id", entry.WarehouseID).
		Int("amount", entry.Amount).
		Str("total_price", entry.TotalPrice.String()).
		Msg("producto ingresado a bodega")

	uc.publish(ctx, opID, entry)
	return entry.ID, nil
}

// validateReferences confirma que producto y bodega existen (dentro de la misma tx).
func (uc *AddProductUseCase) validateReferences(
	ctx context.Context,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	input AddProductInput,
) error {
	ok, err := productRepo.Exists(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	ok, err = warehouseRepo.Exists(ctx, input.WarehouseID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWarehouseNotFound
	}
	return nil
}

// recordStock consulta el precio vigente, calcula el total y guarda el registro en product_warehouse.
func (uc *AddProductUseCase) recordStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	input AddProductInput,
	orderID int64,
	now time.Time,
) (*entity.StockEntry, error) {
	price, ok, err := productRepo.GetPrice(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: el producto %d no tiene precio al registrar el ingreso", domain.ErrInconsistentState, input.ProductID)
	}
	entry := &entity.StockEntry{
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		OrderID:     orderID,
		Amount:      input.Amount,
		TotalPrice:  inventory.TotalPrice(price, input.Amount),
		CreatedAt:   now,
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *AddProductUseCase) logFailure(opID string, input AddProductInput, err error) {
	ev := uc.log.Error()
	if domain.IsBusinessError(err) {
		ev = uc.log.Warn()
	}
	ev.Err(err).
		Str("op_id", opID).
		Int64("product_id", input.ProductID).
		Int64("warehouse_id", input.WarehouseID).
		Int("amount", input.Amount).
		Time("reference_time", input.CreatedAt).
		Msg("ingreso a bodega rechazado")
}

// publish emite el evento después del Commit; un fallo aquí no cambia el resultado.
func (uc *AddProductUseCase) publish(ctx context.Context, opID string, entry *entity.StockEntry) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishStockRecorded(pubCtx, newStockRecordedEvent(opID, entry)); err != nil {
		uc.log.Error().Err(err).
			Str("op_id", opID).
			Int64("entry_id", entry.ID).
			Msg("publicar evento stock.recorded")
	}
}

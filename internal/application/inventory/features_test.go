package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var errorCodes = map[string]error{
	"PRODUCT_NOT_FOUND":   domain.ErrProductNotFound,
	"WAREHOUSE_NOT_FOUND": domain.ErrWarehouseNotFound,
	"NO_ELIGIBLE_ORDER":   domain.ErrNoEligibleOrder,
	"ALREADY_FULFILLED":   domain.ErrAlreadyFulfilled,
	"VALIDATION":          domain.ErrInvalidInput,
}

type fulfillmentTestContext struct {
	store *memStore
	uc    *inventory.AddProductUseCase
	id    int64
	err   error
	errs  []error
}

func (f *fulfillmentTestContext) reset() {
	f.store = newMemStore()
	f.uc = inventory.NewAddProductUseCase(f.store, nil, logger.Nop())
	f.id, f.err, f.errs = 0, nil, nil
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func (f *fulfillmentTestContext) aProductPricedAt(id int64, price string) error {
	if _, err := decimal.NewFromString(price); err != nil {
		return err
	}
	f.store.addProduct(id, price)
	return nil
}

func (f *fulfillmentTestContext) aWarehouse(id int64) error {
	f.store.addWarehouse(id)
	return nil
}

func (f *fulfillmentTestContext) anOrderForProductWithAmountCreatedAt(id, productID int64, amount int, createdAt string) error {
	at, err := parseTime(createdAt)
	if err != nil {
		return err
	}
	f.store.addOrder(id, productID, amount, at)
	return nil
}

func (f *fulfillmentTestContext) iAddUnitsOfProductToWarehouse(amount int, productID, warehouseID int64, ref string) error {
	at, err := parseTime(ref)
	if err != nil {
		return err
	}
	f.id, f.err = f.uc.AddProductToWarehouse(context.Background(), inventory.AddProductInput{
		ProductID: productID, WarehouseID: warehouseID, Amount: amount, CreatedAt: at,
	})
	return nil
}

func (f *fulfillmentTestContext) concurrentRequests(n, amount int, productID, warehouseID int64, ref string) error {
	at, err := parseTime(ref)
	if err != nil {
		return err
	}
	in := inventory.AddProductInput{ProductID: productID, WarehouseID: warehouseID, Amount: amount, CreatedAt: at}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.AddProductToWarehouse(context.Background(), in)
			mu.Lock()
			f.errs = append(f.errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return nil
}

func (f *fulfillmentTestContext) theRequestSucceeds() error {
	if f.err != nil {
		return fmt.Errorf("se esperaba éxito, se obtuvo: %w", f.err)
	}
	if f.id <= 0 {
		return fmt.Errorf("id inválido: %d", f.id)
	}
	return nil
}

func (f *fulfillmentTestContext) theRequestFailsWith(code string) error {
	target, ok := errorCodes[code]
	if !ok {
		return fmt.Errorf("código desconocido %q", code)
	}
	if !errors.Is(f.err, target) {
		return fmt.Errorf("se esperaba %s, se obtuvo: %v", code, f.err)
	}
	return nil
}

func (f *fulfillmentTestContext) exactlyOneSucceeds(wins int, code string) error {
	target := errorCodes[code]
	got := 0
	for _, err := range f.errs {
		switch {
		case err == nil:
			got++
		case !errors.Is(err, target):
			return fmt.Errorf("error inesperado: %w", err)
		}
	}
	if got != wins {
		return fmt.Errorf("se esperaban %d éxitos, hubo %d", wins, got)
	}
	return nil
}

func (f *fulfillmentTestContext) orderIsFulfilled(id int64) error {
	if f.store.order(id).FulfilledAt == nil {
		return fmt.Errorf("la orden %d no está completada", id)
	}
	return nil
}

func (f *fulfillmentTestContext) orderIsNotFulfilled(id int64) error {
	if at := f.store.order(id).FulfilledAt; at != nil {
		return fmt.Errorf("la orden %d quedó completada en %s", id, at)
	}
	return nil
}

func (f *fulfillmentTestContext) stockEntriesForOrderWithTotal(n int, orderID int64, total string) error {
	entries := f.store.entriesFor(orderID)
	if len(entries) != n {
		return fmt.Errorf("se esperaban %d ingresos para la orden %d, hay %d", n, orderID, len(entries))
	}
	want := decimal.RequireFromString(total)
	for _, e := range entries {
		if !e.TotalPrice.Equal(want) {
			return fmt.Errorf("total %s, se esperaba %s", e.TotalPrice, want)
		}
	}
	return nil
}

func (f *fulfillmentTestContext) thereAreNoStockEntries() error {
	if n := f.store.entryCount(); n != 0 {
		return fmt.Errorf("hay %d ingresos", n)
	}
	return nil
}

func (f *fulfillmentTestContext) ordersWereNotQueried() error {
	if n := f.store.orderCalls.Load(); n != 0 {
		return fmt.Errorf("se consultaron órdenes %d veces", n)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &fulfillmentTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a product (\d+) priced at "([^"]*)"$`, tc.aProductPricedAt)
	ctx.Step(`^a warehouse (\d+)$`, tc.aWarehouse)
	ctx.Step(`^an order (\d+) for product (\d+) with amount (\d+) created at "([^"]*)"$`, tc.anOrderForProductWithAmountCreatedAt)

	// When steps
	ctx.Step(`^I add (\d+) units of product (\d+) to warehouse (\d+) with reference time "([^"]*)"$`, tc.iAddUnitsOfProductToWarehouse)
	ctx.Step(`^(\d+) concurrent requests add (\d+) units of product (\d+) to warehouse (\d+) with reference time "([^"]*)"$`, tc.concurrentRequests)

	// Then steps
	ctx.Step(`^the request succeeds$`, tc.theRequestSucceeds)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
	ctx.Step(`^exactly (\d+) request succeeds and the rest fail with "([^"]*)"$`, tc.exactlyOneSucceeds)
	ctx.Step(`^order (\d+) is fulfilled$`, tc.orderIsFulfilled)
	ctx.Step(`^order (\d+) is not fulfilled$`, tc.orderIsNotFulfilled)
	ctx.Step(`^there is (\d+) stock entry for order (\d+) with total price "([^"]*)"$`, tc.stockEntriesForOrderWithTotal)
	ctx.Step(`^there are no stock entries$`, tc.thereAreNoStockEntries)
	ctx.Step(`^orders were not queried$`, tc.ordersWereNotQueried)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/add_product.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

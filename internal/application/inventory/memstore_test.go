package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore imita el comportamiento de PostgreSQL que importa para el flujo:
// bloqueo de fila hasta fin de tx (SELECT FOR UPDATE), escrituras visibles solo tras Commit,
// UPDATE condicional y UNIQUE(order_id).
type memStore struct {
	mu         sync.Mutex
	products   map[int64]decimal.Decimal
	warehouses map[int64]bool
	orders     map[int64]*entity.Order
	entries    []*entity.StockEntry
	rowLocks   map[int64]*sync.Mutex
	seq        atomic.Int64

	orderCalls atomic.Int64
	commits    atomic.Int64
	rollbacks  atomic.Int64

	// Inyección de fallas.
	failOp         string      // operación que devuelve ErrStoreUnavailable
	beforeGetPrice func()      // se ejecuta antes de leer el precio
	afterLock      func(int64) // se ejecuta al obtener el bloqueo de una orden
	beforeMark     func(int64) // se ejecuta antes del UPDATE condicional
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]decimal.Decimal{},
		warehouses: map[int64]bool{},
		orders:     map[int64]*entity.Order{},
		rowLocks:   map[int64]*sync.Mutex{},
	}
}

func (s *memStore) addProduct(id int64, price string) {
	s.products[id] = decimal.RequireFromString(price)
}

func (s *memStore) addWarehouse(id int64) {
	s.warehouses[id] = true
}

func (s *memStore) addOrder(id, productID int64, amount int, createdAt time.Time) {
	s.orders[id] = &entity.Order{ID: id, ProductID: productID, Amount: amount, CreatedAt: createdAt}
	s.rowLocks[id] = &sync.Mutex{}
}

func (s *memStore) order(id int64) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.orders[id]
}

func (s *memStore) entriesFor(orderID int64) []entity.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockEntry
	for _, e := range s.entries {
		if e.OrderID == orderID {
			out = append(out, *e)
		}
	}
	return out
}

// fulfillExternally simula otra escritura confirmada sobre la orden (fuera de cualquier bloqueo).
func (s *memStore) fulfillExternally(id int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[id].FulfilledAt = &at
}

// changeOrderAmount simula un cambio confirmado sobre la cantidad de la orden.
func (s *memStore) changeOrderAmount(id int64, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[id].Amount = amount
}

func (s *memStore) deleteProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

func (s *memStore) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *memStore) fail(op string) error {
	if s.failOp == op {
		return fmt.Errorf("%s: %w: conexión rechazada", op, domain.ErrStoreUnavailable)
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *memStore) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	entryRepo repository.StockEntryRepository,
) error) error {
	if err := s.fail("begin"); err != nil {
		return err
	}
	tx := &memTx{s: s, fulfilled: map[int64]time.Time{}}
	defer tx.release()

	if err := fn(memProducts{tx}, memWarehouses{tx}, memOrders{tx}, memEntries{tx}); err != nil {
		s.rollbacks.Add(1)
		return err
	}
	if err := s.fail("commit"); err != nil {
		s.rollbacks.Add(1)
		return err
	}
	tx.commit()
	s.commits.Add(1)
	return nil
}

type memTx struct {
	s         *memStore
	locked    []*sync.Mutex
	fulfilled map[int64]time.Time
	created   []*entity.StockEntry
}

func (tx *memTx) release() {
	for i := len(tx.locked) - 1; i >= 0; i-- {
		tx.locked[i].Unlock()
	}
	tx.locked = nil
}

func (tx *memTx) commit() {
	s := tx.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, at := range tx.fulfilled {
		at := at
		s.orders[id].FulfilledAt = &at
	}
	s.entries = append(s.entries, tx.created...)
}

type memProducts struct{ tx *memTx }

func (r memProducts) Exists(ctx context.Context, id int64) (bool, error) {
	if err := r.tx.s.fail("product exists"); err != nil {
		return false, err
	}
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	_, ok := r.tx.s.products[id]
	return ok, nil
}

func (r memProducts) GetPrice(ctx context.Context, id int64) (decimal.Decimal, bool, error) {
	if r.tx.s.beforeGetPrice != nil {
		r.tx.s.beforeGetPrice()
	}
	if err := r.tx.s.fail("get price"); err != nil {
		return decimal.Zero, false, err
	}
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	price, ok := r.tx.s.products[id]
	return price, ok, nil
}

type memWarehouses struct{ tx *memTx }

func (r memWarehouses) Exists(ctx context.Context, id int64) (bool, error) {
	if err := r.tx.s.fail("warehouse exists"); err != nil {
		return false, err
	}
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	return r.tx.s.warehouses[id], nil
}

func (r memWarehouses) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	if !r.tx.s.warehouses[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id}, nil
}

type memOrders struct{ tx *memTx }

func (r memOrders) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	tx := r.tx
	tx.s.orderCalls.Add(1)
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	o, ok := tx.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r memOrders) FindEligibleForUpdate(ctx context.Context, productID int64, amount int, at time.Time) (*entity.Order, error) {
	tx := r.tx
	tx.s.orderCalls.Add(1)
	if err := tx.s.fail("find order"); err != nil {
		return nil, err
	}

	tx.s.mu.Lock()
	var candidates []*entity.Order
	for _, o := range tx.s.orders {
		if o.Covers(productID, amount, at) {
			candidates = append(candidates, o)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsFulfilled() != b.IsFulfilled() {
			return !a.IsFulfilled()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	if len(candidates) == 0 {
		tx.s.mu.Unlock()
		return nil, nil
	}
	id := candidates[0].ID
	lock := tx.s.rowLocks[id]
	tx.s.mu.Unlock()

	// Espera el bloqueo de fila y relee la versión confirmada (READ COMMITTED).
	lock.Lock()
	tx.locked = append(tx.locked, lock)
	if tx.s.afterLock != nil {
		tx.s.afterLock(id)
	}
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	cp := *tx.s.orders[id]
	return &cp, nil
}

func (r memOrders) MarkFulfilled(ctx context.Context, orderID int64, at time.Time) (int64, error) {
	tx := r.tx
	tx.s.orderCalls.Add(1)
	if tx.s.beforeMark != nil {
		tx.s.beforeMark(orderID)
	}
	if err := tx.s.fail("mark order"); err != nil {
		return 0, err
	}
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	o, ok := tx.s.orders[orderID]
	if !ok || o.FulfilledAt != nil {
		return 0, nil
	}
	if _, staged := tx.fulfilled[orderID]; staged {
		return 0, nil
	}
	tx.fulfilled[orderID] = at
	return 1, nil
}

type memEntries struct{ tx *memTx }

func (r memEntries) Create(ctx context.Context, entry *entity.StockEntry) error {
	tx := r.tx
	if err := tx.s.fail("create entry"); err != nil {
		return err
	}
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for _, list := range [][]*entity.StockEntry{tx.s.entries, tx.created} {
		for _, e := range list {
			if e.OrderID == entry.OrderID {
				return fmt.Errorf("%w: ya existe un ingreso para la orden %d", domain.ErrAlreadyFulfilled, entry.OrderID)
			}
		}
	}
	entry.ID = tx.s.seq.Add(1)
	cp := *entry
	tx.created = append(tx.created, &cp)
	return nil
}

func (r memEntries) GetByID(ctx context.Context, id int64) (*entity.StockEntry, error) {
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	for _, e := range r.tx.s.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memEntries) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]*entity.StockEntry, error) {
	r.tx.s.mu.Lock()
	defer r.tx.s.mu.Unlock()
	var out []*entity.StockEntry
	for _, e := range r.tx.s.entries {
		if e.WarehouseID == warehouseID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

var (
	_ repository.ProductRepository    = memProducts{}
	_ repository.WarehouseRepository  = memWarehouses{}
	_ repository.OrderRepository      = memOrders{}
	_ repository.StockEntryRepository = memEntries{}
)

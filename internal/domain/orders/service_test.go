package orders

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/types"
	"vitrin/internal/domain"
	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/domain/catalogs/product"
)

// memStore backs all fake repositories with one mutable state so the
// fake transaction manager can snapshot and roll it back as a unit.
type memStore struct {
	mu        sync.Mutex
	customers map[string]*customer.Customer
	products  map[string]*product.Product
	orders    map[string]*Order
	nextID    int
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[string]*customer.Customer{},
		products:  map[string]*product.Product{},
		orders:    map[string]*Order{},
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

type storeSnapshot struct {
	stock  map[string]int
	orders []string
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{stock: map[string]int{}}
	for id, p := range s.products {
		snap.stock[id] = p.StockQuantity
	}
	for id := range s.orders {
		snap.orders = append(snap.orders, id)
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	for id, qty := range snap.stock {
		if p, ok := s.products[id]; ok {
			p.StockQuantity = qty
		}
	}
	existed := map[string]bool{}
	for _, id := range snap.orders {
		existed[id] = true
	}
	for id := range s.orders {
		if !existed[id] {
			delete(s.orders, id)
		}
	}
}

// memTx serializes transactions on the store mutex and rolls the store
// back when the function fails, mirroring database semantics closely
// enough for fulfillment tests.
type memTx struct{ store *memStore }

func (t memTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// --- fake repositories over memStore ---

type fakeCustomers struct{ store *memStore }

func (f fakeCustomers) Create(_ context.Context, c *customer.Customer) error {
	c.ID = f.store.id("cust")
	f.store.customers[c.ID] = c
	return nil
}

func (f fakeCustomers) GetByID(_ context.Context, tenantID, id string) (*customer.Customer, error) {
	c, ok := f.store.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, apperror.NewNotFound("customer", id)
	}
	return c, nil
}

func (f fakeCustomers) FindByEmail(context.Context, string, string) (*customer.Customer, error) {
	return nil, apperror.NewNotFound("customer", "")
}

func (f fakeCustomers) List(context.Context, string, domain.ListFilter) (domain.PagedResult[*customer.Customer], error) {
	return domain.PagedResult[*customer.Customer]{}, nil
}

func (f fakeCustomers) Update(context.Context, *customer.Customer) error       { return nil }
func (f fakeCustomers) Delete(context.Context, string, string) error           { return nil }
func (f fakeCustomers) SetActive(context.Context, string, string, bool) error  { return nil }
func (f fakeCustomers) HasOrders(context.Context, string, string) (bool, error) { return false, nil }

type fakeProducts struct{ store *memStore }

func (f fakeProducts) Create(_ context.Context, p *product.Product) error {
	p.ID = f.store.id("prod")
	f.store.products[p.ID] = p
	return nil
}

func (f fakeProducts) get(tenantID, id string) (*product.Product, error) {
	p, ok := f.store.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, apperror.NewNotFound("product", id)
	}
	return p, nil
}

func (f fakeProducts) GetByID(_ context.Context, tenantID, id string) (*product.Product, error) {
	return f.get(tenantID, id)
}

func (f fakeProducts) GetForUpdate(_ context.Context, tenantID, id string) (*product.Product, error) {
	return f.get(tenantID, id)
}

func (f fakeProducts) FindBySKU(context.Context, string, string) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", "")
}

func (f fakeProducts) List(context.Context, string, domain.ListFilter) (domain.PagedResult[*product.Product], error) {
	return domain.PagedResult[*product.Product]{}, nil
}

func (f fakeProducts) Update(context.Context, *product.Product) error         { return nil }
func (f fakeProducts) Delete(context.Context, string, string) error           { return nil }
func (f fakeProducts) SetActive(context.Context, string, string, bool) error  { return nil }

func (f fakeProducts) DecrementStock(_ context.Context, tenantID, id string, qty int) (bool, error) {
	p, err := f.get(tenantID, id)
	if err != nil {
		return false, err
	}
	if p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	return true, nil
}

func (f fakeProducts) HasOrderItems(context.Context, string, string) (bool, error) {
	return false, nil
}

type fakeOrders struct{ store *memStore }

func (f fakeOrders) Create(_ context.Context, o *Order) error {
	o.ID = f.store.id("ord")
	for _, item := range o.Items {
		item.ID = f.store.id("item")
		item.OrderID = o.ID
	}
	f.store.orders[o.ID] = o
	return nil
}

func (f fakeOrders) GetByID(_ context.Context, tenantID, id string) (*Order, error) {
	o, ok := f.store.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, apperror.NewNotFound("order", id)
	}
	return o, nil
}

func (f fakeOrders) List(context.Context, string, domain.ListFilter) (domain.PagedResult[*Order], error) {
	return domain.PagedResult[*Order]{}, nil
}

func (f fakeOrders) ListByCustomer(context.Context, string, string, domain.ListFilter) (domain.PagedResult[*Order], error) {
	return domain.PagedResult[*Order]{}, nil
}

func (f fakeOrders) UpdateStatus(_ context.Context, tenantID, id string, status Status, payment PaymentStatus) error {
	o, ok := f.store.orders[id]
	if !ok || o.TenantID != tenantID {
		return apperror.NewNotFound("order", id)
	}
	o.Status = status
	o.PaymentStatus = payment
	return nil
}

type fakeNumbers struct {
	mu sync.Mutex
	n  int64
}

func (f *fakeNumbers) Next(_ context.Context, _ string, day time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), f.n), nil
}

// --- fixture ---

type fixture struct {
	store *memStore
	svc   *Service
}

func newFixture() *fixture {
	store := newMemStore()
	svc := NewService(
		fakeOrders{store},
		fakeCustomers{store},
		fakeProducts{store},
		&fakeNumbers{},
		memTx{store},
	)
	return &fixture{store: store, svc: svc}
}

func (f *fixture) addCustomer(tenantID string) *customer.Customer {
	c := customer.NewCustomer(tenantID, "Ada", "L")
	_ = fakeCustomers{f.store}.Create(context.Background(), c)
	return c
}

func (f *fixture) addProduct(tenantID, name, price string, stock int) *product.Product {
	p := product.NewProduct(tenantID, name, types.MustMoney(price))
	p.StockQuantity = stock
	_ = fakeProducts{f.store}.Create(context.Background(), p)
	return p
}

func TestCreateDecrementsStockAndTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cust := f.addCustomer("t1")
	prod := f.addProduct("t1", "Shirt", "10.00", 5)

	order, err := f.svc.Create(ctx, "t1", CreateInput{
		CustomerID: cust.ID,
		Items:      []LineRequest{{ProductID: prod.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if prod.StockQuantity != 2 {
		t.Errorf("stock = %d, want 2", prod.StockQuantity)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(order.Items))
	}
	item := order.Items[0]
	if !item.TotalPrice.Equal(types.MustMoney("30.00")) {
		t.Errorf("line total = %s, want 30.00", item.TotalPrice)
	}
	if item.ProductName != "Shirt" {
		t.Errorf("product name not snapshotted: %q", item.ProductName)
	}
	if order.Status != StatusPending || order.PaymentStatus != PaymentPending {
		t.Errorf("new order not pending: %s/%s", order.Status, order.PaymentStatus)
	}
	if order.OrderNumber == "" {
		t.Error("order number missing")
	}
}

func TestCreateInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cust := f.addCustomer("t1")
	prod := f.addProduct("t1", "Shirt", "10.00", 2)

	_, err := f.svc.Create(ctx, "t1", CreateInput{
		CustomerID: cust.ID,
		Items:      []LineRequest{{ProductID: prod.ID, Quantity: 3}},
	})
	if !apperror.HasCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("got %v, want insufficient stock", err)
	}
	appErr, _ := apperror.AsAppError(err)
	if appErr.Details["available"] != 2 || appErr.Details["requested"] != 3 {
		t.Errorf("details = %v, want available=2 requested=3", appErr.Details)
	}
	if prod.StockQuantity != 2 {
		t.Errorf("stock = %d, want unchanged 2", prod.StockQuantity)
	}
}

func TestCreateAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cust := f.addCustomer("t1")
	good := f.addProduct("t1", "Shirt", "10.00", 5)
	short := f.addProduct("t1", "Hat", "5.00", 0)

	_, err := f.svc.Create(ctx, "t1", CreateInput{
		CustomerID: cust.ID,
		Items: []LineRequest{
			{ProductID: good.ID, Quantity: 2},
			{ProductID: short.ID, Quantity: 1},
		},
	})
	if !apperror.HasCode(err, apperror.CodeInsufficientStock) {
		t.Fatalf("got %v, want insufficient stock", err)
	}

	if good.StockQuantity != 5 {
		t.Errorf("first line's stock leaked: %d, want 5", good.StockQuantity)
	}
	if len(f.store.orders) != 0 {
		t.Errorf("order persisted despite failure: %d", len(f.store.orders))
	}
}

func TestCreateValidations(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cust := f.addCustomer("t1")
	prod := f.addProduct("t1", "Shirt", "10.00", 5)

	t.Run("invalid customer", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "t1", CreateInput{
			CustomerID: "cust-missing",
			Items:      []LineRequest{{ProductID: prod.ID, Quantity: 1}},
		})
		if !apperror.HasCode(err, apperror.CodeInvalidCustomer) {
			t.Errorf("got %v, want invalid customer", err)
		}
	})

	t.Run("cross-tenant customer is invalid", func(t *testing.T) {
		foreign := f.addCustomer("t2")
		_, err := f.svc.Create(ctx, "t1", CreateInput{
			CustomerID: foreign.ID,
			Items:      []LineRequest{{ProductID: prod.ID, Quantity: 1}},
		})
		if !apperror.HasCode(err, apperror.CodeInvalidCustomer) {
			t.Errorf("got %v, want invalid customer", err)
		}
	})

	t.Run("empty order", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "t1", CreateInput{CustomerID: cust.ID})
		if !apperror.HasCode(err, apperror.CodeEmptyOrder) {
			t.Errorf("got %v, want empty order", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "t1", CreateInput{
			CustomerID: cust.ID,
			Items:      []LineRequest{{ProductID: "prod-missing", Quantity: 1}},
		})
		if !apperror.HasCode(err, apperror.CodeProductNotFound) {
			t.Errorf("got %v, want product not found", err)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "t1", CreateInput{
			CustomerID: cust.ID,
			Items:      []LineRequest{{ProductID: prod.ID, Quantity: 0}},
		})
		if !apperror.HasCode(err, apperror.CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})
}

func TestCreateConcurrentLastUnit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cust := f.addCustomer("t1")
	prod := f.addProduct("t1", "Shirt", "10.00", 1)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, "t1", CreateInput{
				CustomerID: cust.ID,
				Items:      []LineRequest{{ProductID: prod.ID, Quantity: 1}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, failed int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case apperror.HasCode(err, apperror.CodeInsufficientStock),
			apperror.HasCode(err, apperror.CodeConflict):
			failed++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("got %d successes and %d stock failures, want exactly 1 and 1", ok, failed)
	}
	if prod.StockQuantity != 0 {
		t.Errorf("final stock = %d, want 0", prod.StockQuantity)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	cust := f.addCustomer("t1")
	prod := f.addProduct("t1", "Shirt", "10.00", 5)

	order, err := f.svc.Create(ctx, "t1", CreateInput{
		CustomerID: cust.ID,
		Items:      []LineRequest{{ProductID: prod.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := f.svc.UpdateStatus(ctx, "t1", order.ID, StatusShipped, PaymentPaid); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
	got, err := f.svc.Get(ctx, "t1", order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusShipped || got.PaymentStatus != PaymentPaid {
		t.Errorf("status %s/%s, want Shipped/Paid", got.Status, got.PaymentStatus)
	}
	if prod.StockQuantity != 4 {
		t.Errorf("status update touched stock: %d, want 4", prod.StockQuantity)
	}

	t.Run("rejects unknown status", func(t *testing.T) {
		err := f.svc.UpdateStatus(ctx, "t1", order.ID, Status("Lost"), PaymentPaid)
		if !apperror.HasCode(err, apperror.CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("cross-tenant update is not found", func(t *testing.T) {
		err := f.svc.UpdateStatus(ctx, "t2", order.ID, StatusShipped, PaymentPaid)
		if !apperror.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

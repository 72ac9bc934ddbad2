package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/Vinayyy19/Furnista/models"
	"github.com/Vinayyy19/Furnista/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Catalog ---

type fakeCatalog struct {
	products map[primitive.ObjectID]*models.Product
	variants map[primitive.ObjectID]*models.Variant
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[primitive.ObjectID]*models.Product{},
		variants: map[primitive.ObjectID]*models.Variant{},
	}
}

// addVariant registers a product with a single variant.
func (c *fakeCatalog) addVariant(name string, price int64) (*models.Product, *models.Variant) {
	p := &models.Product{ID: primitive.NewObjectID(), Name: name}
	v := &models.Variant{ID: primitive.NewObjectID(), ProductID: p.ID, Color: "Walnut", Size: "L", SellingPrice: price, MarketPrice: price + 50}
	c.products[p.ID] = p
	c.variants[v.ID] = v
	return p, v
}

type fakeProducts struct{ c *fakeCatalog }

func (f fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.c.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f fakeProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	out := map[primitive.ObjectID]*models.Product{}
	for _, id := range ids {
		if p, ok := f.c.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.c.products[p.ID] = p
	return nil
}

type fakeVariants struct{ c *fakeCatalog }

func (f fakeVariants) FindByID(_ context.Context, id primitive.ObjectID) (*models.Variant, error) {
	v, ok := f.c.variants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f fakeVariants) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Variant, error) {
	out := map[primitive.ObjectID]*models.Variant{}
	for _, id := range ids {
		if v, ok := f.c.variants[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f fakeVariants) Create(_ context.Context, v *models.Variant) error {
	f.c.variants[v.ID] = v
	return nil
}

// --- Inventory ---

type fakeInventory struct {
	mu    sync.Mutex
	stock      map[primitive.ObjectID]int
	decrements int
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{stock: map[primitive.ObjectID]int{}}
}

func (f *fakeInventory) Decrement(_ context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.stock[id]
	if !ok {
		return repository.ErrNotFound
	}
	if cur < qty {
		return repository.ErrInsufficientStock
	}
	f.stock[id] = cur - qty
	f.decrements++
	return nil
}

func (f *fakeInventory) Increment(_ context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stock[id]; !ok {
		return repository.ErrNotFound
	}
	f.stock[id] += qty
	return nil
}

func (f *fakeInventory) Available(_ context.Context, id primitive.ObjectID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.stock[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return cur, nil
}

func (f *fakeInventory) SetStock(_ context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[id] = qty
	return nil
}

func (f *fakeInventory) get(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[id]
}

// --- Carts ---

type fakeCarts struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: map[string]*models.Cart{}}
}

func cloneCart(c *models.Cart) *models.Cart {
	out := *c
	out.Items = append([]models.CartItem{}, c.Items...)
	return &out
}

func (f *fakeCarts) Get(_ context.Context, userID string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[userID]
	if !ok {
		return models.NewCart(userID), nil
	}
	return cloneCart(c), nil
}

func (f *fakeCarts) Update(_ context.Context, userID string, fn func(*models.Cart) error) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[userID]
	if !ok {
		c = models.NewCart(userID)
	}
	next := cloneCart(c)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()
	f.carts[userID] = next
	return cloneCart(next), nil
}

func (f *fakeCarts) exists(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.carts[userID]
	return ok
}

// --- Orders ---

type fakeOrders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
	// createErr forces Create to fail once.
	createErr error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[primitive.ObjectID]*models.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	for _, existing := range f.orders {
		if existing.Payment.ConfirmationID == o.Payment.ConfirmationID {
			return repository.ErrDuplicate
		}
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) FindByConfirmationID(_ context.Context, confirmationID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.Payment.ConfirmationID == confirmationID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrders) FindByUserID(_ context.Context, userID string, page, limit int) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return paginate(out, page, limit), int64(len(out)), nil
}

func (f *fakeOrders) FindAll(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return paginate(out, page, limit), int64(len(out)), nil
}

func paginate(orders []models.Order, page, limit int) []models.Order {
	start := (page - 1) * limit
	if start >= len(orders) {
		return []models.Order{}
	}
	end := start + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, from *models.OrderStatus, to models.OrderStatus, event models.OrderEvent) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || (from != nil && o.CurrentStatus != *from) {
		return nil, repository.ErrNotFound
	}
	o.CurrentStatus = to
	o.StatusUpdatedAt = event.CreatedAt
	o.UpdatedAt = event.CreatedAt
	o.Events = append(o.Events, event)
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// --- Idempotency ---

type fakeIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{keys: map[string]string{}}
}

func (f *fakeIdempotency) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keys[key], nil
}

func (f *fakeIdempotency) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[key] = value
	return nil
}

// --- Events ---

type fakePublisher struct {
	mu     sync.Mutex
	events []models.Event
}

func (f *fakePublisher) Publish(_ context.Context, e models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// --- Payment ---

type fakeBridge struct {
	amount   int64
	currency string
}

func (f *fakeBridge) Create(_ context.Context, amount int64, currency, _ string) (string, error) {
	f.amount, f.currency = amount, currency
	return "pi_test_1", nil
}

// --- Contacts ---

type fakeContacts struct {
	messages []models.ContactMessage
}

func (f *fakeContacts) Create(_ context.Context, m *models.ContactMessage) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeContacts) FindAll(_ context.Context, _, _ int) ([]models.ContactMessage, int64, error) {
	return f.messages, int64(len(f.messages)), nil
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeProductRepo struct {
	products map[string]domain.Product
}

func (f *fakeProductRepo) List(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// fakeCartRepo mirrors the MySQL repo's contract: one cart per user,
// increment-or-insert per (product, size) line.
type fakeCartRepo struct {
	products *fakeProductRepo
	carts    map[string]*domain.Cart // keyed by user ID
	nextID   int
	err      error
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{products: products, carts: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) GetByUser(_ context.Context, userID string) (domain.Cart, error) {
	if f.err != nil {
		return domain.Cart{}, f.err
	}
	c, ok := f.carts[userID]
	if !ok {
		return domain.Cart{UserID: userID}, nil
	}
	return *c, nil
}

func (f *fakeCartRepo) AddItem(_ context.Context, userID, productID string, quantity int, size string) (domain.Cart, error) {
	if f.err != nil {
		return domain.Cart{}, f.err
	}
	c, ok := f.carts[userID]
	if !ok {
		f.nextID++
		c = &domain.Cart{ID: fmt.Sprintf("cart-%d", f.nextID), UserID: userID}
		f.carts[userID] = c
	}
	for i, it := range c.Items {
		if it.ProductID == productID && it.Size == size {
			c.Items[i].Quantity += quantity
			return *c, nil
		}
	}
	p := f.products.products[productID]
	f.nextID++
	c.Items = append(c.Items, domain.CartItem{
		ID:        fmt.Sprintf("item-%d", f.nextID),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Product: domain.ProductSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
		},
	})
	return *c, nil
}

func (f *fakeCartRepo) SetQuantity(_ context.Context, userID, itemID string, quantity int) error {
	c, ok := f.carts[userID]
	if !ok {
		return ErrItemNotFound
	}
	for i, it := range c.Items {
		if it.ID == itemID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, userID, itemID string) error {
	c, ok := f.carts[userID]
	if !ok {
		return ErrItemNotFound
	}
	for i, it := range c.Items {
		if it.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

type fakeOrderRepo struct {
	orders    map[string]domain.Order
	carts     *fakeCartRepo
	createErr error
}

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]domain.Order{}, carts: carts}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order, cartID string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[o.ID] = *o
	if f.carts != nil {
		if c, ok := f.carts.carts[o.UserID]; ok && c.ID == cartID {
			c.Items = nil
		}
	}
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByUser(_ context.Context, userID, orderID string) (domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) UpdateStatusIf(_ context.Context, id string, from, to domain.Status) (bool, error) {
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	f.orders[id] = o
	return true, nil
}

type fakeIdemStore struct {
	locked map[string]bool
	values map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locked: map[string]bool{}, values: map[string]string{}}
}

func (f *fakeIdemStore) key(scope, key string) string { return scope + "/" + key }

func (f *fakeIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := f.key(scope, key)
	if f.locked[k] {
		return false, nil
	}
	f.locked[k] = true
	return true, nil
}

func (f *fakeIdemStore) Unlock(_ context.Context, scope, key string) error {
	delete(f.locked, f.key(scope, key))
	return nil
}

func (f *fakeIdemStore) Remember(_ context.Context, scope, key, value string) error {
	f.values[f.key(scope, key)] = value
	return nil
}

func (f *fakeIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := f.values[f.key(scope, key)]
	return v, ok, nil
}

type fakeEvents struct {
	published []OrderCreatedMsg
	err       error
}

func (f *fakeEvents) PublishCreated(_ context.Context, msg OrderCreatedMsg) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fakePayments struct {
	lastReq CheckoutSessionReq
	url     string
	err     error
}

func (f *fakePayments) CreateSession(_ context.Context, req CheckoutSessionReq) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

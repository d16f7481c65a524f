package usecase

import (
	"context"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
)

type ProductRepo interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
}

// CartRepo owns the one-cart-per-user invariant: AddItem finds-or-creates
// the cart and increments-or-inserts the (product, size) row atomically.
type CartRepo interface {
	// GetByUser returns an empty zero-ID cart when the user has none;
	// reading never creates rows.
	GetByUser(ctx context.Context, userID string) (domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int, size string) (domain.Cart, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	DeleteItem(ctx context.Context, userID, itemID string) error
}

type OrderRepo interface {
	// Create writes the order, its address and items, and clears the cart's
	// items in one transaction.
	Create(ctx context.Context, o *domain.Order, cartID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByUser(ctx context.Context, userID, orderID string) (domain.Order, error)
	UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error)
}

// OrderStatusCache keeps the latest fulfillment status per order for cheap
// polling from the order-history page.
type OrderStatusCache interface {
	SetStatus(ctx context.Context, orderID string, status domain.Status) error
	GetStatus(ctx context.Context, orderID string) (domain.Status, bool, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	// Unlock releases a TryLock that did not reach Remember, so a retry of
	// the same key can run instead of reading a permanent duplicate.
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type CheckoutLineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64 // minor currency units
	Quantity    int64
}

type CheckoutSessionReq struct {
	BuyerEmail string
	LineItems  []CheckoutLineItem
	Metadata   map[string]string
}

// PaymentProvider creates a hosted checkout session and returns its
// redirect URL. Implementations must bound the call with a timeout.
type PaymentProvider interface {
	CreateSession(ctx context.Context, req CheckoutSessionReq) (string, error)
}

type OrderEvents interface {
	PublishCreated(ctx context.Context, msg OrderCreatedMsg) error
}

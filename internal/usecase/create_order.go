package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/dozirovkaa/shop-api/internal/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShippingInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// Phone stays optional: the hosted payment page does not always collect it.
func (s ShippingInput) validate() error {
	for field, v := range map[string]string{
		"name":       s.Name,
		"email":      s.Email,
		"address":    s.Address,
		"city":       s.City,
		"postalCode": s.PostalCode,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidShipping, field)
		}
	}
	return nil
}

type CreateOrderInput struct {
	UserID string
	// IdempotencyKey is the checkout-session ID on the payment-confirmation
	// path, or a client-supplied key on the direct path. Empty skips the
	// duplicate guard.
	IdempotencyKey string
	Shipping       ShippingInput
}

type CreateOrder struct {
	carts  CartRepo
	orders OrderRepo
	idem   IdempotencyStore
	events OrderEvents
	log    *slog.Logger
}

func NewCreateOrder(carts CartRepo, orders OrderRepo, idem IdempotencyStore, events OrderEvents, log *slog.Logger) *CreateOrder {
	return &CreateOrder{carts: carts, orders: orders, idem: idem, events: events, log: log}
}

// Execute materializes the user's cart into an order: snapshots current
// prices into order items, writes order + address + items and clears the
// cart in one transaction. With an idempotency key, at most one order is
// created per key; replays return the original order.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if err := in.Shipping.validate(); err != nil {
		return domain.Order{}, err
	}

	var locked bool
	if in.IdempotencyKey != "" {
		if orderID, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			return uc.orders.GetByUser(ctx, in.UserID, orderID)
		}
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, ErrDuplicate
		}
		locked = true
	}
	// A lock that never reached Remember must not survive a failed attempt,
	// or every retry of this key reads as a duplicate until the TTL passes.
	unlock := func() {
		if locked {
			_ = uc.idem.Unlock(ctx, in.UserID, in.IdempotencyKey)
		}
	}

	cart, err := uc.carts.GetByUser(ctx, in.UserID)
	if err != nil {
		unlock()
		return domain.Order{}, err
	}
	if cart.Empty() {
		unlock()
		return domain.Order{}, ErrEmptyCart
	}

	order := buildOrder(in, cart)
	if err := uc.orders.Create(ctx, &order, cart.ID); err != nil {
		unlock()
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, order.ID)
	}

	// Best effort: fulfillment will also pick the order up by polling if the
	// broker is down.
	if err := uc.events.PublishCreated(ctx, OrderCreatedMsg{
		OrderID:     order.ID,
		UserID:      order.UserID,
		AmountMinor: pricing.MinorUnits(order.TotalAmount),
		Currency:    pricing.BaseCurrency,
	}); err != nil {
		uc.log.Warn("publish order.created failed", "order_id", order.ID, "err", err)
	}

	return order, nil
}

func buildOrder(in CreateOrderInput, cart domain.Cart) domain.Order {
	orderID := uuid.NewString()

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, domain.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      orderID,
			ProductID:    it.ProductID,
			Price:        it.Product.Price,
			Quantity:     it.Quantity,
			Size:         it.Size,
			ProductName:  it.Product.Name,
			ProductImage: it.Product.Image,
		})
	}

	return domain.Order{
		ID:          orderID,
		UserID:      in.UserID,
		Status:      domain.StatusPending,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
		Items:       items,
		Shipping: domain.ShippingAddress{
			ID:         uuid.NewString(),
			Name:       in.Shipping.Name,
			Email:      in.Shipping.Email,
			Phone:      in.Shipping.Phone,
			Address:    in.Shipping.Address,
			City:       in.Shipping.City,
			PostalCode: in.Shipping.PostalCode,
		},
	}
}

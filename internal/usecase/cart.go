package usecase

import (
	"context"
	"fmt"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
)

type Cart struct {
	products ProductRepo
	carts    CartRepo
}

func NewCart(products ProductRepo, carts CartRepo) *Cart {
	return &Cart{products: products, carts: carts}
}

func (uc *Cart) Get(ctx context.Context, userID string) (domain.Cart, error) {
	return uc.carts.GetByUser(ctx, userID)
}

// AddItem validates the product and size before touching the cart. An
// already-present (product, size) row has its quantity incremented instead
// of being duplicated; CartRepo guarantees that atomically.
func (uc *Cart) AddItem(ctx context.Context, userID, productID string, quantity int, size string) (domain.Cart, error) {
	if productID == "" || size == "" {
		return domain.Cart{}, fmt.Errorf("%w: productId and size are required", ErrInvalidInput)
	}
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.HasSize(size) {
		return domain.Cart{}, fmt.Errorf("%w: size %q not available for product %s", ErrInvalidInput, size, p.ID)
	}

	return uc.carts.AddItem(ctx, userID, productID, quantity, size)
}

// UpdateQuantity rejects quantity < 1: removal must be explicit via
// RemoveItem, never a silent side effect of a zero quantity.
func (uc *Cart) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if itemID == "" {
		return fmt.Errorf("%w: itemId is required", ErrInvalidInput)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	return uc.carts.SetQuantity(ctx, userID, itemID, quantity)
}

func (uc *Cart) RemoveItem(ctx context.Context, userID, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: itemId is required", ErrInvalidInput)
	}
	return uc.carts.DeleteItem(ctx, userID, itemID)
}

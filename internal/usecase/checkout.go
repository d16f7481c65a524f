package usecase

import (
	"context"
	"fmt"

	"github.com/dozirovkaa/shop-api/internal/pricing"
)

type Checkout struct {
	carts    CartRepo
	payments PaymentProvider
}

func NewCheckout(carts CartRepo, payments PaymentProvider) *Checkout {
	return &Checkout{carts: carts, payments: payments}
}

// CreateSession builds a hosted-payment session from the cart, pricing each
// line with the product's current catalog price. It never materializes an
// order; that happens only once payment is confirmed. On provider failure
// the cart is untouched, so the call is safe to retry.
func (uc *Checkout) CreateSession(ctx context.Context, userID, email string) (string, error) {
	// Stripe rejects sessions with an empty customer email; a session token
	// without the email claim fails here instead of at the provider.
	if email == "" {
		return "", fmt.Errorf("%w: buyer email is required", ErrInvalidInput)
	}

	cart, err := uc.carts.GetByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if cart.Empty() {
		return "", ErrEmptyCart
	}

	lines := make([]CheckoutLineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, CheckoutLineItem{
			Name:        it.Product.Name,
			Description: it.Product.Description,
			ImageURL:    it.Product.Image,
			UnitAmount:  pricing.MinorUnits(it.Product.Price),
			Quantity:    int64(it.Quantity),
		})
	}

	url, err := uc.payments.CreateSession(ctx, CheckoutSessionReq{
		BuyerEmail: email,
		LineItems:  lines,
		Metadata: map[string]string{
			"userId": userID,
			"cartId": cart.ID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPaymentProvider, err)
	}
	return url, nil
}

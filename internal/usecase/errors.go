package usecase

import "errors"

// Not-found errors are shared between "does not exist" and "belongs to
// another user" so handlers never leak foreign resources.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidShipping = errors.New("invalid shipping details")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentProvider = errors.New("payment provider unavailable")
	ErrDuplicate       = errors.New("duplicate idempotency key")
)

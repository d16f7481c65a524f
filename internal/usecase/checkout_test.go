package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout_CreateSession(t *testing.T) {
	products := catalogFixture()
	carts := newFakeCartRepo(products)
	_, err := carts.AddItem(context.Background(), "u1", "hoodie", 2, "M")
	require.NoError(t, err)
	cart, err := carts.AddItem(context.Background(), "u1", "scarf", 1, "ONE SIZE")
	require.NoError(t, err)

	payments := &fakePayments{url: "https://pay.example/s/abc"}
	uc := NewCheckout(carts, payments)

	url, err := uc.CreateSession(context.Background(), "u1", "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/abc", url)

	req := payments.lastReq
	assert.Equal(t, "buyer@example.com", req.BuyerEmail)
	assert.Equal(t, "u1", req.Metadata["userId"])
	assert.Equal(t, cart.ID, req.Metadata["cartId"])

	require.Len(t, req.LineItems, 2)
	// catalog prices land in minor units: 1500.00 RUB -> 150000 kopecks
	assert.Equal(t, int64(150000), req.LineItems[0].UnitAmount)
	assert.Equal(t, int64(2), req.LineItems[0].Quantity)
	assert.Equal(t, int64(80000), req.LineItems[1].UnitAmount)
	assert.Equal(t, int64(1), req.LineItems[1].Quantity)
}

func TestCheckout_CreateSession_MissingEmail(t *testing.T) {
	products := catalogFixture()
	carts := newFakeCartRepo(products)
	_, err := carts.AddItem(context.Background(), "u1", "hoodie", 1, "M")
	require.NoError(t, err)

	payments := &fakePayments{url: "https://pay.example/s/abc"}
	uc := NewCheckout(carts, payments)

	_, err = uc.CreateSession(context.Background(), "u1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	// the provider is never called with an email Stripe would reject
	assert.Empty(t, payments.lastReq.BuyerEmail)
	assert.Empty(t, payments.lastReq.LineItems)
}

func TestCheckout_CreateSession_EmptyCart(t *testing.T) {
	products := catalogFixture()
	uc := NewCheckout(newFakeCartRepo(products), &fakePayments{})

	_, err := uc.CreateSession(context.Background(), "u1", "buyer@example.com")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_CreateSession_ProviderFailure(t *testing.T) {
	products := catalogFixture()
	carts := newFakeCartRepo(products)
	_, err := carts.AddItem(context.Background(), "u1", "hoodie", 1, "M")
	require.NoError(t, err)

	payments := &fakePayments{err: errors.New("stripe: connection reset")}
	uc := NewCheckout(carts, payments)

	_, err = uc.CreateSession(context.Background(), "u1", "buyer@example.com")
	assert.ErrorIs(t, err, ErrPaymentProvider)

	// the cart survives the failed attempt untouched
	cart, err := carts.GetByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

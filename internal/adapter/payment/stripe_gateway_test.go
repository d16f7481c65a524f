package payment

import (
	"testing"
	"time"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *StripeGateway {
	return NewStripeGateway(
		"sk_test_x", "rub",
		"https://shop.example/success", "https://shop.example/cancel",
		[]string{"RU", "KZ", "US"}, 5*time.Second,
	)
}

func TestSessionParams_CollectsShippingAddress(t *testing.T) {
	g := testGateway()

	params := g.sessionParams(usecase.CheckoutSessionReq{
		BuyerEmail: "buyer@example.com",
		LineItems: []usecase.CheckoutLineItem{
			{Name: "Hoodie", UnitAmount: 150000, Quantity: 2},
		},
	})

	// Without address collection the completed-session webhook carries no
	// shipping and order materialization rejects every confirmed payment.
	require.NotNil(t, params.ShippingAddressCollection)
	countries := make([]string, 0, 3)
	for _, c := range params.ShippingAddressCollection.AllowedCountries {
		countries = append(countries, *c)
	}
	assert.ElementsMatch(t, []string{"RU", "KZ", "US"}, countries)
}

func TestSessionParams_LineItemsAndMetadata(t *testing.T) {
	g := testGateway()

	params := g.sessionParams(usecase.CheckoutSessionReq{
		BuyerEmail: "buyer@example.com",
		LineItems: []usecase.CheckoutLineItem{
			{Name: "Hoodie", Description: "warm", ImageURL: "https://img/h.jpg", UnitAmount: 150000, Quantity: 2},
			{Name: "Scarf", UnitAmount: 80000, Quantity: 1},
		},
		Metadata: map[string]string{"userId": "u1", "cartId": "c1"},
	})

	assert.Equal(t, "buyer@example.com", *params.CustomerEmail)
	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "https://shop.example/success", *params.SuccessURL)

	require.Len(t, params.LineItems, 2)
	first := params.LineItems[0]
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "rub", *first.PriceData.Currency)
	assert.Equal(t, int64(150000), *first.PriceData.UnitAmount)
	assert.Equal(t, "Hoodie", *first.PriceData.ProductData.Name)
	assert.Equal(t, "warm", *first.PriceData.ProductData.Description)
	require.Nil(t, params.LineItems[1].PriceData.ProductData.Description)

	assert.Equal(t, "u1", params.Metadata["userId"])
	assert.Equal(t, "c1", params.Metadata["cartId"])
}

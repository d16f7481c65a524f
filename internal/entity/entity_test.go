package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_HasSize(t *testing.T) {
	sized := Product{Sizes: []string{"S", "M", "L"}}
	assert.True(t, sized.HasSize("M"))
	assert.False(t, sized.HasSize("XXL"))
	assert.False(t, sized.HasSize(SizeOne))

	unsized := Product{}
	assert.True(t, unsized.HasSize(SizeOne))
	assert.False(t, unsized.HasSize("M"))
}

func TestCart_Total(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Quantity: 2, Product: ProductSummary{Price: decimal.RequireFromString("1500")}},
		{Quantity: 1, Product: ProductSummary{Price: decimal.RequireFromString("800")}},
	}}
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("3800")))

	assert.True(t, Cart{}.Total().Equal(decimal.Zero))
	assert.True(t, Cart{}.Empty())
	assert.False(t, cart.Empty())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, IsValidStatus(s), string(s))
	}
	assert.False(t, IsValidStatus("REFUNDED"))
	assert.False(t, IsValidStatus(""))
}

package domain

import "github.com/shopspring/decimal"

// Cart is the per-user working set of prospective purchases. There is at
// most one cart per user; an empty Cart with a zero ID stands in for a cart
// that has never been created.
type Cart struct {
	ID     string
	UserID string
	Items  []CartItem
}

type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Size      string
	Product   ProductSummary
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }

// Total sums item price x quantity over the joined product prices.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

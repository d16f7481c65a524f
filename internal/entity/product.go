package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SizeOne marks products sold without a size chart (scarves, bags, ...).
const SizeOne = "ONE SIZE"

type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Sizes       []string
	CreatedAt   time.Time
}

// HasSize reports whether the given label is sellable for this product.
// Products with an empty size chart accept only the ONE SIZE sentinel.
func (p Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return size == SizeOne
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ProductSummary is the slice of a product joined into cart and order views.
type ProductSummary struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
}

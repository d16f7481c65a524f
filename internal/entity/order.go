package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order is immutable after creation except for Status, which the external
// fulfillment process advances.
type Order struct {
	ID          string
	UserID      string
	Status      Status
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []OrderItem
	Shipping    ShippingAddress
}

// OrderItem snapshots price, quantity and size at order time. Price is a
// copy, not a reference: later catalog changes must not alter it.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Price     decimal.Decimal
	Quantity  int
	Size      string

	// Denormalized for order-history display.
	ProductName  string
	ProductImage string
}

type ShippingAddress struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

package usecase

// Published to RabbitMQ after an order is materialized.
type OrderCreatedMsg struct {
	OrderID     string `json:"orderId"`
	UserID      string `json:"userId"`
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
}

// Sent by the fulfillment service on Kafka.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	Status  string `json:"status"` // e.g. "SHIPPED"
}

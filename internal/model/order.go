package model

// Order is a placed order as read from the signal store. The recommendation
// pipeline only ever reads orders; placement and fulfilment live elsewhere.
type Order struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
	Ctime  int64       `json:"ctime"`
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

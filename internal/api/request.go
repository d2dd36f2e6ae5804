package api

// OrderCreateRequest is the payload for submitting a limit order.
type OrderCreateRequest struct {
	Identifier string  `json:"identifier"`
	Side       string  `json:"side"`
	Size       float64 `json:"size"`
	Price      float64 `json:"price"`
	ClientID   string  `json:"clientOrderId"`
}

// OrderCancelRequest is the payload for cancelling a resting order.
type OrderCancelRequest struct {
	Identifier string `json:"identifier"`
	OrderID    string `json:"orderId"`
}

package dto

import "time"

// OrderItemRequest is one (dish, quantity) pair in a submission.
type OrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// CreateOrderRequest describes a new order submission.
type CreateOrderRequest struct {
	Local       string             `json:"local"`
	ScheduledAt time.Time          `json:"scheduled_at"`
	Notes       *string            `json:"notes"`
	Items       []OrderItemRequest `json:"items"`
}

// UpdateOrderRequest replaces an order's line items; scheduled_at and notes
// are optional and keep the stored values when absent.
type UpdateOrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	ScheduledAt *time.Time         `json:"scheduled_at"`
	Notes       *string            `json:"notes"`
}

// ChangeOrderStatusRequest moves an order along its lifecycle.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrderResponse is the submission receipt: the ticket number the
// customer waits on plus the charged total.
type CreateOrderResponse struct {
	OrderID       string  `json:"order_id"`
	DisplayNumber int     `json:"display_number"`
	Total         float64 `json:"total"`
	Status        string  `json:"status"`
}

// OrderLineItemResponse is one priced line of an order.
type OrderLineItemResponse struct {
	MenuItemID int64   `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// OrderResponse is the full order view.
type OrderResponse struct {
	OrderID       string                  `json:"order_id"`
	Local         string                  `json:"local"`
	DisplayNumber int                     `json:"display_number"`
	ScheduledAt   time.Time               `json:"scheduled_at"`
	Total         float64                 `json:"total"`
	Status        string                  `json:"status"`
	Notes         *string                 `json:"notes,omitempty"`
	Items         []OrderLineItemResponse `json:"items"`
	CreatedAt     time.Time               `json:"created_at"`
}

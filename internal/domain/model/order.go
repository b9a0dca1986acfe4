package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

// ValidStatus reports whether s names a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// The lifecycle only moves forward: PENDING -> CONFIRMED -> DELIVERED, with
// REJECTED as a terminal branch before delivery.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusRejected
	case OrderStatusConfirmed:
		return to == OrderStatusDelivered || to == OrderStatusRejected
	}
	return false
}

// displayNumberModulus is the size of the physical ticket board: display
// numbers cycle through 1..100 and are reused once the raw counter wraps.
const displayNumberModulus = 100

// DisplayNumber derives the user-facing ticket number from a raw counter
// value. The raw counter is monotonic and never reset; only this derived
// value is non-unique over time. Values stay in [1,100], never 0.
func DisplayNumber(raw int64) int {
	n := int(raw % displayNumberModulus)
	if n == 0 {
		n = displayNumberModulus
	}
	return n
}

// Order is the aggregate root: a header owning its line items, always
// created as one atomic unit.
type Order struct {
	ID            int64
	PublicID      string
	Local         string
	DisplayNumber int
	ScheduledAt   time.Time
	Total         float64
	Status        OrderStatus
	Notes         *string
	UserID        int64
	Items         []OrderLineItem
	CreatedAt     time.Time
}

// OrderLineItem belongs to exactly one order. Price is captured at order
// time so later menu price changes do not alter historical totals.
type OrderLineItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Quantity   int
	Price      float64
}

// OrderItemRequest is a requested (item, quantity) pair in a submission.
type OrderItemRequest struct {
	MenuItemID int64
	Quantity   int
}

// OrderSubmission carries everything needed to create an order.
type OrderSubmission struct {
	Local       string
	ScheduledAt time.Time
	UserID      int64
	Notes       *string
	Items       []OrderItemRequest
}

// OrderDraft is a fully priced order ready for atomic persistence.
type OrderDraft struct {
	Local       string
	ScheduledAt time.Time
	UserID      int64
	Notes       *string
	Total       float64
	Items       []OrderLineItem
}

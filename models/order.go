package models

// Order statuses the dashboard cares about. The backend owns the full state
// machine and may report others; unknown statuses pass through as text.
const (
	OrderStatusAwaitingApproval = "AWAITING_APPROVAL"
	OrderStatusApproved         = "APPROVED"
	OrderStatusRejected         = "REJECTED"
)

type OrderItem struct {
	ID        int64   `json:"id,omitempty"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreatedAt/UpdatedAt stay strings: the backend emits zone-less local
// timestamps and the dashboard only displays them.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
	OrderItems  []OrderItem `json:"orderItems,omitempty"`
}

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	UserID     int64       `json:"userId"`
	OrderItems []OrderItem `json:"orderItems"`
}

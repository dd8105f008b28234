package model

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is a crew's equipment order with its line items. Line items are
// created together with the order and record the quantities actually
// deducted from stock, not the quantities the crew selected.
type Order struct {
	ID         int64           `json:"id"`
	CarNumber  string          `json:"car_number"`
	OrderDate  time.Time       `json:"order_date"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	IsPairCrew bool            `json:"is_pair_crew"`
	Items      []OrderLineItem `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderLineItem references an equipment item consumed by an order.
type OrderLineItem struct {
	ID          int64 `json:"id,omitempty"`
	EquipmentID int64 `json:"equipment_id"`
	Quantity    int   `json:"quantity"`

	// Joined field (not always populated). Empty if the equipment record
	// was deleted after the order was placed.
	EquipmentTitle string `json:"equipment_title,omitempty"`
}

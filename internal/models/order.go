package models

import "strings"

// Order lifecycle statuses. "delayed" marks an order still in the kitchen that
// has exceeded its expected preparation time.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelayed   = "delayed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every valid order status.
func OrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelayed,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// ValidOrderStatus reports whether the supplied status is one of the closed set.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelayed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order with its line items.
type Order struct {
	BaseModel

	TableNumber  int     `gorm:"index" json:"table_number"`
	CustomerName string  `gorm:"type:varchar(120)" json:"customer_name,omitempty"`
	Status       string  `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	TotalAmount  float64 `gorm:"not null;default:0" json:"total_amount"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// Normalise trims free-text fields and lower-cases the status.
func (o *Order) Normalise() {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	o.Status = strings.ToLower(strings.TrimSpace(o.Status))
}

// OrderItem is one line of an order referencing a menu item.
type OrderItem struct {
	BaseModel

	OrderID             string    `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID          string    `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	MenuItem            *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity            int       `gorm:"not null;default:1" json:"quantity"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions,omitempty"`
}

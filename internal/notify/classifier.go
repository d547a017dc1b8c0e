package notify

import (
	"fmt"
	"strings"
	"time"
)

// AlertCondition orders alert severity for suppression decisions. A stored
// condition equal to or above the candidate's withholds it; a strictly higher
// candidate escalates past the stored one. AlertNone never escalates, so
// non-alert duplicates are decided by exact type match alone.
type AlertCondition int

const (
	AlertNone AlertCondition = iota
	AlertLowStock
	AlertOutOfStock
)

// Draft holds the classified notification fields prior to persistence.
type Draft struct {
	Category    Category
	Type        Type
	Priority    Priority
	Condition   AlertCondition
	Title       string
	Message     string
	ActionURL   string
	ActionLabel string

	RelatedEntityType string
	RelatedEntityID   string

	RecipientID *string

	// ExpiresIn is the time-to-live the cleanup sweep honours; zero means the
	// notification never expires on its own.
	ExpiresIn time.Duration

	Metadata map[string]any
}

// Related entity type labels used for suppression lookups.
const (
	EntityInventoryItem = "inventory_item"
	EntityOrder         = "order"
)

type classification struct {
	category  Category
	priority  Priority
	notifType Type
	condition AlertCondition
	expiresIn time.Duration
}

// classifications is the fixed event policy table. Expiry TTLs follow the
// original alert lifetimes: stock alerts linger longer than order chatter.
// The condition column carries the ordered severity of the stock alert pair;
// out-of-stock outranks low-stock so an escalation bypasses suppression.
var classifications = map[EventKind]classification{
	EventInventoryLow:      {CategoryInventory, PriorityMedium, TypeWarning, AlertLowStock, 48 * time.Hour},
	EventInventoryOut:      {CategoryInventory, PriorityHigh, TypeError, AlertOutOfStock, 24 * time.Hour},
	EventOrderCreated:      {CategoryOrders, PriorityNormal, TypeInfo, AlertNone, 24 * time.Hour},
	EventOrderReady:        {CategoryOrders, PriorityNormal, TypeSuccess, AlertNone, 6 * time.Hour},
	EventOrderDelayed:      {CategoryOrders, PriorityHigh, TypeWarning, AlertNone, 12 * time.Hour},
	EventSystemMaintenance: {CategorySystem, PriorityHigh, TypeWarning, AlertNone, 72 * time.Hour},
	EventSystemCritical:    {CategorySystem, PriorityHigh, TypeError, AlertNone, 72 * time.Hour},
	EventSystemInfo:        {CategorySystem, PriorityNormal, TypeInfo, AlertNone, 72 * time.Hour},
}

// Classify maps a domain event onto notification fields. It performs no I/O
// and fails only for kinds outside the closed set.
func Classify(event Event) (Draft, error) {
	policy, ok := classifications[event.Kind]
	if !ok {
		return Draft{}, fmt.Errorf("%w: kind %q", ErrInvalidEventKind, event.Kind)
	}

	draft := Draft{
		Category:    policy.category,
		Type:        policy.notifType,
		Priority:    policy.priority,
		Condition:   policy.condition,
		RecipientID: event.RecipientID,
		ExpiresIn:   policy.expiresIn,
	}

	switch event.Kind {
	case EventInventoryLow:
		item := event.Item
		if item == nil {
			item = &InventorySubject{}
		}
		draft.Title = fmt.Sprintf("Low Stock: %s", item.Name)
		draft.Message = fmt.Sprintf("%s is running low (Current: %s %s, Minimum: %s %s)",
			item.Name, formatStock(item.CurrentStock), item.Unit, formatStock(item.MinimumStock), item.Unit)
		draft.ActionURL = fmt.Sprintf("/inventory#%s", item.ID)
		draft.ActionLabel = "Restock Item"
		draft.RelatedEntityType = EntityInventoryItem
		draft.RelatedEntityID = item.ID
		draft.Metadata = map[string]any{
			"item_id":       item.ID,
			"current_stock": item.CurrentStock,
			"minimum_stock": item.MinimumStock,
			"supplier":      item.Supplier,
		}

	case EventInventoryOut:
		item := event.Item
		if item == nil {
			item = &InventorySubject{}
		}
		draft.Title = fmt.Sprintf("Out of Stock: %s", item.Name)
		draft.Message = fmt.Sprintf("%s is completely out of stock! Immediate restocking required.", item.Name)
		draft.ActionURL = fmt.Sprintf("/inventory#%s", item.ID)
		draft.ActionLabel = "Emergency Restock"
		draft.RelatedEntityType = EntityInventoryItem
		draft.RelatedEntityID = item.ID
		draft.Metadata = map[string]any{
			"item_id":       item.ID,
			"current_stock": item.CurrentStock,
			"supplier":      item.Supplier,
			"emergency":     true,
		}

	case EventOrderCreated:
		order := event.Order
		if order == nil {
			order = &OrderSubject{}
		}
		draft.Title = "New Order Received"
		draft.Message = fmt.Sprintf("A new order%s has been placed and requires attention", orderContext(order))
		fillOrderDraft(&draft, order)

	case EventOrderReady:
		order := event.Order
		if order == nil {
			order = &OrderSubject{}
		}
		draft.Title = "Order Ready"
		draft.Message = fmt.Sprintf("Order%s is ready for pickup/delivery", orderContext(order))
		fillOrderDraft(&draft, order)

	case EventOrderDelayed:
		order := event.Order
		if order == nil {
			order = &OrderSubject{}
		}
		draft.Title = "Order Delayed"
		if order.DelayMinutes > 0 {
			draft.Message = fmt.Sprintf("Order%s is delayed by approximately %d minutes", orderContext(order), order.DelayMinutes)
		} else {
			draft.Message = fmt.Sprintf("Order%s is taking longer than expected", orderContext(order))
		}
		fillOrderDraft(&draft, order)

	case EventSystemMaintenance:
		draft.Title = "System Maintenance Scheduled"
		draft.Message = defaultMessage(event.Message, "System maintenance has been scheduled")

	case EventSystemCritical:
		draft.Title = "System Alert"
		draft.Message = defaultMessage(event.Message, "A critical system condition requires attention")

	case EventSystemInfo:
		draft.Title = "System Notification"
		draft.Message = defaultMessage(event.Message, "System notification")
	}

	return draft, nil
}

func fillOrderDraft(draft *Draft, order *OrderSubject) {
	draft.ActionURL = fmt.Sprintf("/orders#%s", order.ID)
	draft.ActionLabel = "View Order"
	draft.RelatedEntityType = EntityOrder
	draft.RelatedEntityID = order.ID
	draft.Metadata = map[string]any{
		"order_id":      order.ID,
		"table_number":  order.TableNumber,
		"customer_name": order.CustomerName,
	}
}

func orderContext(order *OrderSubject) string {
	switch {
	case order.TableNumber > 0 && order.CustomerName != "":
		return fmt.Sprintf(" for table %d (%s)", order.TableNumber, order.CustomerName)
	case order.TableNumber > 0:
		return fmt.Sprintf(" for table %d", order.TableNumber)
	case order.CustomerName != "":
		return fmt.Sprintf(" for %s", order.CustomerName)
	}
	return ""
}

func formatStock(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func defaultMessage(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}

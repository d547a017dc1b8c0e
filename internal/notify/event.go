// Package notify defines the closed vocabularies of the notification feed and
// the pure mapping from domain events to notification drafts.
package notify

import (
	"fmt"
	"net/http"

	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

// Category groups notifications for filtering and badge breakdowns.
type Category string

const (
	CategoryInventory Category = "inventory"
	CategoryOrders    Category = "orders"
	CategorySystem    Category = "system"
	CategoryStaff     Category = "staff"
)

// Categories lists every valid category value.
func Categories() []Category {
	return []Category{CategoryInventory, CategoryOrders, CategorySystem, CategoryStaff}
}

// Valid reports whether the category is one of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryInventory, CategoryOrders, CategorySystem, CategoryStaff:
		return true
	}
	return false
}

// Priority expresses display emphasis, ordered low < normal < medium < high < urgent.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRanks = map[Priority]int{
	PriorityLow:    0,
	PriorityNormal: 1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Valid reports whether the priority is one of the closed set.
func (p Priority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank returns the severity ordering position of the priority; unknown values rank lowest.
func (p Priority) Rank() int {
	return priorityRanks[p]
}

// Type is the semantic subtype used for icon and styling choices.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeSuccess Type = "success"
)

// Valid reports whether the type is one of the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeError, TypeSuccess:
		return true
	}
	return false
}

// EventKind names a domain occurrence that can be classified into a notification.
type EventKind string

const (
	EventInventoryLow      EventKind = "inventory_low"
	EventInventoryOut      EventKind = "inventory_out"
	EventOrderCreated      EventKind = "order_created"
	EventOrderReady        EventKind = "order_ready"
	EventOrderDelayed      EventKind = "order_delayed"
	EventSystemMaintenance EventKind = "system_maintenance"
	EventSystemCritical    EventKind = "system_critical"
	EventSystemInfo        EventKind = "system_info"
)

// Valid reports whether the kind is one of the closed set.
func (k EventKind) Valid() bool {
	switch k {
	case EventInventoryLow, EventInventoryOut,
		EventOrderCreated, EventOrderReady, EventOrderDelayed,
		EventSystemMaintenance, EventSystemCritical, EventSystemInfo:
		return true
	}
	return false
}

// ErrInvalidEventKind is returned by Classify for kinds outside the closed set.
// It indicates a programming error in the caller and maps to a 400 at the edge.
var ErrInvalidEventKind = apperrors.New("INVALID_EVENT_KIND", "Unknown notification event kind", http.StatusBadRequest)

// InventorySubject carries the inventory fields referenced in alert messages.
type InventorySubject struct {
	ID           string
	Name         string
	CurrentStock float64
	MinimumStock float64
	Unit         string
	Supplier     string
}

// OrderSubject carries the order fields referenced in order notifications.
type OrderSubject struct {
	ID           string
	TableNumber  int
	CustomerName string
	DelayMinutes int
}

// Event describes a domain occurrence to be classified into a notification.
// Exactly one subject field is consulted depending on Kind: Item for inventory
// kinds, Order for order kinds, and Message for system kinds.
type Event struct {
	Kind        EventKind
	Item        *InventorySubject
	Order       *OrderSubject
	Message     string
	RecipientID *string
}

func (e Event) String() string {
	return fmt.Sprintf("notify.Event{Kind:%s}", e.Kind)
}

package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/gastropro/gastropro/internal/models"
	"github.com/gastropro/gastropro/internal/notify"
	"github.com/gastropro/gastropro/pkg/logger"
)

// NotificationEvents raises feed notifications for domain changes. Failures are
// logged and swallowed so a broken feed never fails the underlying operation.
type NotificationEvents struct {
	svc *NotificationService
}

// NewNotificationEvents constructs the trigger facade. A nil service disables
// every trigger.
func NewNotificationEvents(svc *NotificationService) *NotificationEvents {
	return &NotificationEvents{svc: svc}
}

// OrderCreated raises an order_created notification for a newly placed order.
func (e *NotificationEvents) OrderCreated(ctx context.Context, order *models.Order) {
	if e == nil || e.svc == nil || order == nil {
		return
	}
	e.emit(ctx, notify.Event{
		Kind:  notify.EventOrderCreated,
		Order: orderSubject(order),
	})
}

// OrderStatusChanged raises ready or delayed notifications on the matching
// transitions. Other transitions stay silent.
func (e *NotificationEvents) OrderStatusChanged(ctx context.Context, order *models.Order, previousStatus string) {
	if e == nil || e.svc == nil || order == nil || order.Status == previousStatus {
		return
	}

	var kind notify.EventKind
	switch order.Status {
	case models.OrderStatusReady:
		kind = notify.EventOrderReady
	case models.OrderStatusDelayed:
		kind = notify.EventOrderDelayed
	default:
		return
	}

	e.emit(ctx, notify.Event{
		Kind:  kind,
		Order: orderSubject(order),
	})
}

// StockChanged raises inventory alerts when a stock update crosses the
// out-of-stock or low-stock boundary downwards. Upward moves and changes that
// stay within a band are silent; re-entry into a band after recovery alerts
// again, subject to suppression.
func (e *NotificationEvents) StockChanged(ctx context.Context, item *models.InventoryItem, previousStock float64) {
	if e == nil || e.svc == nil || item == nil {
		return
	}

	previous := models.InventoryItem{
		CurrentStock: previousStock,
		MinimumStock: item.MinimumStock,
	}

	var kind notify.EventKind
	switch {
	case item.OutOfStock() && !previous.OutOfStock():
		kind = notify.EventInventoryOut
	case item.LowStock() && !previous.LowStock() && !previous.OutOfStock():
		kind = notify.EventInventoryLow
	default:
		return
	}

	e.emit(ctx, notify.Event{
		Kind: kind,
		Item: &notify.InventorySubject{
			ID:           item.ID,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			MinimumStock: item.MinimumStock,
			Unit:         item.Unit,
			Supplier:     item.Supplier,
		},
	})
}

// System raises a system notification of the supplied kind.
func (e *NotificationEvents) System(ctx context.Context, kind notify.EventKind, message string, recipientID *string) {
	if e == nil || e.svc == nil {
		return
	}
	e.emit(ctx, notify.Event{
		Kind:        kind,
		Message:     message,
		RecipientID: recipientID,
	})
}

func (e *NotificationEvents) emit(ctx context.Context, event notify.Event) {
	if _, err := e.svc.Create(ctx, event); err != nil {
		logger.Warn("notification trigger failed",
			zap.String("kind", string(event.Kind)),
			zap.Error(err))
	}
}

func orderSubject(order *models.Order) *notify.OrderSubject {
	return &notify.OrderSubject{
		ID:           order.ID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
	}
}

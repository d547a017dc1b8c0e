package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/gastropro/internal/models"
)

func TestOrderStatusChangedTriggersOnlyReadyAndDelayed(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	events := NewNotificationEvents(svc)
	ctx := context.Background()

	order := &models.Order{
		BaseModel:   models.BaseModel{ID: "order-1"},
		TableNumber: 7,
		Status:      models.OrderStatusPreparing,
	}
	events.OrderStatusChanged(ctx, order, models.OrderStatusPending)

	listed, err := svc.List(ctx, ListNotificationsInput{})
	require.NoError(t, err)
	require.Empty(t, listed, "pending to preparing is silent")

	order.Status = models.OrderStatusReady
	events.OrderStatusChanged(ctx, order, models.OrderStatusPreparing)

	order.Status = models.OrderStatusDelayed
	events.OrderStatusChanged(ctx, order, models.OrderStatusReady)

	listed, err = svc.List(ctx, ListNotificationsInput{Category: "orders"})
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestStockChangedCrossingDetection(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	events := NewNotificationEvents(svc)
	ctx := context.Background()

	item := &models.InventoryItem{
		BaseModel:    models.BaseModel{ID: "item-1"},
		Name:         "Olive Oil",
		CurrentStock: 3,
		MinimumStock: 5,
		Unit:         "l",
	}

	// 10 -> 3 crosses the low threshold.
	events.StockChanged(ctx, item, 10)

	listed, err := svc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// 3 -> 2 stays inside the low band: silent.
	item.CurrentStock = 2
	events.StockChanged(ctx, item, 3)

	listed, err = svc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// 2 -> 0 crosses into out-of-stock and escalates past suppression.
	item.CurrentStock = 0
	events.StockChanged(ctx, item, 2)

	listed, err = svc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// 0 -> 8 recovery is silent.
	item.CurrentStock = 8
	events.StockChanged(ctx, item, 0)

	listed, err = svc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestNilEventsFacadeIsSafe(t *testing.T) {
	var events *NotificationEvents

	events.OrderCreated(context.Background(), &models.Order{})
	events.StockChanged(context.Background(), &models.InventoryItem{}, 1)
	events.System(context.Background(), "system_info", "hello", nil)
}

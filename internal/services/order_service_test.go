package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/database/testutil"
	"github.com/gastropro/gastropro/internal/models"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

func newTestOrderService(t *testing.T) (*OrderService, *MenuService, *NotificationService, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	notifSvc, err := NewNotificationService(db, nil, NotificationConfig{})
	require.NoError(t, err)
	orderSvc, err := NewOrderService(db, NewNotificationEvents(notifSvc))
	require.NoError(t, err)
	menuSvc, err := NewMenuService(db)
	require.NoError(t, err)
	return orderSvc, menuSvc, notifSvc, db
}

func seedMenuItem(t *testing.T, menuSvc *MenuService, name string, price float64) *models.MenuItem {
	t.Helper()
	item, err := menuSvc.Create(context.Background(), MenuItemInput{Name: name, Price: price, Category: "mains"})
	require.NoError(t, err)
	return item
}

func TestCreateOrderComputesTotalAndNotifies(t *testing.T) {
	orderSvc, menuSvc, notifSvc, _ := newTestOrderService(t)
	ctx := context.Background()

	pizza := seedMenuItem(t, menuSvc, "Pizza Margherita", 11.50)
	cola := seedMenuItem(t, menuSvc, "Cola", 3.20)

	order, err := orderSvc.Create(ctx, CreateOrderInput{
		TableNumber:  4,
		CustomerName: "Walk-in",
		Items: []OrderLineInput{
			{MenuItemID: pizza.ID, Quantity: 2},
			{MenuItemID: cola.ID, Quantity: 1, SpecialInstructions: "no ice"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.InDelta(t, 26.20, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)

	listed, err := notifSvc.List(ctx, ListNotificationsInput{Category: "orders"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "New Order Received", listed[0].Title)
}

func TestCreateOrderValidation(t *testing.T) {
	orderSvc, menuSvc, _, _ := newTestOrderService(t)
	ctx := context.Background()

	_, err := orderSvc.Create(ctx, CreateOrderInput{TableNumber: 1})
	require.Error(t, err, "empty orders are rejected")

	_, err = orderSvc.Create(ctx, CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: "missing", Quantity: 1}},
	})
	require.Error(t, err, "unknown menu items are rejected")

	inactive := seedMenuItem(t, menuSvc, "Seasonal Special", 9.90)
	off := false
	_, err = menuSvc.Update(ctx, inactive.ID, MenuItemUpdate{IsActive: &off})
	require.NoError(t, err)

	_, err = orderSvc.Create(ctx, CreateOrderInput{
		Items: []OrderLineInput{{MenuItemID: inactive.ID, Quantity: 1}},
	})
	require.Error(t, err, "inactive menu items are rejected")
}

func TestUpdateOrderStatusNotifications(t *testing.T) {
	orderSvc, menuSvc, notifSvc, _ := newTestOrderService(t)
	ctx := context.Background()

	pizza := seedMenuItem(t, menuSvc, "Pizza", 10)
	order, err := orderSvc.Create(ctx, CreateOrderInput{
		TableNumber: 2,
		Items:       []OrderLineInput{{MenuItemID: pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = orderSvc.UpdateStatus(ctx, order.ID, "preparing")
	require.NoError(t, err)

	updated, err := orderSvc.UpdateStatus(ctx, order.ID, "ready")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusReady, updated.Status)

	_, err = orderSvc.UpdateStatus(ctx, order.ID, "served")
	require.Error(t, err, "unknown statuses are rejected")

	listed, err := notifSvc.List(ctx, ListNotificationsInput{Category: "orders"})
	require.NoError(t, err)
	// Creation plus the ready transition; preparing is silent.
	require.Len(t, listed, 2)
	require.Equal(t, "Order Ready", listed[0].Title)
}

func TestListOrdersFilters(t *testing.T) {
	orderSvc, menuSvc, _, _ := newTestOrderService(t)
	ctx := context.Background()

	pizza := seedMenuItem(t, menuSvc, "Pizza", 10)

	first, err := orderSvc.Create(ctx, CreateOrderInput{
		TableNumber: 1,
		Items:       []OrderLineInput{{MenuItemID: pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = orderSvc.Create(ctx, CreateOrderInput{
		TableNumber: 2,
		Items:       []OrderLineInput{{MenuItemID: pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = orderSvc.UpdateStatus(ctx, first.ID, "delivered")
	require.NoError(t, err)

	active, err := orderSvc.List(ctx, ListOrdersInput{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)

	delivered, err := orderSvc.List(ctx, ListOrdersInput{Status: "delivered"})
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	require.Equal(t, first.ID, delivered[0].ID)

	_, err = orderSvc.List(ctx, ListOrdersInput{Status: "bogus"})
	require.Error(t, err)
}

func TestDeleteOrderRemovesLines(t *testing.T) {
	orderSvc, menuSvc, _, db := newTestOrderService(t)
	ctx := context.Background()

	pizza := seedMenuItem(t, menuSvc, "Pizza", 10)
	order, err := orderSvc.Create(ctx, CreateOrderInput{
		TableNumber: 3,
		Items:       []OrderLineInput{{MenuItemID: pizza.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, orderSvc.Delete(ctx, order.ID))

	var lines int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&lines).Error)
	require.EqualValues(t, 0, lines)

	err = orderSvc.Delete(ctx, order.ID)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

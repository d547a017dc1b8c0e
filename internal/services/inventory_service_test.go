package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/gastropro/internal/database/testutil"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

func newTestInventoryService(t *testing.T) (*InventoryService, *NotificationService) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	notifSvc, err := NewNotificationService(db, nil, NotificationConfig{})
	require.NoError(t, err)
	svc, err := NewInventoryService(db, NewNotificationEvents(notifSvc))
	require.NoError(t, err)
	return svc, notifSvc
}

func TestInventoryCRUD(t *testing.T) {
	svc, _ := newTestInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, InventoryItemInput{
		Name:         "  Flour ",
		Category:     "dry goods",
		CurrentStock: 20,
		Unit:         "kg",
		MinimumStock: 5,
		Supplier:     "Mill & Co",
	})
	require.NoError(t, err)
	require.Equal(t, "Flour", item.Name)
	require.NotEmpty(t, item.ID)

	loaded, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, item.ID, loaded.ID)

	newName := "Bread Flour"
	updated, err := svc.Update(ctx, item.ID, InventoryItemUpdate{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Bread Flour", updated.Name)

	require.NoError(t, svc.Delete(ctx, item.ID))
	_, err = svc.Get(ctx, item.ID)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestInventoryCreateValidation(t *testing.T) {
	svc, _ := newTestInventoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, InventoryItemInput{Name: " "})
	require.Error(t, err)

	_, err = svc.Create(ctx, InventoryItemInput{Name: "Salt", CurrentStock: -1})
	require.Error(t, err)
}

func TestAdjustStockRaisesAlertsAndClampsAtZero(t *testing.T) {
	svc, notifSvc := newTestInventoryService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, InventoryItemInput{
		Name:         "Tomatoes",
		CurrentStock: 10,
		MinimumStock: 5,
		Unit:         "kg",
	})
	require.NoError(t, err)

	adjusted, err := svc.AdjustStock(ctx, item.ID, -6)
	require.NoError(t, err)
	require.Equal(t, 4.0, adjusted.CurrentStock)

	listed, err := notifSvc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 1, "crossing the threshold raises a low stock alert")

	adjusted, err = svc.AdjustStock(ctx, item.ID, -10)
	require.NoError(t, err)
	require.Equal(t, 0.0, adjusted.CurrentStock, "stock never goes negative")

	listed, err = notifSvc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 2, "out of stock escalates past the low alert")
}

func TestInventoryCreateBelowThresholdAlertsImmediately(t *testing.T) {
	svc, notifSvc := newTestInventoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, InventoryItemInput{
		Name:         "Saffron",
		CurrentStock: 1,
		MinimumStock: 3,
	})
	require.NoError(t, err)

	listed, err := notifSvc.List(ctx, ListNotificationsInput{Category: "inventory"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestInventoryListLowOnly(t *testing.T) {
	svc, _ := newTestInventoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, InventoryItemInput{Name: "Flour", CurrentStock: 20, MinimumStock: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, InventoryItemInput{Name: "Basil", CurrentStock: 1, MinimumStock: 2})
	require.NoError(t, err)

	low, err := svc.List(ctx, ListInventoryInput{LowOnly: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Basil", low[0].Name)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

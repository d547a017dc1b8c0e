package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/gastropro/internal/database/testutil"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

func newTestMenuService(t *testing.T) *MenuService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewMenuService(db)
	require.NoError(t, err)
	return svc
}

func TestMenuCRUD(t *testing.T) {
	svc := newTestMenuService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, MenuItemInput{
		Name:     " Tiramisu ",
		Price:    6.50,
		Category: "desserts",
	})
	require.NoError(t, err)
	require.Equal(t, "Tiramisu", item.Name)
	require.True(t, item.IsActive, "new items default to active")

	loaded, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 6.50, loaded.Price)

	newPrice := 7.00
	updated, err := svc.Update(ctx, item.ID, MenuItemUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 7.00, updated.Price)

	require.NoError(t, svc.Delete(ctx, item.ID))
	_, err = svc.Get(ctx, item.ID)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
	require.True(t, errors.Is(svc.Delete(ctx, item.ID), apperrors.ErrNotFound))
}

func TestMenuValidation(t *testing.T) {
	svc := newTestMenuService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, MenuItemInput{Name: "  ", Price: 5})
	require.Error(t, err)

	_, err = svc.Create(ctx, MenuItemInput{Name: "Soup", Price: -1})
	require.Error(t, err)

	negative := -2.0
	item, err := svc.Create(ctx, MenuItemInput{Name: "Soup", Price: 4})
	require.NoError(t, err)
	_, err = svc.Update(ctx, item.ID, MenuItemUpdate{Price: &negative})
	require.Error(t, err)
}

func TestMenuListAndCategories(t *testing.T) {
	svc := newTestMenuService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, MenuItemInput{Name: "Espresso", Price: 2.0, Category: "drinks"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(ctx, MenuItemInput{Name: "Mulled Wine", Price: 4.5, Category: "drinks", IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MenuItemInput{Name: "Bruschetta", Price: 5.5, Category: "starters"})
	require.NoError(t, err)

	all, err := svc.List(ctx, ListMenuInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	active, err := svc.List(ctx, ListMenuInput{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)

	drinks, err := svc.List(ctx, ListMenuInput{Category: "drinks"})
	require.NoError(t, err)
	require.Len(t, drinks, 2)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"drinks", "starters"}, categories)
}

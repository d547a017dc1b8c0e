package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gastropro/gastropro/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite", DSN: "file:db_test_migrate?mode=memory&cache=shared&_foreign_keys=1"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	for _, table := range []string{"menu_items", "inventory_items", "staff_members", "orders", "order_items", "notifications"} {
		require.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}

	// Identifiers are generated on insert.
	item := models.MenuItem{Name: "Margherita", Price: 9.5, Category: "pizza", IsActive: true}
	require.NoError(t, db.Create(&item).Error)
	require.NotEmpty(t, item.ID)
}

func TestMigrateNilHandle(t *testing.T) {
	require.Error(t, Migrate(nil))
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	db, err := Open(Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
}

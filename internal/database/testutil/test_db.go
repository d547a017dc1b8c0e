// Package testutil opens throwaway SQLite databases for tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/database"
)

// TestDBOption customises MustOpenTestDB.
type TestDBOption func(*options)

type options struct {
	migrate bool
}

// WithAutoMigrate applies the full schema after opening.
func WithAutoMigrate() TestDBOption {
	return func(o *options) { o.migrate = true }
}

// MustOpenTestDB returns an in-memory SQLite handle that is private to the
// calling test. The database name carries a fresh UUID so shared-cache mode
// never leaks rows between parallel tests; the connection closes in Cleanup.
func MustOpenTestDB(t *testing.T, opts ...TestDBOption) *gorm.DB {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := database.Open(database.Config{
		Driver: "sqlite",
		DSN:    "file:testdb_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
	})
	require.NoError(t, err)

	if o.migrate {
		require.NoError(t, database.AutoMigrate(db))
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

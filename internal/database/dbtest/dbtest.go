// Package dbtest provides isolated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var memCounter atomic.Int64

// Open returns a migrated, isolated in-memory SQLite database with
// foreign keys enforced. It is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:noteflow_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", memCounter.Add(1))
	db, err := database.Open(sqlite.Open(name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Eursukkul/airline-ops/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var memCounter atomic.Int64

// NewTestDB opens a private in-memory SQLite database with foreign keys on.
// A single connection keeps every statement on the same in-memory instance.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, memCounter.Add(1))

	db, err := database.Open(sqlite.Open(dsn), database.PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

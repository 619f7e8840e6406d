// Package dbtest builds throwaway executors backed by a file SQLite
// database, for tests that need a real store across all layers.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/db"
)

// NewExecutor returns an executor on a fresh SQLite database under the
// test's temp dir. The provider is closed when the test ends.
func NewExecutor(t *testing.T) *db.Executor {
	t.Helper()
	cfg := db.Config{
		Dialect:        db.SQLite,
		Path:           filepath.Join(t.TempDir(), "portal_test.db"),
		ConnectTimeout: 5 * time.Second,
	}
	provider, err := db.NewProvider(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	adapter, err := db.AdapterFor(db.SQLite)
	require.NoError(t, err)
	return db.NewExecutor(provider, adapter, 5*time.Second, zap.NewNop())
}

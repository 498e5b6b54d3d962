package testutil

import (
	"testing"
	"time"

	"github.com/nhle/dayplan/internal/logger"
	"github.com/nhle/dayplan/internal/model"
	"github.com/nhle/dayplan/internal/planner"
	"github.com/nhle/dayplan/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestPlanner creates a planner without persistence, pinned to UTC day
// keys and a 09:00 default due time.
func NewTestPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	return planner.New(nil, time.UTC, model.TimeOfDay{Hour: 9}, logger.NewNop())
}

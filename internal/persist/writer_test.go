package persist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/dayplan/internal/model"
	"github.com/nhle/dayplan/internal/store"
)

func newWriter(t *testing.T) (*Writer, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	w := NewWriter(s, nil)
	w.Start()
	return w, s
}

func TestWriterFlushesLatestSnapshotOnClose(t *testing.T) {
	w, s := newWriter(t)
	ctx := context.Background()

	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	stale := []model.DayList{{Date: monday, Tasks: []model.Task{{ID: "old", Title: "old"}}}}
	latest := []model.DayList{{Date: monday, Tasks: []model.Task{{ID: "new", Title: "new"}}}}

	require.NoError(t, w.SaveDayLists(ctx, stale))
	require.NoError(t, w.SaveDayLists(ctx, latest))
	require.NoError(t, w.Close())

	loaded, err := s.LoadDayLists(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Tasks, 1)
	require.Equal(t, "new", loaded[0].Tasks[0].ID, "bursts coalesce to the latest snapshot")
}

func TestWriterWritesInBackground(t *testing.T) {
	w, s := newWriter(t)
	ctx := context.Background()
	defer w.Close()

	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, w.SaveDayLists(ctx, []model.DayList{{Date: monday}}))

	require.Eventually(t, func() bool {
		loaded, err := s.LoadDayLists(ctx)
		return err == nil && len(loaded) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWriterDefaultDueTimePassesThrough(t *testing.T) {
	w, s := newWriter(t)
	ctx := context.Background()
	defer w.Close()

	want := model.TimeOfDay{Hour: 6, Minute: 30}
	require.NoError(t, w.SetDefaultDueTime(ctx, want))

	got, err := s.GetDefaultDueTime(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want, *got)
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	w, _ := newWriter(t)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

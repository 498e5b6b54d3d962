package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/dayplan/internal/model"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDayList(day time.Time) model.DayList {
	due := day.Add(14 * time.Hour)
	created := day.Add(8 * time.Hour)
	return model.DayList{
		Date: day,
		Tasks: []model.Task{
			{
				ID:          "task-1",
				Title:       "pack for trip",
				IsCompleted: false,
				DueDate:     &due,
				CreatedAt:   created,
				UpdatedAt:   created,
				Subtasks: []model.Subtask{
					{
						ID:          "sub-1",
						Title:       "clothes",
						IsCompleted: true,
						CreatedAt:   created,
						UpdatedAt:   created,
						SubSubtasks: []model.SubSubtask{
							{
								ID:          "leaf-1",
								Title:       "socks",
								IsCompleted: true,
								CreatedAt:   created,
								UpdatedAt:   created,
							},
						},
					},
				},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	lists := []model.DayList{
		sampleDayList(monday),
		{Date: tuesday},
	}

	require.NoError(t, s.SaveDayLists(ctx, lists))

	loaded, err := s.LoadDayLists(ctx)
	require.NoError(t, err)
	require.Equal(t, lists, loaded)
}

func TestSaveReplacesPriorSnapshot(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveDayLists(ctx, []model.DayList{sampleDayList(monday)}))
	require.NoError(t, s.SaveDayLists(ctx, []model.DayList{{Date: monday}}))

	loaded, err := s.LoadDayLists(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Empty(t, loaded[0].Tasks)
}

func TestLoadSkipsCorruptRows(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveDayLists(ctx, []model.DayList{sampleDayList(monday)}))

	_, err := s.db.Exec(
		"INSERT INTO day_lists (day, payload, updated_at) VALUES (?, ?, ?)",
		"2025-03-11", "{not json", time.Now().UTC(),
	)
	require.NoError(t, err)

	loaded, err := s.LoadDayLists(ctx)
	require.NoError(t, err, "a corrupt day is no prior data, not a failure")
	require.Len(t, loaded, 1)
	require.True(t, loaded[0].Date.Equal(monday))
}

func TestLoadEmptyStore(t *testing.T) {
	s := newStore(t)

	loaded, err := s.LoadDayLists(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestDefaultDueTime(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	got, err := s.GetDefaultDueTime(ctx)
	require.NoError(t, err)
	require.Nil(t, got, "unset until first write")

	want := model.TimeOfDay{Hour: 18, Minute: 45}
	require.NoError(t, s.SetDefaultDueTime(ctx, want))

	got, err = s.GetDefaultDueTime(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want, *got)

	// Overwrite.
	require.NoError(t, s.SetDefaultDueTime(ctx, model.TimeOfDay{Hour: 8}))
	got, err = s.GetDefaultDueTime(ctx)
	require.NoError(t, err)
	require.Equal(t, model.TimeOfDay{Hour: 8}, *got)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.runMigrations())
}

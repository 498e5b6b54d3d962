package store

import (
	"context"

	"github.com/nhle/dayplan/internal/model"
)

// Store is the persistence transport for the planner. It treats day lists as
// opaque serialized snapshots keyed by day; it never interprets the task
// hierarchy itself.
type Store interface {
	// LoadDayLists returns the previously saved snapshot. A missing or
	// partially corrupt snapshot yields whatever could be recovered,
	// never an error the planner has to treat as fatal.
	LoadDayLists(ctx context.Context) ([]model.DayList, error)

	// SaveDayLists replaces the stored snapshot with the given day lists.
	SaveDayLists(ctx context.Context, lists []model.DayList) error

	// GetDefaultDueTime returns the stored default due time, or nil when
	// none has been set.
	GetDefaultDueTime(ctx context.Context) (*model.TimeOfDay, error)

	// SetDefaultDueTime stores the default due time.
	SetDefaultDueTime(ctx context.Context, t model.TimeOfDay) error

	Close() error
}

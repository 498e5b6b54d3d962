package planner_test

import (
	"testing"
	"time"

	"github.com/nhle/dayplan/internal/logger"
	"github.com/nhle/dayplan/internal/model"
	"github.com/nhle/dayplan/internal/planner"
)

var (
	monday  = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
)

// newPlanner returns a planner without persistence, pinned to UTC, with
// monday selected.
func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	p := planner.New(nil, time.UTC, model.TimeOfDay{Hour: 9}, logger.NewNop())
	p.SelectDate(monday)
	return p
}

// newPlannerWithoutList returns a planner whose selected day has no list
// yet; nothing has been selected or added.
func newPlannerWithoutList(t *testing.T) *planner.Planner {
	t.Helper()
	return planner.New(nil, time.UTC, model.TimeOfDay{Hour: 9}, logger.NewNop())
}

// taskByID finds a task in the selected day's list.
func taskByID(t *testing.T, p *planner.Planner, id string) model.Task {
	t.Helper()
	for _, task := range p.CurrentDayList().Tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not found in selected day's list", id)
	return model.Task{}
}

// subtaskByID finds a subtask in the selected day's list.
func subtaskByID(t *testing.T, p *planner.Planner, id string) model.Subtask {
	t.Helper()
	for _, task := range p.CurrentDayList().Tasks {
		for _, st := range task.Subtasks {
			if st.ID == id {
				return st
			}
		}
	}
	t.Fatalf("subtask %s not found in selected day's list", id)
	return model.Subtask{}
}

// subSubtaskByID finds a sub-subtask in the selected day's list.
func subSubtaskByID(t *testing.T, p *planner.Planner, id string) model.SubSubtask {
	t.Helper()
	for _, task := range p.CurrentDayList().Tasks {
		for _, st := range task.Subtasks {
			for _, ss := range st.SubSubtasks {
				if ss.ID == id {
					return ss
				}
			}
		}
	}
	t.Fatalf("sub-subtask %s not found in selected day's list", id)
	return model.SubSubtask{}
}

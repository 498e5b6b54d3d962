package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskCompletionPercent(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want float64
	}{
		{
			name: "complete with no subtasks",
			task: Task{IsCompleted: true},
			want: 100,
		},
		{
			name: "incomplete with no subtasks",
			task: Task{},
			want: 0,
		},
		{
			name: "half of immediate subtasks complete",
			task: Task{Subtasks: []Subtask{{IsCompleted: true}, {}}},
			want: 50,
		},
		{
			name: "sub-subtasks do not weigh in",
			task: Task{Subtasks: []Subtask{
				{IsCompleted: true, SubSubtasks: []SubSubtask{{}, {}}},
			}},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, tt.task.CompletionPercent(), 0.001)
		})
	}
}

func TestDayListCompletionPercentFlatWeighting(t *testing.T) {
	list := DayList{
		Tasks: []Task{
			{IsCompleted: true},
			{
				Subtasks: []Subtask{
					{IsCompleted: true, SubSubtasks: []SubSubtask{{IsCompleted: true}, {}}},
				},
			},
		},
	}

	// 5 units total (2 tasks + 1 subtask + 2 sub-subtasks), 3 complete.
	require.InDelta(t, 60, list.CompletionPercent(), 0.001)
}

func TestDayListCompletionPercentEmpty(t *testing.T) {
	require.Zero(t, DayList{}.CompletionPercent())
}

func TestSubtreeComplete(t *testing.T) {
	task := Task{Subtasks: []Subtask{
		{IsCompleted: true, SubSubtasks: []SubSubtask{{IsCompleted: true}}},
	}}
	require.True(t, task.SubtreeComplete())

	task.Subtasks[0].SubSubtasks[0].IsCompleted = false
	require.False(t, task.SubtreeComplete())

	require.True(t, Task{}.SubtreeComplete(), "vacuously true with no children")
}

func TestCloneIsDeep(t *testing.T) {
	due := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	list := DayList{
		Date: due,
		Tasks: []Task{
			{
				ID:      "t",
				DueDate: &due,
				Subtasks: []Subtask{
					{ID: "s", SubSubtasks: []SubSubtask{{ID: "ss"}}},
				},
			},
		},
	}

	clone := list.Clone()
	clone.Tasks[0].Title = "changed"
	clone.Tasks[0].Subtasks[0].IsCompleted = true
	clone.Tasks[0].Subtasks[0].SubSubtasks[0].Title = "changed"
	*clone.Tasks[0].DueDate = due.AddDate(0, 0, 5)

	require.Equal(t, "", list.Tasks[0].Title)
	require.False(t, list.Tasks[0].Subtasks[0].IsCompleted)
	require.Equal(t, "", list.Tasks[0].Subtasks[0].SubSubtasks[0].Title)
	require.True(t, list.Tasks[0].DueDate.Equal(due))
}

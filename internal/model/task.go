package model

import "time"

// SubSubtask is the leaf level of the task hierarchy. It has no children.
type SubSubtask struct {
	// ID is the process-unique identifier, stable across edits.
	ID string `json:"id"`

	// Title is the raw user-entered text. The engine never trims it.
	Title string `json:"title"`

	// IsCompleted is the completion flag.
	IsCompleted bool `json:"isCompleted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Subtask is the middle level of the hierarchy. Its sub-subtasks keep
// insertion order.
type Subtask struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	IsCompleted bool         `json:"isCompleted"`
	SubSubtasks []SubSubtask `json:"subSubtasks"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Task is a top-level item in a day's list. Only tasks carry a due date.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	Subtasks    []Subtask  `json:"subtasks"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DayList holds the tasks of a single calendar day. Date is normalized to
// midnight in the planner's configured location.
type DayList struct {
	Date  time.Time `json:"date"`
	Tasks []Task    `json:"tasks"`
}

// Clone returns a copy of the sub-subtask.
func (s SubSubtask) Clone() SubSubtask {
	return s
}

// Clone returns a deep copy of the subtask and its children.
func (s Subtask) Clone() Subtask {
	out := s
	if s.SubSubtasks != nil {
		out.SubSubtasks = make([]SubSubtask, len(s.SubSubtasks))
		copy(out.SubSubtasks, s.SubSubtasks)
	}
	return out
}

// Clone returns a deep copy of the task and its subtree.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(t.Subtasks))
		for i, st := range t.Subtasks {
			out.Subtasks[i] = st.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the day list.
func (d DayList) Clone() DayList {
	out := d
	if d.Tasks != nil {
		out.Tasks = make([]Task, len(d.Tasks))
		for i, t := range d.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	return out
}

// SubtreeComplete reports whether every subtask and sub-subtask under the
// task is complete. Vacuously true for a task with no subtasks.
func (t Task) SubtreeComplete() bool {
	for _, st := range t.Subtasks {
		if !st.IsCompleted {
			return false
		}
		for _, ss := range st.SubSubtasks {
			if !ss.IsCompleted {
				return false
			}
		}
	}
	return true
}

// ChildrenComplete reports whether every sub-subtask of the subtask is
// complete. Vacuously true when there are none.
func (s Subtask) ChildrenComplete() bool {
	for _, ss := range s.SubSubtasks {
		if !ss.IsCompleted {
			return false
		}
	}
	return true
}

// CompletionPercent returns 100 for a complete task with no subtasks, 0 for
// an incomplete one with no subtasks, and otherwise the percentage of
// completed immediate subtasks.
func (t Task) CompletionPercent() float64 {
	if len(t.Subtasks) == 0 {
		if t.IsCompleted {
			return 100
		}
		return 0
	}
	done := 0
	for _, st := range t.Subtasks {
		if st.IsCompleted {
			done++
		}
	}
	return float64(done) / float64(len(t.Subtasks)) * 100
}

// CompletionPercent returns the percentage of completed items in the list,
// counting every task, subtask and sub-subtask as one unit. An empty list
// reports 0.
func (d DayList) CompletionPercent() float64 {
	total, done := 0, 0
	count := func(completed bool) {
		total++
		if completed {
			done++
		}
	}
	for _, t := range d.Tasks {
		count(t.IsCompleted)
		for _, st := range t.Subtasks {
			count(st.IsCompleted)
			for _, ss := range st.SubSubtasks {
				count(ss.IsCompleted)
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

package planner

import (
	"time"

	"github.com/nhle/dayplan/internal/model"
)

// Completion rules:
//
//  1. Toggling a node incomplete→complete forces its whole subtree complete.
//     Toggling complete→incomplete leaves children untouched.
//  2. Whenever a child's completion changes, its ancestors' completion is
//     recomputed as AND over everything beneath them.
//
// A direct toggle of a node is never immediately overridden by its own
// aggregate; childless nodes simply carry their own flag.

// ToggleTask flips a task's completion flag. Completing a task completes its
// entire subtree. Unknown ids are ignored.
func (p *Planner) ToggleTask(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findTask(id)
	if !ok {
		return false
	}

	now := time.Now().UTC()
	task := ref.task()
	task.IsCompleted = !task.IsCompleted
	task.UpdatedAt = now
	if task.IsCompleted {
		cascadeTask(task, now)
	}

	p.persistLocked()
	return true
}

// ToggleSubtask flips a subtask's completion flag, cascading down to its
// sub-subtasks on completion, then recomputes the owning task.
func (p *Planner) ToggleSubtask(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(id)
	if !ok {
		return false
	}

	now := time.Now().UTC()
	st := ref.subtask()
	st.IsCompleted = !st.IsCompleted
	st.UpdatedAt = now
	if st.IsCompleted {
		cascadeSubtask(st, now)
	}

	recomputeTask(ref.task(), now)

	p.persistLocked()
	return true
}

// ToggleSubSubtask flips a leaf's completion flag, then recomputes the
// parent subtask and in turn the owning task.
func (p *Planner) ToggleSubSubtask(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubSubtask(id)
	if !ok {
		return false
	}

	now := time.Now().UTC()
	ss := ref.subSub()
	ss.IsCompleted = !ss.IsCompleted
	ss.UpdatedAt = now

	recomputeSubtask(ref.subtask(), now)
	recomputeTask(ref.task(), now)

	p.persistLocked()
	return true
}

// cascadeTask marks every descendant of the task complete.
func cascadeTask(task *model.Task, now time.Time) {
	for i := range task.Subtasks {
		st := &task.Subtasks[i]
		if !st.IsCompleted {
			st.IsCompleted = true
			st.UpdatedAt = now
		}
		cascadeSubtask(st, now)
	}
}

// cascadeSubtask marks every sub-subtask of the subtask complete.
func cascadeSubtask(st *model.Subtask, now time.Time) {
	for i := range st.SubSubtasks {
		ss := &st.SubSubtasks[i]
		if !ss.IsCompleted {
			ss.IsCompleted = true
			ss.UpdatedAt = now
		}
	}
}

// recomputeSubtask re-derives a subtask's completion from its sub-subtasks.
// A subtask with no children keeps its own flag.
func recomputeSubtask(st *model.Subtask, now time.Time) {
	if len(st.SubSubtasks) == 0 {
		return
	}
	done := st.ChildrenComplete()
	if st.IsCompleted != done {
		st.IsCompleted = done
	}
	st.UpdatedAt = now
}

// recomputeTask re-derives a task's completion from its whole subtree.
// A task with no subtasks keeps its own flag.
func recomputeTask(task *model.Task, now time.Time) {
	if len(task.Subtasks) == 0 {
		return
	}
	done := task.SubtreeComplete()
	if task.IsCompleted != done {
		task.IsCompleted = done
	}
	task.UpdatedAt = now
}

package planner

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/dayplan/internal/model"
)

// Editor operations are total: an unknown target id yields a zero result and
// no effect. Titles are stored verbatim; trimming is the caller's concern.

// AddTask appends a task to the selected day's list, creating the list on
// first use, and returns the new task's id.
func (p *Planner) AddTask(title string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, _ := p.ensureList(p.selected)
	task := newTask(title)
	list.Tasks = append(list.Tasks, task)

	p.persistLocked()
	return task.ID
}

// InsertTaskAfter inserts a new task right after the given sibling in the
// selected day's list, appending when the sibling id is unknown. Returns the
// new task's id.
func (p *Planner) InsertTaskAfter(afterID, title string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, _ := p.ensureList(p.selected)
	task := newTask(title)

	at := len(list.Tasks)
	for i := range list.Tasks {
		if list.Tasks[i].ID == afterID {
			at = i + 1
			break
		}
	}
	list.Tasks = slices.Insert(list.Tasks, at, task)

	p.persistLocked()
	return task.ID
}

// AddSubtask appends a subtask under the given task.
func (p *Planner) AddSubtask(taskID, title string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findTask(taskID)
	if !ok {
		return "", false
	}

	now := time.Now().UTC()
	st := newSubtask(title)
	task := ref.task()
	task.Subtasks = append(task.Subtasks, st)
	recomputeTask(task, now)

	p.persistLocked()
	return st.ID, true
}

// InsertSubtaskAfter inserts a new subtask under the given task, right after
// the given sibling, appending when the sibling id is unknown.
func (p *Planner) InsertSubtaskAfter(taskID, afterID, title string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findTask(taskID)
	if !ok {
		return "", false
	}

	now := time.Now().UTC()
	st := newSubtask(title)
	task := ref.task()

	at := len(task.Subtasks)
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == afterID {
			at = i + 1
			break
		}
	}
	task.Subtasks = slices.Insert(task.Subtasks, at, st)
	recomputeTask(task, now)

	p.persistLocked()
	return st.ID, true
}

// AddSubSubtask appends a sub-subtask under the given subtask.
func (p *Planner) AddSubSubtask(subtaskID, title string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(subtaskID)
	if !ok {
		return "", false
	}

	now := time.Now().UTC()
	ss := newSubSubtask(title)
	st := ref.subtask()
	st.SubSubtasks = append(st.SubSubtasks, ss)
	recomputeSubtask(st, now)
	recomputeTask(ref.task(), now)

	p.persistLocked()
	return ss.ID, true
}

// InsertSubSubtaskAfter inserts a new sub-subtask under the given subtask,
// right after the given sibling, appending when the sibling id is unknown.
func (p *Planner) InsertSubSubtaskAfter(subtaskID, afterID, title string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(subtaskID)
	if !ok {
		return "", false
	}

	now := time.Now().UTC()
	ss := newSubSubtask(title)
	st := ref.subtask()

	at := len(st.SubSubtasks)
	for i := range st.SubSubtasks {
		if st.SubSubtasks[i].ID == afterID {
			at = i + 1
			break
		}
	}
	st.SubSubtasks = slices.Insert(st.SubSubtasks, at, ss)
	recomputeSubtask(st, now)
	recomputeTask(ref.task(), now)

	p.persistLocked()
	return ss.ID, true
}

// RenameTask replaces a task's title.
func (p *Planner) RenameTask(id, title string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findTask(id)
	if !ok {
		return false
	}
	task := ref.task()
	task.Title = title
	task.UpdatedAt = time.Now().UTC()

	p.persistLocked()
	return true
}

// RenameSubtask replaces a subtask's title.
func (p *Planner) RenameSubtask(id, title string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(id)
	if !ok {
		return false
	}
	now := time.Now().UTC()
	st := ref.subtask()
	st.Title = title
	st.UpdatedAt = now
	ref.task().UpdatedAt = now

	p.persistLocked()
	return true
}

// RenameSubSubtask replaces a sub-subtask's title.
func (p *Planner) RenameSubSubtask(id, title string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubSubtask(id)
	if !ok {
		return false
	}
	now := time.Now().UTC()
	ss := ref.subSub()
	ss.Title = title
	ss.UpdatedAt = now
	ref.subtask().UpdatedAt = now
	ref.task().UpdatedAt = now

	p.persistLocked()
	return true
}

// SetTaskDue attaches or clears a task's due timestamp.
func (p *Planner) SetTaskDue(id string, due *time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findTask(id)
	if !ok {
		return false
	}
	task := ref.task()
	if due != nil {
		d := *due
		task.DueDate = &d
	} else {
		task.DueDate = nil
	}
	task.UpdatedAt = time.Now().UTC()

	p.persistLocked()
	return true
}

// DeleteTask removes a task and its entire subtree. The day list stays in
// place even when it becomes empty.
func (p *Planner) DeleteTask(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findTask(id)
	if !ok {
		return false
	}
	ref.list.Tasks = slices.Delete(ref.list.Tasks, ref.idx, ref.idx+1)

	p.persistLocked()
	return true
}

// DeleteSubtask removes a subtask and its sub-subtasks, then re-derives the
// owning task's completion from what remains.
func (p *Planner) DeleteSubtask(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(id)
	if !ok {
		return false
	}
	now := time.Now().UTC()
	task := ref.task()
	task.Subtasks = slices.Delete(task.Subtasks, ref.idx, ref.idx+1)
	recomputeTask(task, now)
	task.UpdatedAt = now

	p.persistLocked()
	return true
}

// DeleteSubSubtask removes a sub-subtask, then re-derives its ancestors'
// completion from what remains.
func (p *Planner) DeleteSubSubtask(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubSubtask(id)
	if !ok {
		return false
	}
	now := time.Now().UTC()
	st := ref.subtask()
	st.SubSubtasks = slices.Delete(st.SubSubtasks, ref.idx, ref.idx+1)
	recomputeSubtask(st, now)
	st.UpdatedAt = now
	recomputeTask(ref.task(), now)
	ref.task().UpdatedAt = now

	p.persistLocked()
	return true
}

func newTask(title string) model.Task {
	now := time.Now().UTC()
	return model.Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newSubtask(title string) model.Subtask {
	now := time.Now().UTC()
	return model.Subtask{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newSubSubtask(title string) model.SubSubtask {
	now := time.Now().UTC()
	return model.SubSubtask{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

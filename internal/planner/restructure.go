package planner

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/dayplan/internal/model"
)

// Indent/outdent converts a node between hierarchy levels, keeping its title
// and completion flag (under a fresh id). Indenting keeps nothing of the
// node's own children: there is no level for them to land on, so they are
// dropped. Callers indent freshly typed, childless rows.

// IndentTask demotes a task in the selected day's list to a subtask of its
// immediately preceding sibling. Fails when the day has no list, the id is
// unknown there, or the task is first in the list.
func (p *Planner) IndentTask(id string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.listFor(p.selected)
	if list == nil {
		return "", false
	}
	idx := slices.IndexFunc(list.Tasks, func(t model.Task) bool { return t.ID == id })
	if idx <= 0 {
		return "", false
	}

	now := time.Now().UTC()
	task := list.Tasks[idx]
	st := model.Subtask{
		ID:          uuid.New().String(),
		Title:       task.Title,
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   now,
	}

	list.Tasks = slices.Delete(list.Tasks, idx, idx+1)
	prev := &list.Tasks[idx-1]
	prev.Subtasks = append(prev.Subtasks, st)
	recomputeTask(prev, now)

	p.persistLocked()
	return st.ID, true
}

// OutdentSubtask promotes a subtask to a task placed right after its parent
// in the day list. The subtask's sub-subtasks are promoted with it, each
// becoming a subtask of the new task with order preserved.
func (p *Planner) OutdentSubtask(id string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(id)
	if !ok {
		return "", false
	}

	now := time.Now().UTC()
	st := ref.subtask().Clone()
	parent := ref.task()
	parent.Subtasks = slices.Delete(parent.Subtasks, ref.idx, ref.idx+1)

	promoted := make([]model.Subtask, 0, len(st.SubSubtasks))
	for _, ss := range st.SubSubtasks {
		promoted = append(promoted, model.Subtask{
			ID:          uuid.New().String(),
			Title:       ss.Title,
			IsCompleted: ss.IsCompleted,
			CreatedAt:   ss.CreatedAt,
			UpdatedAt:   now,
		})
	}
	task := model.Task{
		ID:          uuid.New().String(),
		Title:       st.Title,
		IsCompleted: st.IsCompleted,
		Subtasks:    promoted,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   now,
	}

	ref.list.Tasks = slices.Insert(ref.list.Tasks, ref.taskIdx+1, task)
	recomputeTask(&ref.list.Tasks[ref.taskIdx], now)

	p.persistLocked()
	return task.ID, true
}

// IndentSubtask demotes a subtask to a sub-subtask of its immediately
// preceding sibling subtask. Fails when the id is unknown or the subtask is
// first under its task.
func (p *Planner) IndentSubtask(id string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubtask(id)
	if !ok || ref.idx == 0 {
		return "", false
	}

	now := time.Now().UTC()
	task := ref.task()
	st := task.Subtasks[ref.idx]
	ss := model.SubSubtask{
		ID:          uuid.New().String(),
		Title:       st.Title,
		IsCompleted: st.IsCompleted,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   now,
	}

	task.Subtasks = slices.Delete(task.Subtasks, ref.idx, ref.idx+1)
	prev := &task.Subtasks[ref.idx-1]
	prev.SubSubtasks = append(prev.SubSubtasks, ss)
	recomputeSubtask(prev, now)
	recomputeTask(task, now)

	p.persistLocked()
	return ss.ID, true
}

// OutdentSubSubtask promotes a sub-subtask to a subtask placed right after
// its parent subtask under the same task.
func (p *Planner) OutdentSubSubtask(id string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ref, ok := p.findSubSubtask(id)
	if !ok {
		return "", false
	}

	now := time.Now().UTC()
	ss := *ref.subSub()
	task := ref.task()

	parent := ref.subtask()
	parent.SubSubtasks = slices.Delete(parent.SubSubtasks, ref.idx, ref.idx+1)
	recomputeSubtask(parent, now)

	st := model.Subtask{
		ID:          uuid.New().String(),
		Title:       ss.Title,
		IsCompleted: ss.IsCompleted,
		CreatedAt:   ss.CreatedAt,
		UpdatedAt:   now,
	}
	task.Subtasks = slices.Insert(task.Subtasks, ref.subIdx+1, st)
	recomputeTask(task, now)

	p.persistLocked()
	return st.ID, true
}

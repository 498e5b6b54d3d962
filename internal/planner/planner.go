package planner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nhle/dayplan/internal/logger"
	"github.com/nhle/dayplan/internal/model"
	"github.com/nhle/dayplan/internal/store"
)

// Sink receives the planner's state after every mutating call. Failures are
// logged by the planner and never surfaced to the caller of the task
// operation that triggered the save.
type Sink interface {
	SaveDayLists(ctx context.Context, lists []model.DayList) error
	SetDefaultDueTime(ctx context.Context, t model.TimeOfDay) error
}

// Planner owns the per-day task lists, the selected day and the default due
// time for one session. All access is serialized through a single lock;
// read-only queries share it.
type Planner struct {
	mu         sync.RWMutex
	days       []*model.DayList
	selected   time.Time
	defaultDue model.TimeOfDay
	loc        *time.Location
	sink       Sink
	log        *logger.Logger
}

// New creates an empty planner. loc pins the calendar policy used to bucket
// lists by day; a nil loc means the host's local zone. sink may be nil for a
// planner without persistence.
func New(sink Sink, loc *time.Location, defaultDue model.TimeOfDay, log *logger.Logger) *Planner {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.NewNop()
	}
	p := &Planner{
		sink:       sink,
		loc:        loc,
		defaultDue: defaultDue,
		log:        log.WithComponent("planner"),
	}
	p.selected = p.dayKey(time.Now())
	return p
}

// Open creates a planner backed by st and loads the prior snapshot from it.
// Missing or unreadable data starts the planner empty; startup never fails
// on a bad snapshot.
func Open(ctx context.Context, st store.Store, loc *time.Location, seed model.TimeOfDay, log *logger.Logger) *Planner {
	p := New(st, loc, seed, log)

	lists, err := st.LoadDayLists(ctx)
	if err != nil {
		p.log.Warnw("loading snapshot failed, starting empty", "error", err)
		lists = nil
	}
	p.Restore(lists)

	due, err := st.GetDefaultDueTime(ctx)
	if err != nil {
		p.log.Warnw("loading default due time failed", "error", err)
	} else if due != nil {
		p.mu.Lock()
		p.defaultDue = *due
		p.mu.Unlock()
	}

	return p
}

// Restore replaces the in-memory state with the given day lists. Dates are
// re-normalized to the planner's calendar policy; a duplicated day keeps the
// first list seen.
func (p *Planner) Restore(lists []model.DayList) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.days = nil
	for _, list := range lists {
		day := p.dayKey(list.Date)
		if p.listFor(day) != nil {
			continue
		}
		clone := list.Clone()
		clone.Date = day
		p.days = append(p.days, &clone)
	}
}

// SelectDate changes the selected day, lazily creating its list.
func (p *Planner) SelectDate(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.selected = p.dayKey(t)
	if _, created := p.ensureList(p.selected); created {
		p.persistLocked()
	}
}

// SelectedDate returns the currently selected day key.
func (p *Planner) SelectedDate() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selected
}

// CurrentDayList returns a copy of the selected day's list. A day with no
// list yet reads as an empty list.
func (p *Planner) CurrentDayList() model.DayList {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if list := p.listFor(p.selected); list != nil {
		return list.Clone()
	}
	return model.DayList{Date: p.selected}
}

// DayLists returns copies of every day's list, ordered by date.
func (p *Planner) DayLists() []model.DayList {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

// TasksDueOn returns copies of every task, from any day's list, whose due
// date falls on the same calendar day as t.
func (p *Planner) TasksDueOn(t time.Time) []model.Task {
	p.mu.RLock()
	defer p.mu.RUnlock()

	day := p.dayKey(t)
	var out []model.Task
	for _, list := range p.days {
		for _, task := range list.Tasks {
			if task.DueDate != nil && p.dayKey(*task.DueDate).Equal(day) {
				out = append(out, task.Clone())
			}
		}
	}
	return out
}

// DefaultDueTime returns the session's default due time of day.
func (p *Planner) DefaultDueTime() model.TimeOfDay {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.defaultDue
}

// SetDefaultDueTime stores the default due time verbatim.
func (p *Planner) SetDefaultDueTime(t model.TimeOfDay) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.defaultDue = t
	if p.sink == nil {
		return
	}
	if err := p.sink.SetDefaultDueTime(context.Background(), t); err != nil {
		p.log.Warnw("saving default due time failed", "error", err)
	}
}

// dayKey truncates t to midnight in the planner's location.
func (p *Planner) dayKey(t time.Time) time.Time {
	tl := t.In(p.loc)
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, p.loc)
}

// listFor returns the list for the given day key, or nil.
func (p *Planner) listFor(day time.Time) *model.DayList {
	for _, list := range p.days {
		if list.Date.Equal(day) {
			return list
		}
	}
	return nil
}

// ensureList returns the list for the given day key, creating it on first
// use. The second result reports whether a list was created.
func (p *Planner) ensureList(day time.Time) (*model.DayList, bool) {
	if list := p.listFor(day); list != nil {
		return list, false
	}
	list := &model.DayList{Date: day}
	p.days = append(p.days, list)
	return list, true
}

// snapshotLocked builds a deep copy of every day list, ordered by date.
func (p *Planner) snapshotLocked() []model.DayList {
	out := make([]model.DayList, len(p.days))
	for i, list := range p.days {
		out[i] = list.Clone()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// persistLocked hands the current snapshot to the sink. Persistence is
// write-through after every mutation; a failed save is logged and the
// in-memory state stays authoritative.
func (p *Planner) persistLocked() {
	if p.sink == nil {
		return
	}
	if err := p.sink.SaveDayLists(context.Background(), p.snapshotLocked()); err != nil {
		p.log.Warnw("saving snapshot failed", "error", err)
	}
}

// taskRef locates a task inside a day list.
type taskRef struct {
	list *model.DayList
	idx  int
}

func (r taskRef) task() *model.Task { return &r.list.Tasks[r.idx] }

// subtaskRef locates a subtask inside its task.
type subtaskRef struct {
	list    *model.DayList
	taskIdx int
	idx     int
}

func (r subtaskRef) task() *model.Task { return &r.list.Tasks[r.taskIdx] }

func (r subtaskRef) subtask() *model.Subtask { return &r.task().Subtasks[r.idx] }

// subSubRef locates a sub-subtask inside its subtask.
type subSubRef struct {
	list    *model.DayList
	taskIdx int
	subIdx  int
	idx     int
}

func (r subSubRef) task() *model.Task { return &r.list.Tasks[r.taskIdx] }

func (r subSubRef) subtask() *model.Subtask { return &r.task().Subtasks[r.subIdx] }

func (r subSubRef) subSub() *model.SubSubtask { return &r.subtask().SubSubtasks[r.idx] }

// findTask scans every day list for a task id.
func (p *Planner) findTask(id string) (taskRef, bool) {
	for _, list := range p.days {
		for i := range list.Tasks {
			if list.Tasks[i].ID == id {
				return taskRef{list: list, idx: i}, true
			}
		}
	}
	return taskRef{}, false
}

// findSubtask scans every day list for a subtask id.
func (p *Planner) findSubtask(id string) (subtaskRef, bool) {
	for _, list := range p.days {
		for ti := range list.Tasks {
			for si := range list.Tasks[ti].Subtasks {
				if list.Tasks[ti].Subtasks[si].ID == id {
					return subtaskRef{list: list, taskIdx: ti, idx: si}, true
				}
			}
		}
	}
	return subtaskRef{}, false
}

// findSubSubtask scans every day list for a sub-subtask id.
func (p *Planner) findSubSubtask(id string) (subSubRef, bool) {
	for _, list := range p.days {
		for ti := range list.Tasks {
			for si := range list.Tasks[ti].Subtasks {
				ssList := list.Tasks[ti].Subtasks[si].SubSubtasks
				for k := range ssList {
					if ssList[k].ID == id {
						return subSubRef{list: list, taskIdx: ti, subIdx: si, idx: k}, true
					}
				}
			}
		}
	}
	return subSubRef{}, false
}

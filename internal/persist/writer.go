// Package persist provides a write-behind snapshot sink that batches
// bursts of saves into single database writes. In-memory planner state
// stays immediately consistent; only the durable copy lags.
package persist

import (
	"context"
	"sync"

	"github.com/nhle/dayplan/internal/logger"
	"github.com/nhle/dayplan/internal/model"
	"github.com/nhle/dayplan/internal/store"
)

// Writer serializes snapshot writes through a single background goroutine.
// Consecutive saves coalesce: only the latest pending snapshot reaches the
// store. Default due time updates pass through synchronously.
type Writer struct {
	st  store.Store
	log *logger.Logger

	mu      sync.Mutex
	pending []model.DayList
	dirty   bool

	triggerCh chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewWriter creates a Writer backed by st. Call Start before handing it to
// a planner, and Close to flush and stop.
func NewWriter(st store.Store, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Writer{
		st:        st,
		log:       log.WithComponent("persist"),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start launches the background write loop.
func (w *Writer) Start() {
	w.startOnce.Do(func() {
		go w.loop()
	})
}

// SaveDayLists records the snapshot as the pending write and wakes the
// write loop. It never blocks on the database.
func (w *Writer) SaveDayLists(ctx context.Context, lists []model.DayList) error {
	w.mu.Lock()
	w.pending = lists
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.triggerCh <- struct{}{}:
	default:
	}
	return nil
}

// SetDefaultDueTime writes through to the store immediately. The value
// changes rarely and is not worth coalescing.
func (w *Writer) SetDefaultDueTime(ctx context.Context, t model.TimeOfDay) error {
	return w.st.SetDefaultDueTime(ctx, t)
}

// Close flushes any pending snapshot and stops the write loop.
func (w *Writer) Close() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh
	return nil
}

func (w *Writer) loop() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.triggerCh:
			w.flush()
		case <-w.stopCh:
			w.flush()
			return
		}
	}
}

// flush writes the pending snapshot, if any, to the store.
func (w *Writer) flush() {
	w.mu.Lock()
	lists, dirty := w.pending, w.dirty
	w.pending, w.dirty = nil, false
	w.mu.Unlock()

	if !dirty {
		return
	}
	if err := w.st.SaveDayLists(context.Background(), lists); err != nil {
		w.log.Warnw("writing snapshot failed", "error", err)
	}
}

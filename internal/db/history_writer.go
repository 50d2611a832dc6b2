package db

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/encounters/internal/encounter"
)

const flushTimeout = 5 * time.Second

// OutcomeStore persists one outcome.
type OutcomeStore interface {
	Insert(ctx context.Context, o encounter.Outcome) error
}

// HistoryWriter пишет исходы событий в фоне, чтобы цикл движка не ждал БД.
// Переполненная очередь отбрасывает запись с предупреждением.
type HistoryWriter struct {
	store   OutcomeStore
	queue   chan encounter.Outcome
	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// NewHistoryWriter creates a writer with a queue of the given size.
func NewHistoryWriter(store OutcomeStore, size int) *HistoryWriter {
	if size <= 0 {
		size = 1
	}
	return &HistoryWriter{
		store: store,
		queue: make(chan encounter.Outcome, size),
	}
}

// Record queues an outcome without blocking. Outcomes recorded after Close are dropped.
func (w *HistoryWriter) Record(o encounter.Outcome) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.dropped.Add(1)
		slog.Warn("history writer closed, outcome dropped", "instance", o.InstanceID, "name", o.Name)
		return
	}
	select {
	case w.queue <- o:
	default:
		w.dropped.Add(1)
		slog.Warn("history queue full, outcome dropped", "instance", o.InstanceID, "name", o.Name)
	}
}

// Dropped returns how many outcomes were discarded.
func (w *HistoryWriter) Dropped() int64 {
	return w.dropped.Load()
}

// Close stops accepting outcomes. Run writes what is queued and returns.
// Call it once the engine has recorded its last outcome.
func (w *HistoryWriter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
}

// Run writes queued outcomes until Close drains the queue.
// Canceling ctx is a hard stop: what is queued at that moment is flushed
// with a short timeout, later records are lost.
func (w *HistoryWriter) Run(ctx context.Context) error {
	for {
		select {
		case o, ok := <-w.queue:
			if !ok {
				return nil
			}
			w.write(ctx, o)
		case <-ctx.Done():
			w.flush()
			return nil
		}
	}
}

func (w *HistoryWriter) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case o, ok := <-w.queue:
			if !ok {
				return
			}
			w.write(ctx, o)
		default:
			return
		}
	}
}

func (w *HistoryWriter) write(ctx context.Context, o encounter.Outcome) {
	if err := w.store.Insert(ctx, o); err != nil {
		slog.Error("saving outcome", "instance", o.InstanceID, "name", o.Name, "error", err)
	}
}

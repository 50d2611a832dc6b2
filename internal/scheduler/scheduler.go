// Package scheduler implements a frame-driven delayed task queue.
//
// Tasks are (delay, continuation) pairs bound to a cancellation Token.
// The owner advances the clock once per frame; every task that became due
// runs in (due time, scheduling order). Work scheduled from inside a task
// never runs in the same Advance, so a zero delay means "next frame".
//
// Scheduler is not safe for concurrent use: it lives on the engine goroutine.
package scheduler

import (
	"container/heap"
	"time"
)

// Token cancels every task scheduled under it.
type Token struct {
	canceled bool
}

// NewToken creates a live token.
func NewToken() *Token {
	return &Token{}
}

// Cancel drops all pending tasks bound to t. Idempotent.
func (t *Token) Cancel() {
	t.canceled = true
}

// Canceled reports whether Cancel was called.
func (t *Token) Canceled() bool {
	return t.canceled
}

type task struct {
	due time.Duration
	seq uint64
	tok *Token
	fn  func()
}

// taskHeap orders by due time, then by scheduling order.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler is a monotonic-clock delayed task queue.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks taskHeap
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock (sum of all Advance deltas).
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run d after the current clock, unless tok is canceled first.
// A nil token means the task cannot be canceled.
func (s *Scheduler) After(d time.Duration, tok *Token, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.tasks, &task{due: s.now + d, seq: s.seq, tok: tok, fn: fn})
}

// NextFrame schedules fn for the next Advance.
func (s *Scheduler) NextFrame(tok *Token, fn func()) {
	s.After(0, tok, fn)
}

// Advance moves the clock forward by dt and runs every task that is due.
// Returns the number of tasks executed.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	var due []*task
	for s.tasks.Len() > 0 && s.tasks[0].due <= s.now {
		due = append(due, heap.Pop(&s.tasks).(*task))
	}

	ran := 0
	for _, t := range due {
		if t.tok != nil && t.tok.canceled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Len returns the number of pending tasks, canceled ones included
// until their due time passes.
func (s *Scheduler) Len() int {
	return s.tasks.Len()
}

// Purge drops tasks whose token is canceled.
func (s *Scheduler) Purge() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.tok == nil || !t.tok.canceled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
	heap.Init(&s.tasks)
}

package encounter

import (
	"context"
	"log/slog"
	"time"
)

// Loop owns an Engine and serializes all access to it on one goroutine.
type Loop struct {
	engine *Engine
	frame  time.Duration
	submit chan func(*Engine)
	done   chan struct{}
}

// NewLoop creates a loop ticking e every frame.
func NewLoop(e *Engine, frame time.Duration) *Loop {
	if frame <= 0 {
		frame = 50 * time.Millisecond
	}
	return &Loop{
		engine: e,
		frame:  frame,
		submit: make(chan func(*Engine), 256),
		done:   make(chan struct{}),
	}
}

// Run drives the engine until ctx is canceled, then shuts every encounter down.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()
	defer close(l.done)

	slog.Info("encounter loop started", "frame", l.frame)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.drain()
			l.engine.ShutdownAll()
			slog.Info("encounter loop stopping")
			return ctx.Err()

		case fn := <-l.submit:
			fn(l.engine)

		case now := <-ticker.C:
			l.engine.Tick(now.Sub(last))
			last = now
		}
	}
}

// drain runs submissions that were queued before shutdown.
func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.submit:
			fn(l.engine)
		default:
			return
		}
	}
}

// Submit queues fn to run on the loop goroutine. Returns false once the loop stopped.
func (l *Loop) Submit(fn func(*Engine)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.submit <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop goroutine and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func(*Engine) error) error {
	result := make(chan error, 1)
	if !l.Submit(func(e *Engine) { result <- fn(e) }) {
		return ErrLoopStopped
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		select {
		case err := <-result:
			return err
		default:
			return ErrLoopStopped
		}
	}
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

type client struct {
	id   uuid.UUID
	send chan Notice
}

// Hub streams notices to websocket observers. Slow observers are dropped.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client

	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		done:    make(chan struct{}),
	}
}

// Close disconnects every observer.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Send queues a notice for every observer without blocking.
func (h *Hub) Send(n Notice) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- n:
		default:
			slog.Warn("observer too slow, notice dropped", "client", c.id)
		}
	}
}

// Len returns the number of connected observers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register() *client {
	c := &client{id: uuid.New(), send: make(chan Notice, clientBuffer)}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and streams notices until the peer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept observer", "err", err)
		return
	}
	defer conn.CloseNow()

	c := h.register()
	defer h.unregister(c)
	slog.DebugContext(ctx, "observer connected", "client", c.id)

	// Входящие сообщения не ожидаются; CloseRead обрабатывает control frames.
	ctx = conn.CloseRead(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "observer disconnected", "client", c.id)
			return
		case <-h.done:
			conn.Close(websocket.StatusGoingAway, "shutting down")
			return
		case n := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, n)
			cancel()
			if err != nil {
				slog.DebugContext(ctx, "observer write failed", "client", c.id, "err", err)
				return
			}
		}
	}
}

// Run serves the hub on addr until ctx is canceled.
func (h *Hub) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return h.serve(ctx, ln, mux)
}

func (h *Hub) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.Info("notification hub started", "addr", ln.Addr().String())

	select {
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("notification hub shutdown", "error", err)
		}
		slog.Info("notification hub stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving notifications: %w", err)
	}
}

package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/testutil"
)

type memStore struct {
	mu    sync.Mutex
	saved []encounter.Outcome
	fail  bool
}

func (s *memStore) Insert(_ context.Context, o encounter.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return testutil.ErrSimulated
	}
	s.saved = append(s.saved, o)
	return nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func TestHistoryWriter_DrainsQueue(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	w := NewHistoryWriter(store, 8)

	ctx, cancel := testutil.ContextWithCancel(t)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for range 3 {
		w.Record(encounter.Outcome{InstanceID: uuid.New(), Name: "Easy"})
	}
	require.Eventually(t, func() bool { return store.len() == 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestHistoryWriter_DropsWhenFull(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	w := NewHistoryWriter(store, 2)

	for range 5 {
		w.Record(encounter.Outcome{InstanceID: uuid.New()})
	}
	assert.Equal(t, int64(3), w.Dropped())

	// Run с уже отменённым контекстом только сбрасывает очередь.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.Equal(t, 2, store.len())
}

func TestHistoryWriter_StoreErrorDoesNotStop(t *testing.T) {
	t.Parallel()

	store := &memStore{fail: true}
	w := NewHistoryWriter(store, 4)
	w.Record(encounter.Outcome{InstanceID: uuid.New()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.Equal(t, 0, store.len())
}

func TestHistoryWriter_CloseWritesLateOutcomes(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	w := NewHistoryWriter(store, 8)

	// Родительский контекст уже отменён: исходы, записанные при остановке
	// движка, всё равно должны дойти до хранилища.
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(context.WithoutCancel(parent)) }()

	for range 3 {
		w.Record(encounter.Outcome{InstanceID: uuid.New(), Result: encounter.ResultAborted})
	}
	w.Close()
	w.Close()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, 3, store.len())

	w.Record(encounter.Outcome{InstanceID: uuid.New()})
	assert.Equal(t, int64(1), w.Dropped(), "closed writer drops new outcomes")
}

func TestHistoryWriter_FlushAfterClose(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	w := NewHistoryWriter(store, 4)
	w.Record(encounter.Outcome{InstanceID: uuid.New()})
	w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.Equal(t, 1, store.len())
}

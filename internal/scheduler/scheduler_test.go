package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	t.Parallel()

	s := New()
	var got []string

	s.After(3*time.Second, nil, func() { got = append(got, "c") })
	s.After(1*time.Second, nil, func() { got = append(got, "a") })
	s.After(1*time.Second, nil, func() { got = append(got, "b") })

	assert.Equal(t, 0, s.Advance(500*time.Millisecond))
	assert.Empty(t, got)

	assert.Equal(t, 2, s.Advance(time.Second))
	assert.Equal(t, []string{"a", "b"}, got)

	assert.Equal(t, 1, s.Advance(5*time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_NextFrameNeverRunsInSameAdvance(t *testing.T) {
	t.Parallel()

	s := New()
	frames := 0

	var step func()
	step = func() {
		frames++
		if frames < 3 {
			s.NextFrame(nil, step)
		}
	}
	s.NextFrame(nil, step)

	s.Advance(0)
	assert.Equal(t, 1, frames)
	s.Advance(0)
	assert.Equal(t, 2, frames)
	s.Advance(0)
	assert.Equal(t, 3, frames)
	s.Advance(0)
	assert.Equal(t, 3, frames)
}

func TestScheduler_CanceledTokenDropsTasks(t *testing.T) {
	t.Parallel()

	s := New()
	tok := NewToken()
	other := NewToken()
	ran := map[string]bool{}

	s.After(time.Second, tok, func() { ran["canceled"] = true })
	s.After(time.Second, other, func() { ran["live"] = true })

	tok.Cancel()
	tok.Cancel()
	require.True(t, tok.Canceled())

	s.Advance(2 * time.Second)
	assert.False(t, ran["canceled"])
	assert.True(t, ran["live"])
}

func TestScheduler_CancelFromInsideTask(t *testing.T) {
	t.Parallel()

	s := New()
	tok := NewToken()
	second := false

	s.After(time.Second, nil, func() { tok.Cancel() })
	s.After(time.Second, tok, func() { second = true })

	s.Advance(time.Second)
	assert.False(t, second, "task canceled earlier in the same frame must not run")
}

func TestScheduler_Purge(t *testing.T) {
	t.Parallel()

	s := New()
	tok := NewToken()
	for range 5 {
		s.After(time.Minute, tok, func() {})
	}
	s.After(time.Minute, nil, func() {})
	require.Equal(t, 6, s.Len())

	tok.Cancel()
	s.Purge()
	assert.Equal(t, 1, s.Len())
}

func TestScheduler_NegativeDelayIsNextFrame(t *testing.T) {
	t.Parallel()

	s := New()
	ran := false
	s.After(-time.Second, nil, func() { ran = true })
	s.Advance(0)
	assert.True(t, ran)
	assert.Equal(t, time.Duration(0), s.Now())
}

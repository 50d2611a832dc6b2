package npc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

type fakeHost struct {
	next  model.EntityID
	alive map[model.EntityID]bool
	fail  bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{alive: make(map[model.EntityID]bool)}
}

func (h *fakeHost) SpawnNpc(model.Location, string, float64) (model.EntityID, error) {
	if h.fail {
		return 0, errors.New("outside map")
	}
	h.next++
	h.alive[h.next] = true
	return h.next, nil
}

func (h *fakeHost) Alive(id model.EntityID) bool { return h.alive[id] }

func guard() config.GuardProfile {
	return config.GuardProfile{Name: "Guard", Health: 100, Kits: []string{"guard-kit"}}
}

func TestService_SpawnGuard(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	s := NewService(config.NpcConfig{Enabled: true}, host)
	require.True(t, s.Ready())

	id, ok := s.SpawnGuard(model.NewLocation(1, 0, 1), guard())
	require.True(t, ok)
	assert.Equal(t, 1, s.Count())

	p, ok := s.Profile(id)
	require.True(t, ok)
	assert.Equal(t, "Guard", p.Name)

	host.fail = true
	_, ok = s.SpawnGuard(model.NewLocation(1, 0, 1), guard())
	assert.False(t, ok)
	assert.Equal(t, 1, s.Count())
}

func TestService_Availability(t *testing.T) {
	t.Parallel()

	s := NewService(config.NpcConfig{Enabled: false}, newFakeHost())
	assert.False(t, s.Ready())
	_, ok := s.SpawnGuard(model.Location{}, guard())
	assert.False(t, ok)

	s.SetReady(true)
	_, ok = s.SpawnGuard(model.Location{}, guard())
	assert.True(t, ok)
}

func TestService_GuardCapPrunesDead(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	s := NewService(config.NpcConfig{Enabled: true, MaxGuards: 2}, host)

	a, ok := s.SpawnGuard(model.Location{}, guard())
	require.True(t, ok)
	_, ok = s.SpawnGuard(model.Location{}, guard())
	require.True(t, ok)

	_, ok = s.SpawnGuard(model.Location{}, guard())
	assert.False(t, ok, "cap reached")

	host.alive[a] = false
	_, ok = s.SpawnGuard(model.Location{}, guard())
	assert.True(t, ok, "dead guard frees a slot")
	assert.Len(t, s.Guards(), 2)
}

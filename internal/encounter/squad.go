package encounter

import (
	"maps"
	"slices"

	"github.com/udisondev/encounters/internal/model"
)

// Squad is the live set of guard ids owned by one instance.
// Once dispatched it is never refilled.
type Squad struct {
	alive      map[model.EntityID]struct{}
	spawned    int
	dispatched bool
}

// NewSquad creates an empty squad.
func NewSquad() *Squad {
	return &Squad{alive: make(map[model.EntityID]struct{}, 16)}
}

// Add records a freshly spawned guard.
func (s *Squad) Add(id model.EntityID) {
	if s.dispatched {
		return
	}
	if _, ok := s.alive[id]; ok {
		return
	}
	s.alive[id] = struct{}{}
	s.spawned++
}

// Remove drops a guard. Unknown ids are a no-op and return false.
func (s *Squad) Remove(id model.EntityID) bool {
	if _, ok := s.alive[id]; !ok {
		return false
	}
	delete(s.alive, id)
	return true
}

// Has reports whether id is a live guard of this squad.
func (s *Squad) Has(id model.EntityID) bool {
	_, ok := s.alive[id]
	return ok
}

// Len returns the number of live guards.
func (s *Squad) Len() int { return len(s.alive) }

// Empty reports whether no guard is alive.
func (s *Squad) Empty() bool { return len(s.alive) == 0 }

// Spawned returns how many guards were ever added.
func (s *Squad) Spawned() int { return s.spawned }

// Killed returns how many guards were removed.
func (s *Squad) Killed() int { return s.spawned - len(s.alive) }

// Dispatched reports whether the guard stage finished.
func (s *Squad) Dispatched() bool { return s.dispatched }

func (s *Squad) markDispatched() { s.dispatched = true }

// IDs returns the live guard ids in ascending order.
func (s *Squad) IDs() []model.EntityID {
	return slices.Sorted(maps.Keys(s.alive))
}

func (s *Squad) clear() {
	clear(s.alive)
}

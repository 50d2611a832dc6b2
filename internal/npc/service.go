// Package npc spawns encounter guards into the host world.
package npc

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

// Host places NPC bodies into the world.
type Host interface {
	SpawnNpc(pos model.Location, profile string, health float64) (model.EntityID, error)
	Alive(id model.EntityID) bool
}

// Guard is a spawned guard with the profile it was dressed in.
type Guard struct {
	ID      model.EntityID
	Profile config.GuardProfile
}

// Service implements the guard spawner. It can be switched off at runtime,
// which the engine observes through Ready.
type Service struct {
	host      Host
	maxGuards int

	ready  atomic.Bool
	guards sync.Map // map[model.EntityID]config.GuardProfile

	spawnCount atomic.Int32 // cached count of tracked guards
}

// NewService creates a guard spawner.
func NewService(cfg config.NpcConfig, host Host) *Service {
	s := &Service{host: host, maxGuards: cfg.MaxGuards}
	s.ready.Store(cfg.Enabled)
	return s
}

// Ready reports whether guards can be spawned.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// SetReady toggles the service availability.
func (s *Service) SetReady(ready bool) {
	if s.ready.Swap(ready) != ready {
		slog.Info("npc spawn service availability changed", "ready", ready)
	}
}

// SpawnGuard places one guard. ok is false when the world refused it or the
// guard cap is reached.
func (s *Service) SpawnGuard(pos model.Location, profile config.GuardProfile) (model.EntityID, bool) {
	if !s.Ready() {
		return 0, false
	}
	if s.maxGuards > 0 && int(s.spawnCount.Load()) >= s.maxGuards {
		s.prune()
		if int(s.spawnCount.Load()) >= s.maxGuards {
			slog.Warn("guard cap reached", "max", s.maxGuards)
			return 0, false
		}
	}

	id, err := s.host.SpawnNpc(pos, profile.Name, profile.Health)
	if err != nil {
		slog.Warn("spawn guard", "profile", profile.Name, "error", err)
		return 0, false
	}

	s.guards.Store(id, profile.Clone())
	s.spawnCount.Add(1)
	return id, true
}

// Profile returns the profile a guard was spawned with.
func (s *Service) Profile(id model.EntityID) (config.GuardProfile, bool) {
	v, ok := s.guards.Load(id)
	if !ok {
		return config.GuardProfile{}, false
	}
	return v.(config.GuardProfile), true
}

// Guards returns all tracked guards that are still alive.
func (s *Service) Guards() []Guard {
	s.prune()
	var out []Guard
	s.guards.Range(func(key, value any) bool {
		out = append(out, Guard{ID: key.(model.EntityID), Profile: value.(config.GuardProfile)})
		return true
	})
	return out
}

// Count returns the number of tracked guards.
func (s *Service) Count() int {
	return int(s.spawnCount.Load())
}

// prune forgets guards that are no longer in the world.
func (s *Service) prune() {
	s.guards.Range(func(key, _ any) bool {
		id := key.(model.EntityID)
		if !s.host.Alive(id) {
			if _, loaded := s.guards.LoadAndDelete(id); loaded {
				s.spawnCount.Add(-1)
			}
		}
		return true
	})
}

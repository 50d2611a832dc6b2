package world

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/encounters/internal/model"
)

const (
	planeAltitude     = 250.0
	planeLinger       = 0
	transportLinger   = 60 * time.Second
	transportSpeed    = 40.0 // units per second
	smokeLifetime     = 5 * time.Minute
	crateFallBase     = 12.0 // units per second without drag
	defaultFlightTime = 30 * time.Second
)

// Методы ниже реализуют encounter.Entities. Ошибки размещения логируются,
// наружу уходит нулевой id: движок трактует его как «нет объекта».

// SpawnMarker places a map marker.
func (w *World) SpawnMarker(pos model.Location, radius float64, color, label string) model.EntityID {
	id, err := w.spawn(w.ids.NextDynamic(), model.KindMarker, "marker", pos, &MarkerState{
		Radius: radius,
		Color:  color,
		Label:  label,
	})
	if err != nil {
		slog.Warn("spawn marker", "error", err)
	}
	return id
}

// UpdateMarker changes the marker label.
func (w *World) UpdateMarker(id model.EntityID, label string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if obj, ok := w.objects[id]; ok {
		if st, ok := obj.Data.(*MarkerState); ok {
			st.Label = label
		}
	}
}

// SpawnCrate drops a hackable crate that falls to the ground.
func (w *World) SpawnCrate(pos model.Location, hackSeconds, fallDrag float64) model.EntityID {
	id, err := w.spawn(w.ids.NextDynamic(), model.KindCrate, "codelockedhackablecrate", pos, &model.CrateState{
		Locked:      true,
		HackSeconds: hackSeconds,
	})
	if err != nil {
		slog.Warn("spawn crate", "error", err)
		return 0
	}
	w.mu.Lock()
	w.falls[id] = &fall{speed: crateFallBase / (1 + max(fallDrag, 0))}
	w.mu.Unlock()
	return id
}

// FillLoot replaces the crate contents.
func (w *World) FillLoot(crate model.EntityID, items []model.ItemStack) {
	w.withCrate(crate, func(st *model.CrateState) {
		st.Loot = slices.Clone(items)
	})
}

// StartHacking starts the crate hack timer.
func (w *World) StartHacking(crate model.EntityID) {
	w.withCrate(crate, func(st *model.CrateState) {
		if st.Locked {
			st.Hacking = true
		}
	})
}

// SetDecay toggles crate decay.
func (w *World) SetDecay(crate model.EntityID, decay bool) {
	w.withCrate(crate, func(st *model.CrateState) {
		st.Decay = decay
	})
}

// SpawnCargoPlane flies a plane over target. It expires after flight time.
func (w *World) SpawnCargoPlane(target model.Location, flightTime time.Duration) model.EntityID {
	if flightTime <= 0 {
		flightTime = defaultFlightTime
	}
	half := w.grid.mapSize / 2
	from := model.NewLocation(-half, planeAltitude, target.Z)
	to := model.NewLocation(half, planeAltitude, target.Z)
	return w.spawnFlight(model.KindCargoPlane, "cargo_plane", from, to, flightTime, planeLinger)
}

// SpawnTransport flies a transport from `from` to the landing point.
func (w *World) SpawnTransport(from, landing model.Location) model.EntityID {
	d := time.Duration(from.Sub(landing).Length() / transportSpeed * float64(time.Second))
	return w.spawnFlight(model.KindTransport, "ch47", from, landing, d, transportLinger)
}

func (w *World) spawnFlight(kind model.Kind, name string, from, to model.Location, total, linger time.Duration) model.EntityID {
	if !w.grid.InsideMap(from.X, from.Z) {
		from.X = min(max(from.X, -w.grid.mapSize/2), w.grid.mapSize/2)
		from.Z = min(max(from.Z, -w.grid.mapSize/2), w.grid.mapSize/2)
	}
	id, err := w.spawn(w.ids.NextDynamic(), kind, name, from, nil)
	if err != nil {
		slog.Warn("spawn vehicle", "kind", kind, "error", err)
		return 0
	}
	w.mu.Lock()
	w.flights[id] = &flight{from: from, to: to, total: total, linger: linger}
	w.mu.Unlock()
	return id
}

// DropSmoke places a smoke signal.
func (w *World) DropSmoke(pos model.Location) model.EntityID {
	id, err := w.spawn(w.ids.NextDynamic(), model.KindSmoke, "smoke_signal", pos, nil)
	if err != nil {
		slog.Warn("drop smoke", "error", err)
		return 0
	}
	w.mu.Lock()
	w.timers[id] = smokeLifetime
	w.mu.Unlock()
	return id
}

// UnlockCratesNear unlocks locked crates within radius and returns how many.
func (w *World) UnlockCratesNear(pos model.Location, radius float64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	w.forEachNear(pos, radius, func(obj *model.WorldObject) {
		if st, ok := obj.Data.(*model.CrateState); ok && st.Locked {
			st.Locked = false
			st.Hacking = false
			n++
		}
	})
	return n
}

// ExtinguishNear removes fires within radius and returns how many.
func (w *World) ExtinguishNear(pos model.Location, radius float64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	var fires []model.EntityID
	w.forEachNear(pos, radius, func(obj *model.WorldObject) {
		if obj.Kind() == model.KindFire {
			fires = append(fires, obj.ID())
		}
	})
	for _, id := range fires {
		w.remove(id)
	}
	return len(fires)
}

// Alive reports whether the entity exists.
func (w *World) Alive(id model.EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.objects[id]
	return ok
}

// Kill despawns an entity without notifying death hooks.
func (w *World) Kill(id model.EntityID) {
	w.mu.Lock()
	w.remove(id)
	w.mu.Unlock()
}

func (w *World) withCrate(id model.EntityID, fn func(*model.CrateState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if obj, ok := w.objects[id]; ok {
		if st, ok := obj.Data.(*model.CrateState); ok {
			fn(st)
		}
	}
}

// Crates

// Crate returns a copy of the crate state.
func (w *World) Crate(id model.EntityID) (model.CrateState, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[id]
	if !ok {
		return model.CrateState{}, false
	}
	st, ok := obj.Data.(*model.CrateState)
	if !ok {
		return model.CrateState{}, false
	}
	cp := *st
	cp.Loot = slices.Clone(st.Loot)
	return cp, true
}

// LockCrate restricts a crate to one player.
func (w *World) LockCrate(id model.EntityID, ownerID uint64) bool {
	locked := false
	w.withCrate(id, func(st *model.CrateState) {
		st.OwnerID = ownerID
		locked = true
	})
	return locked
}

// Hack starts hacking a crate on behalf of a player.
func (w *World) Hack(id model.EntityID, player *model.Player) error {
	if err := w.checkAccess(id, player); err != nil {
		return err
	}
	w.StartHacking(id)
	return nil
}

// Loot empties a crate into the player's hands.
func (w *World) Loot(id model.EntityID, player *model.Player) ([]model.ItemStack, error) {
	if err := w.checkAccess(id, player); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	obj, ok := w.objects[id]
	if !ok {
		return nil, fmt.Errorf("looting %d: %w", id, ErrObjectNotFound)
	}
	st, ok := obj.Data.(*model.CrateState)
	if !ok {
		return nil, fmt.Errorf("looting %s %d: not a crate", obj.Kind(), id)
	}
	if st.Locked {
		return nil, ErrCrateLocked
	}
	items := st.Loot
	st.Loot = nil
	return items, nil
}

func (w *World) checkAccess(id model.EntityID, player *model.Player) error {
	w.mu.RLock()
	obj, ok := w.objects[id]
	hook := w.hooks.CanAccessObjective
	var owner uint64
	if ok {
		if st, isCrate := obj.Data.(*model.CrateState); isCrate {
			owner = st.OwnerID
		}
	}
	w.mu.RUnlock()

	if !ok {
		return fmt.Errorf("crate %d: %w", id, ErrObjectNotFound)
	}
	if owner != 0 && (player == nil || player.ID != owner) {
		return ErrNotCrateOwner
	}
	if hook != nil {
		if allowed, reason := hook(id, player); !allowed {
			return fmt.Errorf("%w: %s", ErrObjectiveDenied, reason)
		}
	}
	return nil
}

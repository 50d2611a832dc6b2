package world

import (
	"time"

	"github.com/udisondev/encounters/internal/model"
)

// Step advances the simulation by one frame: vehicles fly, crates fall,
// hack timers run and short-lived entities expire. Expirations are
// reported through OnDeath with a nil killer.
func (w *World) Step() {
	w.Advance(w.frame)
}

// Advance advances the simulation by dt.
func (w *World) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	var expired []model.EntityID

	w.mu.Lock()
	for id, f := range w.flights {
		obj, ok := w.objects[id]
		if !ok {
			delete(w.flights, id)
			continue
		}
		f.elapsed += dt
		if f.elapsed >= f.total+f.linger {
			w.remove(id)
			expired = append(expired, id)
			continue
		}
		t := 1.0
		if f.total > 0 && f.elapsed < f.total {
			t = float64(f.elapsed) / float64(f.total)
		}
		w.move(obj, f.from.Add(f.to.Sub(f.from).Scale(t)))
	}

	for id, fl := range w.falls {
		obj, ok := w.objects[id]
		if !ok {
			delete(w.falls, id)
			continue
		}
		loc := obj.Location()
		ground := w.terrain.Surface(loc.X, loc.Z)
		loc.Y -= fl.speed * dt.Seconds()
		if loc.Y <= ground {
			loc.Y = ground
			delete(w.falls, id)
		}
		obj.SetLocation(loc)
	}

	for _, obj := range w.objects {
		st, ok := obj.Data.(*model.CrateState)
		if !ok || !st.Hacking {
			continue
		}
		st.HackSeconds -= dt.Seconds()
		if st.HackSeconds <= 0 {
			st.HackSeconds = 0
			st.Hacking = false
			st.Locked = false
		}
	}

	for id, left := range w.timers {
		left -= dt
		if left > 0 {
			w.timers[id] = left
			continue
		}
		w.remove(id)
		expired = append(expired, id)
	}
	onDeath := w.hooks.OnDeath
	w.mu.Unlock()

	if onDeath == nil || !w.subscribed.Load() {
		return
	}
	for _, id := range expired {
		onDeath(id, nil)
	}
}

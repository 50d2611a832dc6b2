package world

import (
	"github.com/udisondev/encounters/internal/model"
	"github.com/udisondev/encounters/internal/spawnpoint"
)

// Методы ниже реализуют spawnpoint.Terrain.

// MapSize returns the edge length of the map.
func (w *World) MapSize() float64 { return w.grid.mapSize }

// Surface returns the higher of the water and terrain heights.
func (w *World) Surface(x, z float64) float64 { return w.terrain.Surface(x, z) }

// Probe casts a ray straight down and returns the terrain hit point.
func (w *World) Probe(from model.Location, distance float64) (model.Location, bool) {
	if !w.grid.InsideMap(from.X, from.Z) {
		return model.Location{}, false
	}
	h := w.terrain.Height(from.X, from.Z)
	if from.Y < h || from.Y-distance > h {
		return model.Location{}, false
	}
	return from.WithY(h), true
}

// InsideGeometry reports whether p is below the terrain or inside a monument.
func (w *World) InsideGeometry(p model.Location) bool {
	if p.Y < w.terrain.Height(p.X, p.Z)-0.5 {
		return true
	}
	_, ok := w.MonumentAt(p)
	return ok
}

// Underwater reports whether p is covered by water.
func (w *World) Underwater(p model.Location) bool {
	return w.terrain.WaterDepth(p.X, p.Z) > 0
}

// Topology returns the topology flags at p.
func (w *World) Topology(p model.Location) model.Topology {
	t := w.terrain.Topology(p)
	if _, ok := w.MonumentAt(p.WithY(w.terrain.Height(p.X, p.Z))); ok {
		t |= model.TopologyMonument
	}
	return t
}

// Biome returns the biome at p.
func (w *World) Biome(p model.Location) model.Biome { return w.terrain.Biome(p) }

// MonumentAt returns the monument whose footprint contains p.
func (w *World) MonumentAt(p model.Location) (Monument, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, m := range w.monuments {
		if m.Bounds.Contains(p) {
			return m, true
		}
	}
	return Monument{}, false
}

// CollidersNear returns static geometry, crates and vehicles within radius.
func (w *World) CollidersNear(p model.Location, radius float64) []spawnpoint.Collider {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []spawnpoint.Collider
	w.forEachNear(p, radius, func(obj *model.WorldObject) {
		switch obj.Kind() {
		case model.KindCollider:
			info, _ := obj.Data.(model.ColliderInfo)
			out = append(out, spawnpoint.Collider{Name: obj.Name(), Info: info})
		case model.KindVehicle, model.KindTransport:
			out = append(out, spawnpoint.Collider{Name: obj.Name(), Info: model.ColliderInfo{Layer: model.LayerVehicleLarge}})
		case model.KindFire:
			out = append(out, spawnpoint.Collider{Name: obj.Name(), Info: model.ColliderInfo{Layer: model.LayerTrigger}})
		}
	})
	return out
}

// PlayersNear returns copies of players within radius (2D).
func (w *World) PlayersNear(p model.Location, radius float64) []*model.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	limit := radius * radius
	var out []*model.Player
	for _, pl := range w.players {
		if pl.Location.Distance2DSquared(p) <= limit {
			cp := *pl
			out = append(out, &cp)
		}
	}
	return out
}

// StructuresNear counts player buildings within radius.
func (w *World) StructuresNear(p model.Location, radius float64) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	w.forEachNear(p, radius, func(obj *model.WorldObject) {
		if obj.Kind() == model.KindStructure {
			n++
		}
	})
	return n
}

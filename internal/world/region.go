package world

import (
	"sync"

	"github.com/udisondev/encounters/internal/model"
)

// Region represents a single grid cell (RegionSize×RegionSize world units).
type Region struct {
	rx, rz int32 // region coordinates

	mu      sync.RWMutex
	objects map[model.EntityID]*model.WorldObject
}

// NewRegion creates a new region
func NewRegion(rx, rz int32) *Region {
	return &Region{
		rx:      rx,
		rz:      rz,
		objects: make(map[model.EntityID]*model.WorldObject),
	}
}

// RX returns region X index
func (r *Region) RX() int32 {
	return r.rx
}

// RZ returns region Z index
func (r *Region) RZ() int32 {
	return r.rz
}

// Add adds object to the region.
func (r *Region) Add(obj *model.WorldObject) {
	r.mu.Lock()
	r.objects[obj.ID()] = obj
	r.mu.Unlock()
}

// Remove removes object from the region.
func (r *Region) Remove(id model.EntityID) {
	r.mu.Lock()
	delete(r.objects, id)
	r.mu.Unlock()
}

// Len returns the number of objects in the region.
func (r *Region) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// ForEach iterates over all objects in this region.
// If fn returns false, iteration stops.
// fn must not add or remove objects of this region.
func (r *Region) ForEach(fn func(*model.WorldObject) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, obj := range r.objects {
		if !fn(obj) {
			return
		}
	}
}

package encounter

import (
	"slices"

	"github.com/udisondev/encounters/internal/model"
)

// EntityRegistry maps child entity ids to their owning instance.
// Touched only from the engine goroutine.
type EntityRegistry struct {
	owners map[model.EntityID]*Instance
}

// NewEntityRegistry creates an empty registry.
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{owners: make(map[model.EntityID]*Instance, 64)}
}

// Register binds id to inst. Zero ids are ignored.
func (r *EntityRegistry) Register(id model.EntityID, inst *Instance) {
	if id == 0 {
		return
	}
	r.owners[id] = inst
}

// Unregister drops id.
func (r *EntityRegistry) Unregister(id model.EntityID) {
	delete(r.owners, id)
}

// Find returns the owning instance of id.
func (r *EntityRegistry) Find(id model.EntityID) (*Instance, bool) {
	inst, ok := r.owners[id]
	return inst, ok
}

// Len returns the number of registered entities.
func (r *EntityRegistry) Len() int { return len(r.owners) }

// Clear drops every mapping.
func (r *EntityRegistry) Clear() {
	clear(r.owners)
}

// EventRegistry is the ordered set of active (not Ended) instances.
// onActiveChanged fires on 0→1 and 1→0 transitions.
type EventRegistry struct {
	active          []*Instance
	onActiveChanged func(active bool)
}

// NewEventRegistry creates an empty registry. hook may be nil.
func NewEventRegistry(hook func(active bool)) *EventRegistry {
	return &EventRegistry{onActiveChanged: hook}
}

// Register appends inst. Registering twice is a no-op.
func (r *EventRegistry) Register(inst *Instance) {
	if slices.Contains(r.active, inst) {
		return
	}
	r.active = append(r.active, inst)
	if len(r.active) == 1 && r.onActiveChanged != nil {
		r.onActiveChanged(true)
	}
}

// Unregister removes inst, keeping insertion order of the rest.
func (r *EventRegistry) Unregister(inst *Instance) {
	i := slices.Index(r.active, inst)
	if i < 0 {
		return
	}
	r.active = slices.Delete(r.active, i, i+1)
	if len(r.active) == 0 && r.onActiveChanged != nil {
		r.onActiveChanged(false)
	}
}

// ClosestContaining returns the first instance, in insertion order, whose area contains p.
func (r *EventRegistry) ClosestContaining(p model.Location) (*Instance, bool) {
	for _, inst := range r.active {
		if inst.Contains(p) {
			return inst, true
		}
	}
	return nil, false
}

// HasIntersecting reports whether any instance anchor is closer than radius to p
// on the horizontal plane.
func (r *EventRegistry) HasIntersecting(p model.Location, radius float64) bool {
	r2 := radius * radius
	for _, inst := range r.active {
		if inst.anchor.Distance2DSquared(p) < r2 {
			return true
		}
	}
	return false
}

// Len returns the number of active instances.
func (r *EventRegistry) Len() int { return len(r.active) }

// All returns a snapshot of the active instances in insertion order.
func (r *EventRegistry) All() []*Instance {
	return slices.Clone(r.active)
}

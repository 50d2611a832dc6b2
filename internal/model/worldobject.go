package model

import "sync"

// EntityID — идентификатор сущности в мире. 0 означает "нет сущности".
type EntityID uint64

// Kind classifies world objects.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindGuard
	KindCrate
	KindMarker
	KindCargoPlane
	KindTransport
	KindVehicle
	KindStructure
	KindCollider
	KindFire
	KindSmoke
)

func (k Kind) String() string {
	switch k {
	case KindGuard:
		return "guard"
	case KindCrate:
		return "crate"
	case KindMarker:
		return "marker"
	case KindCargoPlane:
		return "cargo_plane"
	case KindTransport:
		return "transport"
	case KindVehicle:
		return "vehicle"
	case KindStructure:
		return "structure"
	case KindCollider:
		return "collider"
	case KindFire:
		return "fire"
	case KindSmoke:
		return "smoke"
	default:
		return "unknown"
	}
}

// Layer is the physics layer of a collider.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerTerrain
	LayerPreventBuilding
	LayerVehicleDetailed
	LayerVehicleWorld
	LayerVehicleLarge
	LayerTrigger
)

// ColliderInfo describes static geometry near a point.
type ColliderInfo struct {
	Layer    Layer
	SafeZone bool
	Radius   float64
}

// CrateState holds the mutable state of a reward crate.
type CrateState struct {
	Locked      bool
	OwnerID     uint64 // 0 = anyone may loot
	Hacking     bool
	HackSeconds float64
	Decay       bool
	Loot        []ItemStack
}

// ItemStack is a quantity of one item.
type ItemStack struct {
	ShortName string
	Amount    int
	SkinID    uint64
}

// WorldObject — базовый тип для всех объектов в мире.
// Все объекты имеют ID, Kind, Name и Location.
type WorldObject struct {
	id       EntityID
	kind     Kind
	name     string
	location Location
	Data     any // *CrateState, ColliderInfo, *Player...

	mu sync.RWMutex
}

// NewWorldObject создаёт новый объект в мире.
func NewWorldObject(id EntityID, kind Kind, name string, loc Location) *WorldObject {
	return &WorldObject{
		id:       id,
		kind:     kind,
		name:     name,
		location: loc,
	}
}

// ID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ID() EntityID {
	return w.id
}

// Kind returns the object classification.
func (w *WorldObject) Kind() Kind {
	return w.kind
}

// Name возвращает имя (prefab) объекта.
func (w *WorldObject) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// Location возвращает копию координат объекта (value type).
func (w *WorldObject) Location() Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.location
}

// SetLocation устанавливает новые координаты объекта.
func (w *WorldObject) SetLocation(loc Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = loc
}

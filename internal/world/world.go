// Package world is the in-memory host world the daemon runs encounters on.
//
// It keeps every entity in a region grid, simulates delivery vehicles,
// falling crates and hack timers, and reports deaths through Hooks.
// Reads are safe from any goroutine. Mutations that can fire hooks
// (Damage, Step, SpawnVehicle) must be made from the engine loop.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

// World errors.
var (
	ErrOutsideMap      = errors.New("position outside the map")
	ErrObjectNotFound  = errors.New("object not found")
	ErrPlayerExists    = errors.New("player already in world")
	ErrCrateLocked     = errors.New("crate is locked")
	ErrNotCrateOwner   = errors.New("crate is locked to another player")
	ErrObjectiveDenied = errors.New("objective access denied")
)

// monumentSize is the footprint used for the Monument topology flag.
var monumentSize = model.NewLocation(320, 120, 320)

// Hooks are the host callbacks. Any field may be nil.
type Hooks struct {
	// OnDeath fires for every entity that dies or expires while the world
	// is subscribed. killer is nil for expirations and environment deaths.
	OnDeath func(id model.EntityID, killer *model.Player)

	// OnVehicleSpawned and OnVehicleDestroyed fire regardless of subscription.
	OnVehicleSpawned   func(pos model.Location)
	OnVehicleDestroyed func(pos model.Location, killer *model.Player)

	// CanAccessObjective gates looting and hacking of crates.
	CanAccessObjective func(id model.EntityID, player *model.Player) (bool, string)
}

// Monument is a fixed prefab placed on the map.
type Monument struct {
	Prefab    string
	Transform model.Transform
	Bounds    model.Bounds
}

// NpcState is the Data of a guard.
type NpcState struct {
	Profile   string
	Health    float64
	MaxHealth float64
}

// VehicleState is the Data of a destructible monument vehicle.
type VehicleState struct {
	Health float64
	Crates int // locked crates left in the wreck
}

// MarkerState is the Data of a map marker.
type MarkerState struct {
	Radius float64
	Color  string
	Label  string
}

// flight moves a vehicle along a straight line and expires it on arrival.
type flight struct {
	from, to model.Location
	total    time.Duration
	elapsed  time.Duration
	linger   time.Duration // time parked at the destination
}

type fall struct {
	speed float64 // units per second
}

// World is the reference host simulation.
type World struct {
	grid    Grid
	terrain *Heightmap
	ids     *IDGenerator
	frame   time.Duration

	mu        sync.RWMutex
	regions   [][]*Region
	objects   map[model.EntityID]*model.WorldObject
	players   map[uint64]*model.Player
	monuments []Monument
	flights   map[model.EntityID]*flight
	falls     map[model.EntityID]*fall
	timers    map[model.EntityID]time.Duration // оставшееся время жизни (fire, smoke)

	hooks      Hooks
	subscribed atomic.Bool
}

// New creates a world from configuration. frame is the Step interval.
func New(cfg config.WorldConfig, frame time.Duration) *World {
	w := &World{
		grid:    NewGrid(cfg.MapSize),
		terrain: NewHeightmap(cfg.MapSize, cfg.SeaLevel, cfg.Seed),
		ids:     NewIDGenerator(),
		frame:   frame,
		objects: make(map[model.EntityID]*model.WorldObject),
		players: make(map[uint64]*model.Player),
		flights: make(map[model.EntityID]*flight),
		falls:   make(map[model.EntityID]*fall),
		timers:  make(map[model.EntityID]time.Duration),
	}

	n := w.grid.Regions()
	w.regions = make([][]*Region, n)
	for rx := range n {
		w.regions[rx] = make([]*Region, n)
		for rz := range n {
			w.regions[rx][rz] = NewRegion(rx, rz)
		}
	}

	for _, m := range cfg.Monuments {
		tr := model.Transform{Position: m.Position.Location(), Yaw: m.Yaw}
		w.monuments = append(w.monuments, Monument{
			Prefab:    m.Prefab,
			Transform: tr,
			Bounds:    model.NewBounds(tr, model.Location{}, monumentSize),
		})
	}

	slog.Info("world initialized",
		"map_size", cfg.MapSize,
		"regions", n*n,
		"monuments", len(w.monuments))

	return w
}

// SetHooks installs host callbacks.
func (w *World) SetHooks(h Hooks) {
	w.mu.Lock()
	w.hooks = h
	w.mu.Unlock()
}

// SetSubscribed toggles delivery of OnDeath.
func (w *World) SetSubscribed(active bool) {
	w.subscribed.Store(active)
	slog.Debug("world death hooks", "subscribed", active)
}

// Subscribed reports whether OnDeath is delivered.
func (w *World) Subscribed() bool {
	return w.subscribed.Load()
}

// Grid returns the region grid.
func (w *World) Grid() Grid { return w.grid }

// Terrain returns the heightmap.
func (w *World) Terrain() *Heightmap { return w.terrain }

// Monuments returns the placed monuments.
func (w *World) Monuments() []Monument {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Monument(nil), w.monuments...)
}

// FindMonuments returns monuments whose prefab contains fragment (case-insensitive).
func (w *World) FindMonuments(fragment string) []Monument {
	fragment = strings.ToLower(fragment)
	var out []Monument
	for _, m := range w.Monuments() {
		if strings.Contains(strings.ToLower(m.Prefab), fragment) {
			out = append(out, m)
		}
	}
	return out
}

func (w *World) region(loc model.Location) *Region {
	rx, rz := w.grid.CoordToRegionIndex(loc.X, loc.Z)
	if !w.grid.IsValidRegionIndex(rx, rz) {
		return nil
	}
	return w.regions[rx][rz]
}

// add stores object in world and its region. Caller holds mu.
func (w *World) add(obj *model.WorldObject) error {
	loc := obj.Location()
	region := w.region(loc)
	if region == nil {
		return fmt.Errorf("adding %s %d at %s: %w", obj.Kind(), obj.ID(), loc, ErrOutsideMap)
	}
	w.objects[obj.ID()] = obj
	region.Add(obj)
	return nil
}

// remove deletes object and its simulation state. Caller holds mu.
func (w *World) remove(id model.EntityID) (*model.WorldObject, bool) {
	obj, ok := w.objects[id]
	if !ok {
		return nil, false
	}
	delete(w.objects, id)
	delete(w.flights, id)
	delete(w.falls, id)
	delete(w.timers, id)
	if region := w.region(obj.Location()); region != nil {
		region.Remove(id)
	}
	return obj, true
}

// move relocates object, switching regions when needed. Caller holds mu.
func (w *World) move(obj *model.WorldObject, loc model.Location) {
	from := w.region(obj.Location())
	to := w.region(loc)
	obj.SetLocation(loc)
	if from == to {
		return
	}
	if from != nil {
		from.Remove(obj.ID())
	}
	if to != nil {
		to.Add(obj)
	}
}

func (w *World) spawn(id model.EntityID, kind model.Kind, name string, loc model.Location, data any) (model.EntityID, error) {
	obj := model.NewWorldObject(id, kind, name, loc)
	obj.Data = data

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.add(obj); err != nil {
		return 0, err
	}
	return id, nil
}

// Object returns object by id.
func (w *World) Object(id model.EntityID) (*model.WorldObject, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[id]
	return obj, ok
}

// ObjectCount returns the number of live objects.
func (w *World) ObjectCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.objects)
}

// CountKind returns the number of live objects of a kind.
func (w *World) CountKind(kind model.Kind) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, obj := range w.objects {
		if obj.Kind() == kind {
			n++
		}
	}
	return n
}

// forEachNear calls fn for every object within radius of p (2D). Caller holds mu.
func (w *World) forEachNear(p model.Location, radius float64, fn func(*model.WorldObject)) {
	minX, minZ, maxX, maxZ := w.grid.RegionSpan(p.X, p.Z, radius)
	limit := radius * radius
	for rx := minX; rx <= maxX; rx++ {
		for rz := minZ; rz <= maxZ; rz++ {
			w.regions[rx][rz].ForEach(func(obj *model.WorldObject) bool {
				if obj.Location().Distance2DSquared(p) <= limit {
					fn(obj)
				}
				return true
			})
		}
	}
}

// Players

// AddPlayer puts a player into the world.
func (w *World) AddPlayer(p *model.Player) error {
	if !w.grid.InsideMap(p.Location.X, p.Location.Z) {
		return fmt.Errorf("adding player %d: %w", p.ID, ErrOutsideMap)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[p.ID]; ok {
		return fmt.Errorf("adding player %d: %w", p.ID, ErrPlayerExists)
	}
	cp := *p
	w.players[p.ID] = &cp
	return nil
}

// MovePlayer updates a player position.
func (w *World) MovePlayer(id uint64, loc model.Location) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok {
		return fmt.Errorf("moving player %d: %w", id, ErrObjectNotFound)
	}
	p.Location = loc
	return nil
}

// SetSleeping marks a player asleep or awake.
func (w *World) SetSleeping(id uint64, sleeping bool) {
	w.mu.Lock()
	if p, ok := w.players[id]; ok {
		p.Sleeping = sleeping
	}
	w.mu.Unlock()
}

// RemovePlayer removes a player from the world.
func (w *World) RemovePlayer(id uint64) {
	w.mu.Lock()
	delete(w.players, id)
	w.mu.Unlock()
}

// Player returns a copy of the player.
func (w *World) Player(id uint64) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// Static geometry

// AddStructure places a player building.
func (w *World) AddStructure(name string, pos model.Location) (model.EntityID, error) {
	return w.spawn(w.ids.NextStatic(), model.KindStructure, name, pos, nil)
}

// AddCollider places static geometry.
func (w *World) AddCollider(name string, pos model.Location, info model.ColliderInfo) (model.EntityID, error) {
	return w.spawn(w.ids.NextStatic(), model.KindCollider, name, pos, info)
}

// NPCs and vehicles

// SpawnNpc places a guard NPC.
func (w *World) SpawnNpc(pos model.Location, profile string, health float64) (model.EntityID, error) {
	pos.Y = w.terrain.Surface(pos.X, pos.Z)
	return w.spawn(w.ids.NextNpc(), model.KindGuard, profile, pos, &NpcState{
		Profile:   profile,
		Health:    health,
		MaxHealth: health,
	})
}

// SpawnVehicle places a destructible vehicle and fires OnVehicleSpawned.
func (w *World) SpawnVehicle(name string, pos model.Location, health float64, crates int) (model.EntityID, error) {
	id, err := w.spawn(w.ids.NextDynamic(), model.KindVehicle, name, pos, &VehicleState{Health: health, Crates: crates})
	if err != nil {
		return 0, err
	}
	w.mu.RLock()
	hook := w.hooks.OnVehicleSpawned
	w.mu.RUnlock()
	if hook != nil {
		hook(pos)
	}
	return id, nil
}

// Damage applies damage to a guard or vehicle. Returns true when it died.
func (w *World) Damage(id model.EntityID, amount float64, attacker *model.Player) (bool, error) {
	w.mu.Lock()
	obj, ok := w.objects[id]
	if !ok {
		w.mu.Unlock()
		return false, fmt.Errorf("damaging %d: %w", id, ErrObjectNotFound)
	}

	var health *float64
	switch st := obj.Data.(type) {
	case *NpcState:
		health = &st.Health
	case *VehicleState:
		health = &st.Health
	default:
		w.mu.Unlock()
		return false, fmt.Errorf("damaging %s %d: not destructible", obj.Kind(), id)
	}
	*health -= amount
	if *health > 0 {
		w.mu.Unlock()
		return false, nil
	}
	w.mu.Unlock()

	w.destroy(id, attacker)
	return true, nil
}

// destroy kills an entity as a gameplay death and fires hooks.
func (w *World) destroy(id model.EntityID, killer *model.Player) {
	w.mu.Lock()
	obj, ok := w.remove(id)
	if !ok {
		w.mu.Unlock()
		return
	}
	hooks := w.hooks
	pos := obj.Location()

	if st, ok := obj.Data.(*VehicleState); ok && obj.Kind() == model.KindVehicle {
		w.leaveWreck(pos, st.Crates)
	}
	w.mu.Unlock()

	slog.Debug("entity destroyed", "id", id, "kind", obj.Kind(), "killer", killer.DisplayName())

	if obj.Kind() == model.KindVehicle && hooks.OnVehicleDestroyed != nil {
		hooks.OnVehicleDestroyed(pos, killer)
	}
	if w.subscribed.Load() && hooks.OnDeath != nil {
		hooks.OnDeath(id, killer)
	}
}

// leaveWreck drops locked crates and a fire around a destroyed vehicle. Caller holds mu.
func (w *World) leaveWreck(pos model.Location, crates int) {
	for i := range crates {
		p := model.PointAround(pos, 4, 360/float64(crates)*float64(i))
		p.Y = w.terrain.Surface(p.X, p.Z)
		obj := model.NewWorldObject(w.ids.NextDynamic(), model.KindCrate, "bradley_crate", p)
		obj.Data = &model.CrateState{Locked: true}
		_ = w.add(obj)
	}
	fire := model.NewWorldObject(w.ids.NextDynamic(), model.KindFire, "fireball_small", pos)
	if w.add(fire) == nil {
		w.timers[fire.ID()] = 5 * time.Minute
	}
}

// Package trigger decides when and where encounters start.
//
// Monuments turns a destroyed patrol vehicle inside a monument into a wreck
// encounter; Drops starts airdropped crate encounters at random spawn points.
// Both run on the encounter loop goroutine.
package trigger

import (
	"log/slog"
	"time"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/model"
	"github.com/udisondev/encounters/internal/world"
)

// DefaultInitializeDelay is how long after startup the monument table is built.
const DefaultInitializeDelay = 10 * time.Second

// MonumentSource finds monuments by prefab fragment.
type MonumentSource interface {
	FindMonuments(fragment string) []world.Monument
}

// Readiness reports whether the guard spawner can be used.
type Readiness interface {
	Ready() bool
}

// VehicleTuning is the patrol vehicle setup inside a monument zone.
type VehicleTuning struct {
	Health float64
	Crates int
}

type monumentZone struct {
	event    config.MonumentEvent
	monument world.Monument
	def      encounter.Definition
}

// Monuments maps monument zones to wreck encounters.
type Monuments struct {
	engine *encounter.Engine
	source MonumentSource
	npcs   Readiness
	events []config.MonumentEvent

	zones []monumentZone
	built bool
}

// NewMonuments creates the monument trigger. The zone table is empty until Build.
func NewMonuments(engine *encounter.Engine, source MonumentSource, npcs Readiness, events []config.MonumentEvent) *Monuments {
	cp := make([]config.MonumentEvent, len(events))
	for i, ev := range events {
		cp[i] = ev.Clone()
	}
	return &Monuments{
		engine: engine,
		source: source,
		npcs:   npcs,
		events: cp,
	}
}

// Schedule builds the zone table after delay on the engine scheduler.
func (m *Monuments) Schedule(delay time.Duration) {
	m.engine.Scheduler().After(delay, nil, m.Build)
}

// Build matches configured events with placed monuments.
func (m *Monuments) Build() {
	m.zones = m.zones[:0]
	for _, ev := range m.events {
		if !ev.Enabled {
			slog.Debug("monument event disabled", "name", ev.Name)
			continue
		}
		if err := ev.Validate(); err != nil {
			slog.Warn("skip monument event", "name", ev.Name, "error", err)
			continue
		}
		found := m.source.FindMonuments(ev.Monument)
		if len(found) == 0 {
			slog.Warn("no monument matches event", "name", ev.Name, "monument", ev.Monument)
			continue
		}
		for _, mon := range found {
			m.zones = append(m.zones, monumentZone{
				event:    ev,
				monument: mon,
				def:      encounter.WreckDefinition(ev, mon.Transform),
			})
		}
	}
	m.built = true
	slog.Info("monument zones built", "zones", len(m.zones))
}

// Built reports whether the zone table is ready.
func (m *Monuments) Built() bool { return m.built }

// Len returns the number of monument zones.
func (m *Monuments) Len() int { return len(m.zones) }

func (m *Monuments) zoneAt(pos model.Location) (*monumentZone, bool) {
	for i := range m.zones {
		if m.zones[i].def.Bounds.Contains(pos) {
			return &m.zones[i], true
		}
	}
	return nil, false
}

// Tuning returns the vehicle setup for a vehicle spawning at pos.
func (m *Monuments) Tuning(pos model.Location) (VehicleTuning, bool) {
	z, ok := m.zoneAt(pos)
	if !ok {
		return VehicleTuning{}, false
	}
	return VehicleTuning{Health: z.event.VehicleHealth, Crates: z.event.CrateAmount}, true
}

// OnVehicleSpawned resets an encounter whose area contains the new vehicle.
func (m *Monuments) OnVehicleSpawned(pos model.Location) {
	inst, ok := m.engine.InstanceAt(pos)
	if !ok {
		return
	}
	slog.Info("vehicle respawned inside encounter, resetting",
		"instanceID", inst.ID(),
		"name", inst.Name())
	m.engine.ForceEnd(inst)
}

// OnVehicleDestroyed starts a wreck encounter when a player destroys a vehicle
// inside a monument zone that has no running encounter.
func (m *Monuments) OnVehicleDestroyed(pos model.Location, killer *model.Player) {
	if killer == nil || pos.IsZero() {
		return
	}
	z, ok := m.zoneAt(pos)
	if !ok {
		return
	}
	if _, busy := m.engine.InstanceAt(pos); busy {
		slog.Debug("monument encounter already running", "name", z.event.Name)
		return
	}
	if !m.npcs.Ready() {
		slog.Warn("npc spawn service unavailable, wreck encounter skipped", "name", z.event.Name)
		return
	}

	inst, err := m.engine.RegisterTrigger(pos, z.def)
	if err != nil {
		slog.Warn("failed to start wreck encounter", "name", z.event.Name, "error", err)
		return
	}
	slog.Info("wreck encounter triggered",
		"instanceID", inst.ID(),
		"name", inst.Name(),
		"killer", killer.DisplayName())
}

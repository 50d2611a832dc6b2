package encounter

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/encounters/internal/model"
	"github.com/udisondev/encounters/internal/scheduler"
)

// State represents the lifecycle state of an instance.
type State int32

const (
	StatePending   State = iota // created, start not yet requested
	StateStarting               // startup stages scheduled
	StateRunning                // countdown active
	StateCompleted              // squad eliminated by a player
	StateFailed                 // deadline passed
	StateEnded                  // torn down, terminal
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	case StateEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

const (
	objectiveDropHeight = 100
	guardRingRadius     = 5
	markerRefresh       = 10 * time.Second
	lootDelay           = 2 * time.Second
)

// Instance is one live encounter. All methods must be called on the engine goroutine.
type Instance struct {
	id     uuid.UUID
	def    Definition
	engine *Engine
	token  *scheduler.Token

	state  State
	anchor model.Location
	squad  *Squad

	objective model.EntityID
	vehicle   model.EntityID
	marker    model.EntityID
	smoke     model.EntityID
	handOff   bool // objective survives Ended

	elapsed    time.Duration
	sinceThink time.Duration
	timeEnded  bool

	startedAt  time.Time
	winner     *model.Player
	lastKiller *model.Player // originator of the latest guard death
	result    Result
}

func newInstance(e *Engine, anchor model.Location, def Definition) *Instance {
	return &Instance{
		id:     uuid.New(),
		def:    def,
		engine: e,
		token:  scheduler.NewToken(),
		state:  StatePending,
		anchor: anchor,
		squad:  NewSquad(),
	}
}

// ID returns the opaque instance handle.
func (i *Instance) ID() uuid.UUID { return i.id }

// Name returns the definition name.
func (i *Instance) Name() string { return i.def.Name }

// Kind returns the encounter kind.
func (i *Instance) Kind() Kind { return i.def.Kind }

// State returns the current lifecycle state.
func (i *Instance) State() State { return i.state }

// Anchor returns the trigger position.
func (i *Instance) Anchor() model.Location { return i.anchor }

// Squad returns the guard squad. Callers must not mutate it.
func (i *Instance) Squad() *Squad { return i.squad }

// Objective returns the objective entity id (0 when none).
func (i *Instance) Objective() model.EntityID { return i.objective }

// Vehicle returns the delivery vehicle id (0 when none).
func (i *Instance) Vehicle() model.EntityID { return i.vehicle }

// Marker returns the map marker id (0 when none).
func (i *Instance) Marker() model.EntityID { return i.marker }

// Elapsed returns the countdown progress.
func (i *Instance) Elapsed() time.Duration { return i.elapsed }

// Remaining returns the time left before the instance fails.
func (i *Instance) Remaining() time.Duration {
	if left := i.def.Duration - i.elapsed; left > 0 {
		return left
	}
	return 0
}

// Winner returns the player that completed the instance, if any.
func (i *Instance) Winner() *model.Player { return i.winner }

// Contains reports whether p lies inside the instance area: the bounds for
// fixed-location instances, the intersect radius around the anchor otherwise.
func (i *Instance) Contains(p model.Location) bool {
	if i.def.Bounds != nil {
		return i.def.Bounds.Contains(p)
	}
	return i.anchor.Distance2D(p) < i.engine.opts.IntersectRadius
}

func (i *Instance) nextFrame(fn func()) {
	i.engine.sched.NextFrame(i.token, fn)
}

func (i *Instance) after(d time.Duration, fn func()) {
	i.engine.sched.After(d, i.token, fn)
}

// start moves Pending → Starting and schedules the startup stages.
func (i *Instance) start() {
	if i.state != StatePending {
		return
	}
	i.state = StateStarting
	i.startedAt = i.engine.opts.Clock()

	slog.Info("encounter starting",
		"instanceID", i.id,
		"name", i.def.Name,
		"kind", i.def.Kind,
		"anchor", i.anchor)

	i.nextFrame(i.spawnMarker)
}

// Startup stages. Each runs at least one frame after the previous.

// spawnMarker is the first stage; the countdown starts once it is done.
func (i *Instance) spawnMarker() {
	if i.def.Kind == KindDrop && i.def.Marker {
		i.marker = i.engine.world.SpawnMarker(i.anchor, i.def.MarkerRadius, i.def.MarkerColor, i.markerLabel())
		i.engine.entities.Register(i.marker, i)
		i.after(markerRefresh, i.refreshMarker)
	}

	i.state = StateRunning
	i.engine.notify("EventStart", i.def.Name, i.anchor.String(), humanDuration(i.def.Duration))
	i.nextFrame(i.spawnObjective)
}

func (i *Instance) refreshMarker() {
	if i.marker == 0 || i.state != StateRunning {
		return
	}
	i.engine.world.UpdateMarker(i.marker, i.markerLabel())
	i.after(markerRefresh, i.refreshMarker)
}

func (i *Instance) markerLabel() string {
	return i.def.Name + " (" + humanDuration(i.Remaining()) + ")"
}

func (i *Instance) spawnObjective() {
	if i.def.Kind == KindDrop {
		pos := i.anchor.Add(model.Location{Y: objectiveDropHeight})
		i.objective = i.engine.world.SpawnCrate(pos, i.def.HackSeconds, i.def.FallDrag)
		i.engine.entities.Register(i.objective, i)
		if i.def.Loot.Enabled && i.engine.loot != nil {
			i.after(lootDelay, i.populateLoot)
		}
	}
	i.nextFrame(func() { i.spawnGuard(0) })
}

func (i *Instance) populateLoot() {
	if i.objective == 0 {
		return
	}
	i.engine.world.FillLoot(i.objective, i.engine.loot.Roll(i.def.Loot))
}

func (i *Instance) spawnGuard(n int) {
	if n >= i.def.GuardCount {
		i.squad.markDispatched()
		if i.squad.Spawned() == 0 {
			slog.Warn("no guards spawned, aborting encounter", "instanceID", i.id, "name", i.def.Name)
			i.abort()
			return
		}
		// Guards wiped out while the rest were still spawning.
		if i.squad.Empty() && i.lastKiller != nil {
			i.complete(i.lastKiller)
			return
		}
		i.nextFrame(i.dispatchVehicle)
		return
	}

	if !i.engine.npcs.Ready() {
		slog.Warn("npc spawn service became unavailable, aborting encounter",
			"instanceID", i.id,
			"name", i.def.Name,
			"spawned", i.squad.Spawned())
		i.abort()
		return
	}

	id, ok := i.engine.npcs.SpawnGuard(i.guardPosition(n), i.def.Guard)
	if ok {
		i.squad.Add(id)
		i.engine.entities.Register(id, i)
	} else {
		slog.Warn("guard spawn failed", "instanceID", i.id, "index", n)
	}

	i.nextFrame(func() { i.spawnGuard(n + 1) })
}

func (i *Instance) guardPosition(n int) model.Location {
	center := i.anchor
	if i.def.Kind == KindWreck {
		center = i.def.Landing
	}
	return model.PointAround(center, guardRingRadius, 360/float64(i.def.GuardCount)*float64(n))
}

func (i *Instance) dispatchVehicle() {
	switch i.def.Kind {
	case KindDrop:
		i.vehicle = i.engine.world.SpawnCargoPlane(i.anchor, i.def.FlightTime)
	case KindWreck:
		i.vehicle = i.engine.world.SpawnTransport(i.def.TransportFrom, i.def.Landing)
		i.smoke = i.engine.world.DropSmoke(i.def.Landing)
		i.engine.entities.Register(i.smoke, i)
	}
	i.engine.entities.Register(i.vehicle, i)
}

// think accumulates frame time and checks the deadline once per think interval.
func (i *Instance) think(dt time.Duration) {
	if i.state != StateRunning || i.timeEnded {
		return
	}
	i.sinceThink += dt
	if i.sinceThink < i.engine.opts.ThinkInterval {
		return
	}
	i.elapsed += i.sinceThink
	i.sinceThink = 0

	if i.elapsed >= i.def.Duration {
		i.timeEnded = true
		i.fail()
	}
}

func (i *Instance) onChildTerminated(id model.EntityID, killer *model.Player) {
	switch {
	case i.squad.Has(id):
		i.onGuardKilled(id, killer)
	case id == i.objective:
		i.objective = 0
	case id == i.vehicle:
		i.vehicle = 0
	case id == i.marker:
		i.marker = 0
	case id == i.smoke:
		i.smoke = 0
	}
}

func (i *Instance) onGuardKilled(id model.EntityID, killer *model.Player) {
	i.squad.Remove(id)
	i.lastKiller = killer
	if i.def.ResetTimerOnKill {
		i.elapsed = 0
		i.sinceThink = 0
	}

	// До конца спавна решение принимает spawnGuard.
	if i.state != StateRunning || !i.squad.Dispatched() || !i.squad.Empty() {
		return
	}
	if killer == nil {
		// Squad is gone but nobody earned it: the deadline decides.
		slog.Info("last guard died without a player killer",
			"instanceID", i.id,
			"name", i.def.Name,
			"remaining", i.Remaining())
		return
	}
	i.complete(killer)
}

func (i *Instance) complete(p *model.Player) {
	i.state = StateCompleted
	i.winner = p
	i.result = ResultCompleted

	switch i.def.Kind {
	case KindDrop:
		if i.objective != 0 {
			if i.def.LockToPlayer && i.engine.rewards != nil {
				i.engine.rewards.LockObjectiveToPlayer(i.objective, p)
			}
			if i.def.AutoHack {
				i.engine.world.StartHacking(i.objective)
			}
			i.engine.world.SetDecay(i.objective, true)
			i.handOff = true
		}
	case KindWreck:
		if i.def.Unlock {
			n := i.engine.world.UnlockCratesNear(i.anchor, i.def.ClearRadius)
			slog.Debug("wreck crates unlocked", "instanceID", i.id, "count", n)
		}
		if i.def.Extinguish {
			i.engine.world.ExtinguishNear(i.anchor, i.def.ClearRadius)
		}
	}

	slog.Info("encounter completed",
		"instanceID", i.id,
		"name", i.def.Name,
		"winner", p.DisplayName())

	i.engine.notify("EventCompleted", i.def.Name, i.engine.winnerName(p))
	i.end()
}

func (i *Instance) fail() {
	if i.state != StateRunning {
		return
	}
	i.state = StateFailed
	i.result = ResultFailed

	slog.Info("encounter failed",
		"instanceID", i.id,
		"name", i.def.Name,
		"guardsLeft", i.squad.Len())

	i.engine.notify("EventEnded", i.def.Name)
	i.end()
}

func (i *Instance) abort() {
	if i.result == "" {
		i.result = ResultAborted
	}
	i.end()
}

// end tears the instance down. Idempotent.
func (i *Instance) end() {
	if i.state == StateEnded {
		return
	}
	i.token.Cancel()

	e := i.engine
	killed := i.squad.Killed()
	for _, id := range i.squad.IDs() {
		e.entities.Unregister(id)
		e.world.Kill(id)
	}
	i.squad.clear()

	for _, id := range []model.EntityID{i.marker, i.smoke, i.vehicle} {
		if id == 0 {
			continue
		}
		e.entities.Unregister(id)
		if e.world.Alive(id) {
			e.world.Kill(id)
		}
	}
	i.marker, i.smoke, i.vehicle = 0, 0, 0

	if i.objective != 0 {
		e.entities.Unregister(i.objective)
		if !i.handOff && e.world.Alive(i.objective) {
			e.world.Kill(i.objective)
		}
	}

	if i.result == "" {
		i.result = ResultAborted
	}
	i.state = StateEnded
	e.events.Unregister(i)
	e.record(i, killed)

	slog.Info("encounter ended",
		"instanceID", i.id,
		"name", i.def.Name,
		"result", i.result)
}

// Package encounter implements the guarded encounter lifecycle engine.
//
// An encounter is a timed event at a point in the world: an objective
// (an airdropped crate or a vehicle wreck) is contested by a squad of
// guards. Killing the whole squad before the deadline completes the
// encounter and hands the reward to the player that landed the last kill.
//
// Engine is the explicit context that owns every registry, the step
// scheduler and the collaborator services. It is single-threaded: use Loop
// to drive it from other goroutines.
package encounter

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/udisondev/encounters/internal/model"
	"github.com/udisondev/encounters/internal/scheduler"
)

// Options tunes the engine.
type Options struct {
	// ThinkInterval is how often running instances check their deadline.
	ThinkInterval time.Duration
	// IntersectRadius is the horizontal distance inside which two encounters collide.
	IntersectRadius float64
	// ClanTags prefixes winner names with their clan tag.
	ClanTags bool
	// Clock returns wall time for history records. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the stock engine tuning.
func DefaultOptions() Options {
	return Options{
		ThinkInterval:   time.Second,
		IntersectRadius: 80,
		ClanTags:        true,
		Clock:           time.Now,
	}
}

// Deps are the collaborators the engine drives.
// Npcs and World are required; the rest may be nil. Without Rewards the
// objective is handed off unlocked.
type Deps struct {
	Npcs       NpcSpawner
	World      Entities
	Rewards    RewardLocker
	Clans      ClanLookup
	Notifier   Notifier
	Subscriber Subscriber
	History    HistoryRecorder
	Loot       LootRoller
}

// Engine owns all live encounters.
type Engine struct {
	opts Options

	npcs       NpcSpawner
	world      Entities
	rewards    RewardLocker
	clans      ClanLookup
	notifier   Notifier
	subscriber Subscriber
	history    HistoryRecorder
	loot       LootRoller

	sched    *scheduler.Scheduler
	events   *EventRegistry
	entities *EntityRegistry
	steppers []Stepper
}

// NewEngine creates an engine with no active encounters.
func NewEngine(opts Options, deps Deps) *Engine {
	if opts.ThinkInterval <= 0 {
		opts.ThinkInterval = time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	e := &Engine{
		opts:       opts,
		npcs:       deps.Npcs,
		world:      deps.World,
		rewards:    deps.Rewards,
		clans:      deps.Clans,
		notifier:   deps.Notifier,
		subscriber: deps.Subscriber,
		history:    deps.History,
		loot:       deps.Loot,
		sched:      scheduler.New(),
		entities:   NewEntityRegistry(),
	}
	e.events = NewEventRegistry(e.onActiveChanged)
	return e
}

func (e *Engine) onActiveChanged(active bool) {
	slog.Debug("encounter hooks toggled", "subscribed", active)
	if e.subscriber != nil {
		e.subscriber.SetSubscribed(active)
	}
}

// Scheduler exposes the step scheduler for trigger-side delayed work.
func (e *Engine) Scheduler() *scheduler.Scheduler { return e.sched }

// AddStepper registers a background job advanced once per Tick.
func (e *Engine) AddStepper(s Stepper) {
	e.steppers = append(e.steppers, s)
}

// Tick advances the engine by one frame of length dt.
func (e *Engine) Tick(dt time.Duration) {
	e.sched.Advance(dt)
	for _, inst := range e.events.All() {
		inst.think(dt)
	}
	for _, s := range e.steppers {
		s.Step()
	}
}

// RegisterTrigger creates an instance for def at pos and starts it.
func (e *Engine) RegisterTrigger(pos model.Location, def Definition) (*Instance, error) {
	if err := def.Validate(); err != nil {
		slog.Warn("encounter trigger rejected", "name", def.Name, "error", err)
		return nil, err
	}
	if pos.IsZero() {
		return nil, fmt.Errorf("register %q: %w", def.Name, ErrPositionInvalid)
	}
	if e.npcs == nil || !e.npcs.Ready() {
		slog.Warn("encounter trigger rejected, npc spawn service unavailable", "name", def.Name)
		return nil, fmt.Errorf("register %q: %w", def.Name, ErrDependencyUnavailable)
	}

	inst := newInstance(e, pos, def.clone())
	e.events.Register(inst)
	inst.start()
	return inst, nil
}

// InstanceAt returns the first active instance whose area contains p.
func (e *Engine) InstanceAt(p model.Location) (*Instance, bool) {
	return e.events.ClosestContaining(p)
}

// HasIntersecting reports whether an active instance is anchored near p.
func (e *Engine) HasIntersecting(p model.Location) bool {
	return e.events.HasIntersecting(p, e.opts.IntersectRadius)
}

// OnChildEntityTerminated is the single death entry point for every child
// entity (guard, objective, vehicle, marker). killer is nil when no player
// caused the death. Unknown ids are ignored.
func (e *Engine) OnChildEntityTerminated(id model.EntityID, killer *model.Player) {
	inst, ok := e.entities.Find(id)
	if !ok {
		return
	}
	e.entities.Unregister(id)
	inst.onChildTerminated(id, killer)
}

// Owns reports whether id belongs to any active encounter.
func (e *Engine) Owns(id model.EntityID) bool {
	_, ok := e.entities.Find(id)
	return ok
}

// CanAccessObjective reports whether player may open or hack the objective id.
// When access is refused the second value is the message key to show.
func (e *Engine) CanAccessObjective(id model.EntityID, player *model.Player) (bool, string) {
	inst, ok := e.entities.Find(id)
	if !ok || inst.objective != id {
		return true, ""
	}
	if inst.def.EliminateGuards && !inst.squad.Empty() {
		slog.Debug("objective access refused, guards alive",
			"instanceID", inst.id,
			"player", player.DisplayName(),
			"guards", inst.squad.Len())
		return false, "EliminateGuards"
	}
	return true, ""
}

// ForceEnd tears inst down immediately without a Failed broadcast.
func (e *Engine) ForceEnd(inst *Instance) {
	inst.abort()
}

// ShutdownAll forces every instance to Ended. Idempotent.
func (e *Engine) ShutdownAll() {
	all := e.events.All()
	for _, inst := range all {
		inst.abort()
	}
	e.entities.Clear()
	e.sched.Purge()

	if len(all) > 0 {
		slog.Info("all encounters shut down", "count", len(all))
	}
}

// Active returns the active instances in registration order.
func (e *Engine) Active() []*Instance { return e.events.All() }

// ActiveCount returns the number of active instances.
func (e *Engine) ActiveCount() int { return e.events.Len() }

// TrackedEntities returns the number of child entities owned by active instances.
func (e *Engine) TrackedEntities() int { return e.entities.Len() }

func (e *Engine) notify(key string, args ...any) {
	if e.notifier != nil {
		e.notifier.Broadcast(key, args...)
	}
}

// winnerName formats p as "[TAG]Name" when a clan tag is known.
func (e *Engine) winnerName(p *model.Player) string {
	if p == nil {
		return "Unknown"
	}
	name := p.DisplayName()
	if e.opts.ClanTags && e.clans != nil {
		if tag, ok := e.clans.ClanTag(p.ID); ok && tag != "" {
			return "[" + tag + "]" + name
		}
	}
	return name
}

func (e *Engine) record(i *Instance, killed int) {
	if e.history == nil {
		return
	}
	o := Outcome{
		InstanceID:   i.id,
		Name:         i.def.Name,
		Kind:         i.def.Kind,
		Result:       i.result,
		Anchor:       i.anchor,
		GuardsTotal:  i.squad.Spawned(),
		GuardsKilled: killed,
		StartedAt:    i.startedAt,
		EndedAt:      e.opts.Clock(),
	}
	if i.winner != nil {
		o.WinnerID = i.winner.ID
		o.WinnerName = e.winnerName(i.winner)
	}
	e.history.Record(o)
}

// humanDuration renders d as "1h5m", "20m" or "45s".
func humanDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second

	var b strings.Builder
	if h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	if s > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%ds", s)
	}
	return b.String()
}

package encounter

import (
	"testing"
	"time"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

const testFrame = 50 * time.Millisecond

// fakeWorld — простая in-memory реализация Entities для тестов.
type fakeWorld struct {
	nextID   model.EntityID
	alive    map[model.EntityID]model.Kind
	killed   []model.EntityID
	hacking  map[model.EntityID]bool
	decay    map[model.EntityID]bool
	loot     map[model.EntityID][]model.ItemStack
	markers  map[model.EntityID]string
	unlocked int
	doused   int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		nextID:  1000,
		alive:   make(map[model.EntityID]model.Kind),
		hacking: make(map[model.EntityID]bool),
		decay:   make(map[model.EntityID]bool),
		loot:    make(map[model.EntityID][]model.ItemStack),
		markers: make(map[model.EntityID]string),
	}
}

func (w *fakeWorld) spawn(kind model.Kind) model.EntityID {
	w.nextID++
	w.alive[w.nextID] = kind
	return w.nextID
}

func (w *fakeWorld) SpawnMarker(_ model.Location, _ float64, _, label string) model.EntityID {
	id := w.spawn(model.KindMarker)
	w.markers[id] = label
	return id
}

func (w *fakeWorld) UpdateMarker(id model.EntityID, label string) { w.markers[id] = label }

func (w *fakeWorld) SpawnCrate(model.Location, float64, float64) model.EntityID {
	return w.spawn(model.KindCrate)
}

func (w *fakeWorld) FillLoot(crate model.EntityID, items []model.ItemStack) { w.loot[crate] = items }
func (w *fakeWorld) StartHacking(crate model.EntityID)                      { w.hacking[crate] = true }
func (w *fakeWorld) SetDecay(crate model.EntityID, decay bool)              { w.decay[crate] = decay }

func (w *fakeWorld) SpawnCargoPlane(model.Location, time.Duration) model.EntityID {
	return w.spawn(model.KindCargoPlane)
}

func (w *fakeWorld) SpawnTransport(_, _ model.Location) model.EntityID {
	return w.spawn(model.KindTransport)
}

func (w *fakeWorld) DropSmoke(model.Location) model.EntityID { return w.spawn(model.KindSmoke) }

func (w *fakeWorld) UnlockCratesNear(model.Location, float64) int {
	w.unlocked++
	return 4
}

func (w *fakeWorld) ExtinguishNear(model.Location, float64) int {
	w.doused++
	return 1
}

func (w *fakeWorld) Alive(id model.EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

func (w *fakeWorld) Kill(id model.EntityID) {
	if _, ok := w.alive[id]; !ok {
		return
	}
	delete(w.alive, id)
	w.killed = append(w.killed, id)
}

func (w *fakeWorld) count(kind model.Kind) int {
	n := 0
	for _, k := range w.alive {
		if k == kind {
			n++
		}
	}
	return n
}

// fakeNpcs выдаёт id охранников и может «отвалиться».
type fakeNpcs struct {
	world     *fakeWorld
	ready     bool
	failAfter int // стать недоступным после N спавнов (0 = никогда)
	spawned   []model.Location
}

func (n *fakeNpcs) Ready() bool { return n.ready }

func (n *fakeNpcs) SpawnGuard(pos model.Location, _ config.GuardProfile) (model.EntityID, bool) {
	n.spawned = append(n.spawned, pos)
	if n.failAfter > 0 && len(n.spawned) >= n.failAfter {
		n.ready = false
	}
	return n.world.spawn(model.KindGuard), true
}

type lockCall struct {
	objective model.EntityID
	player    *model.Player
}

type fakeRewards struct {
	locks []lockCall
}

func (r *fakeRewards) LockObjectiveToPlayer(objective model.EntityID, player *model.Player) {
	r.locks = append(r.locks, lockCall{objective, player})
}

type fakeClans map[uint64]string

func (c fakeClans) ClanTag(id uint64) (string, bool) {
	tag, ok := c[id]
	return tag, ok
}

type broadcast struct {
	key  string
	args []any
}

type fakeNotifier struct {
	sent []broadcast
}

func (n *fakeNotifier) Broadcast(key string, args ...any) {
	n.sent = append(n.sent, broadcast{key, args})
}

func (n *fakeNotifier) keys() []string {
	out := make([]string, 0, len(n.sent))
	for _, b := range n.sent {
		out = append(out, b.key)
	}
	return out
}

type fakeSubscriber struct {
	toggles []bool
}

func (s *fakeSubscriber) SetSubscribed(active bool) { s.toggles = append(s.toggles, active) }

type fakeHistory struct {
	outcomes []Outcome
}

func (h *fakeHistory) Record(o Outcome) { h.outcomes = append(h.outcomes, o) }

type fixedLoot struct{}

func (fixedLoot) Roll(config.LootTable) []model.ItemStack {
	return []model.ItemStack{{ShortName: "scrap", Amount: 100}}
}

type harness struct {
	engine   *Engine
	world    *fakeWorld
	npcs     *fakeNpcs
	rewards  *fakeRewards
	notifier *fakeNotifier
	sub      *fakeSubscriber
	history  *fakeHistory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	w := newFakeWorld()
	h := &harness{
		world:    w,
		npcs:     &fakeNpcs{world: w, ready: true},
		rewards:  &fakeRewards{},
		notifier: &fakeNotifier{},
		sub:      &fakeSubscriber{},
		history:  &fakeHistory{},
	}
	opts := DefaultOptions()
	opts.Clock = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	h.engine = NewEngine(opts, Deps{
		Npcs:       h.npcs,
		World:      w,
		Rewards:    h.rewards,
		Clans:      fakeClans{7: "ACE"},
		Notifier:   h.notifier,
		Subscriber: h.sub,
		History:    h.history,
		Loot:       fixedLoot{},
	})
	return h
}

// frames прогоняет n кадров длиной dt.
func (h *harness) frames(n int, dt time.Duration) {
	for range n {
		h.engine.Tick(dt)
	}
}

func testGuard() config.GuardProfile {
	return config.GuardProfile{
		Name:      "Test Guard",
		Health:    150,
		WearItems: []config.ItemConfig{{ShortName: "hazmatsuit", Amount: 1}},
		BeltItems: []config.ItemConfig{{ShortName: "rifle.ak", Amount: 1}},
	}
}

func dropDef(guards int, duration time.Duration) Definition {
	return Definition{
		Name:            "Test Drop",
		Kind:            KindDrop,
		Duration:        duration,
		GuardCount:      guards,
		Guard:           testGuard(),
		Marker:          true,
		MarkerRadius:    0.5,
		LockToPlayer:    true,
		AutoHack:        true,
		HackSeconds:     60,
		EliminateGuards: true,
		FlightTime:      30 * time.Second,
		Loot:            config.LootTable{Enabled: true, MinItems: 1, MaxItems: 2},
	}
}

func wreckDef(guards int) Definition {
	tr := model.Transform{Position: model.NewLocation(1000, 0, 1000)}
	bounds := model.NewBounds(tr, model.Location{}, model.NewLocation(580, 280, 300))
	return Definition{
		Name:          "Launch Site",
		Kind:          KindWreck,
		Duration:      20 * time.Minute,
		GuardCount:    guards,
		Guard:         testGuard(),
		Bounds:        &bounds,
		Landing:       tr.Point(model.NewLocation(152.3, 3, 0)),
		TransportFrom: tr.Point(model.NewLocation(-195, 150, 25)),
		Unlock:        true,
		Extinguish:    true,
		ClearRadius:   25,
	}
}

var (
	anchor = model.NewLocation(500, 10, -300)
	raider = &model.Player{ID: 7, Name: "raider", Human: true}
)

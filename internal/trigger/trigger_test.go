package trigger

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/model"
	"github.com/udisondev/encounters/internal/npc"
	"github.com/udisondev/encounters/internal/reward"
	"github.com/udisondev/encounters/internal/world"
)

var launchSite = model.NewLocation(500, 0, 500)

type stack struct {
	world  *world.World
	npcs   *npc.Service
	engine *encounter.Engine
}

func newStack(t *testing.T) *stack {
	t.Helper()
	w := world.New(config.WorldConfig{
		MapSize: 2000,
		Seed:    1,
		Monuments: []config.MonumentPlacement{
			{Prefab: "assets/bundled/prefabs/autospawn/monument/large/launch_site_1.prefab", Position: config.Vector{X: 500, Z: 500}},
		},
	}, time.Second)
	svc := npc.NewService(config.NpcConfig{Enabled: true}, w)
	eng := encounter.NewEngine(encounter.DefaultOptions(), encounter.Deps{
		Npcs:       svc,
		World:      w,
		Rewards:    reward.NewLocker(w),
		Subscriber: w,
	})
	return &stack{world: w, npcs: svc, engine: eng}
}

type queuePoints []model.Location

func (q *queuePoints) Next() model.Location {
	if len(*q) == 0 {
		return model.Location{}
	}
	p := (*q)[0]
	*q = (*q)[1:]
	return p
}

func newDrops(s *stack, points ...model.Location) *Drops {
	q := queuePoints(points)
	return NewDrops(s.engine, &q, s.npcs, config.DefaultCrateEvents(), rand.New(rand.NewPCG(1, 2)))
}

func TestMonuments_BuildAfterDelay(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	m := NewMonuments(s.engine, s.world, s.npcs, config.DefaultMonumentEvents())
	m.Schedule(DefaultInitializeDelay)

	s.engine.Tick(5 * time.Second)
	assert.False(t, m.Built())

	s.engine.Tick(5 * time.Second)
	require.True(t, m.Built())
	assert.Equal(t, 1, m.Len())

	tuning, ok := m.Tuning(launchSite.Add(model.NewLocation(20, 5, 0)))
	require.True(t, ok)
	assert.Equal(t, VehicleTuning{Health: 1000, Crates: 4}, tuning)

	_, ok = m.Tuning(model.NewLocation(-500, 0, -500))
	assert.False(t, ok)
}

func TestMonuments_SkipsDisabledAndUnmatched(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	disabled := config.DefaultMonumentEvents()[0]
	disabled.Enabled = false
	missing := config.DefaultMonumentEvents()[0]
	missing.Name = "Dome"
	missing.Monument = "sphere_tank"
	broken := config.DefaultMonumentEvents()[0]
	broken.GuardAmount = 0

	m := NewMonuments(s.engine, s.world, s.npcs, []config.MonumentEvent{disabled, missing, broken})
	m.Build()
	assert.True(t, m.Built())
	assert.Zero(t, m.Len())
}

func TestMonuments_OnVehicleDestroyed(t *testing.T) {
	t.Parallel()

	raider := &model.Player{ID: 7, Name: "raider", Human: true}
	inside := launchSite.Add(model.NewLocation(20, 5, 0))

	tests := []struct {
		name    string
		pos     model.Location
		killer  *model.Player
		prepare func(*stack)
		want    int
	}{
		{name: "player kill inside zone", pos: inside, killer: raider, want: 1},
		{name: "no killer", pos: inside, want: 0},
		{name: "zero position", killer: raider, want: 0},
		{name: "outside zone", pos: model.NewLocation(-500, 0, -500), killer: raider, want: 0},
		{name: "npc service down", pos: inside, killer: raider, prepare: func(s *stack) { s.npcs.SetReady(false) }, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newStack(t)
			m := NewMonuments(s.engine, s.world, s.npcs, config.DefaultMonumentEvents())
			m.Build()
			if tt.prepare != nil {
				tt.prepare(s)
			}

			m.OnVehicleDestroyed(tt.pos, tt.killer)
			assert.Equal(t, tt.want, s.engine.ActiveCount())
		})
	}
}

func TestMonuments_OneEncounterPerZone(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	m := NewMonuments(s.engine, s.world, s.npcs, config.DefaultMonumentEvents())
	m.Build()

	raider := &model.Player{ID: 7, Human: true}
	m.OnVehicleDestroyed(launchSite.Add(model.NewLocation(20, 5, 0)), raider)
	m.OnVehicleDestroyed(launchSite.Add(model.NewLocation(-40, 5, 10)), raider)
	require.Equal(t, 1, s.engine.ActiveCount())

	inst := s.engine.Active()[0]
	assert.Equal(t, encounter.KindWreck, inst.Kind())
	assert.Equal(t, "Launch Site", inst.Name())

	// респаун техники внутри зоны сбрасывает событие
	m.OnVehicleSpawned(launchSite.Add(model.NewLocation(0, 5, 0)))
	assert.Zero(t, s.engine.ActiveCount())
	assert.Equal(t, encounter.StateEnded, inst.State())
}

func TestMonuments_WorldHooks(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	m := NewMonuments(s.engine, s.world, s.npcs, config.DefaultMonumentEvents())
	m.Build()
	s.world.SetHooks(world.Hooks{
		OnVehicleSpawned:   m.OnVehicleSpawned,
		OnVehicleDestroyed: m.OnVehicleDestroyed,
	})

	pos := launchSite.Add(model.NewLocation(30, 5, 0))
	tuning, ok := m.Tuning(pos)
	require.True(t, ok)
	id, err := s.world.SpawnVehicle("bradleyapc", pos, tuning.Health, tuning.Crates)
	require.NoError(t, err)

	dead, err := s.world.Damage(id, tuning.Health, &model.Player{ID: 3, Human: true})
	require.NoError(t, err)
	require.True(t, dead)
	assert.Equal(t, 1, s.engine.ActiveCount())
	assert.Equal(t, 4, s.world.CountKind(model.KindCrate))
}

func TestDrops_Start(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	p1 := model.NewLocation(100, 10, 100)
	p2 := model.NewLocation(-300, 10, 200)
	d := newDrops(s, p1, p2)

	inst, err := d.Start("hard")
	require.NoError(t, err)
	assert.Equal(t, "Hard", inst.Name())
	assert.Equal(t, encounter.KindDrop, inst.Kind())
	assert.Equal(t, p1, inst.Anchor())

	inst, err = d.Start("")
	require.NoError(t, err)
	assert.Equal(t, p2, inst.Anchor())
	assert.Contains(t, d.Names(), inst.Name())

	_, err = d.Start("")
	assert.ErrorIs(t, err, encounter.ErrSpawnPointExhausted)

	_, err = d.Start("legendary")
	assert.ErrorIs(t, err, encounter.ErrEventNotFound)
	assert.Equal(t, 2, s.engine.ActiveCount())
}

func TestDrops_StartSkipsIntersectingPoint(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	p1 := model.NewLocation(100, 10, 100)
	near := model.NewLocation(130, 10, 100)
	p2 := model.NewLocation(600, 10, -600)
	d := newDrops(s, p1, near, p2)

	_, err := d.Start("Easy")
	require.NoError(t, err)
	inst, err := d.Start("Easy")
	require.NoError(t, err)
	assert.Equal(t, p2, inst.Anchor())
}

func TestDrops_DisablesWithoutNpcs(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	d := newDrops(s, model.NewLocation(100, 10, 100))

	s.npcs.SetReady(false)
	_, err := d.Start("Easy")
	require.ErrorIs(t, err, encounter.ErrDependencyUnavailable)
	assert.True(t, d.Disabled())

	s.npcs.SetReady(true)
	_, err = d.Start("Easy")
	require.NoError(t, err)
	assert.False(t, d.Disabled())
}

func TestDrops_StartAt(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	d := newDrops(s)

	_, err := d.StartAt("Easy", model.Location{})
	assert.ErrorIs(t, err, encounter.ErrPositionInvalid)

	pos := model.NewLocation(-200, 5, -200)
	inst, err := d.StartAt("Easy", pos)
	require.NoError(t, err)
	assert.Equal(t, pos, inst.Anchor())

	_, err = d.StartAt("Medium", pos.Add(model.NewLocation(79, 0, 0)))
	assert.ErrorIs(t, err, encounter.ErrIntersecting)

	_, err = d.StartAt("Medium", pos.Add(model.NewLocation(81, 0, 0)))
	assert.NoError(t, err)

	_, err = d.StartAt("nope", pos)
	assert.ErrorIs(t, err, encounter.ErrEventNotFound)
}

func TestDrops_StopLeavesWrecks(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	d := newDrops(s, model.NewLocation(100, 10, 100), model.NewLocation(-300, 10, 200))
	m := NewMonuments(s.engine, s.world, s.npcs, config.DefaultMonumentEvents())
	m.Build()

	_, err := d.Start("")
	require.NoError(t, err)
	_, err = d.Start("")
	require.NoError(t, err)
	m.OnVehicleDestroyed(launchSite.Add(model.NewLocation(20, 5, 0)), &model.Player{ID: 1, Human: true})
	require.Equal(t, 3, s.engine.ActiveCount())

	assert.Equal(t, 2, d.Stop())
	require.Equal(t, 1, s.engine.ActiveCount())
	assert.Equal(t, encounter.KindWreck, s.engine.Active()[0].Kind())
	assert.Zero(t, d.Stop())
}

type syncLoop struct {
	mu     sync.Mutex
	engine *encounter.Engine
	calls  int
	closed bool
}

func (l *syncLoop) Submit(fn func(*encounter.Engine)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.calls++
	fn(l.engine)
	return true
}

func (l *syncLoop) snapshot() (calls, active int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls, l.engine.ActiveCount()
}

func TestDrops_RunAutoStart(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	d := newDrops(s, model.NewLocation(100, 10, 100))
	loop := &syncLoop{engine: s.engine}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.RunAutoStart(ctx, loop, 10*time.Millisecond) }()

	require.Eventually(t, func() bool {
		calls, _ := loop.snapshot()
		return calls >= 2
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	_, active := loop.snapshot()
	assert.Equal(t, 1, active, "second tick finds no spawn point")
}

func TestDrops_RunAutoStartLoopStopped(t *testing.T) {
	t.Parallel()

	s := newStack(t)
	d := newDrops(s)
	loop := &syncLoop{engine: s.engine, closed: true}

	err := d.RunAutoStart(context.Background(), loop, time.Millisecond)
	assert.ErrorIs(t, err, encounter.ErrLoopStopped)
}

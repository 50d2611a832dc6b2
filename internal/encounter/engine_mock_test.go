package encounter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/encounter"
	"github.com/udisondev/encounters/internal/encounter/mocks"
	"github.com/udisondev/encounters/internal/model"
)

// Полный цикл drop-события на gomock-коллабораторах: порядок стадий и
// побочные эффекты награды проверяются ожиданиями моков.
func TestEngine_DropLifecycleWithMocks(t *testing.T) {
	ctrl := gomock.NewController(t)

	npcs := mocks.NewMockNpcSpawner(ctrl)
	world := mocks.NewMockEntities(ctrl)
	rewards := mocks.NewMockRewardLocker(ctrl)
	clans := mocks.NewMockClanLookup(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	anchor := model.NewLocation(100, 20, 100)
	winner := &model.Player{ID: 9, Name: "sniper", Human: true}

	const (
		crateID = model.EntityID(1)
		planeID = model.EntityID(2)
	)

	npcs.EXPECT().Ready().Return(true).AnyTimes()

	var (
		next      = model.EntityID(100)
		positions []model.Location
	)
	npcs.EXPECT().
		SpawnGuard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(pos model.Location, profile config.GuardProfile) (model.EntityID, bool) {
			assert.Equal(t, "Ring Guard", profile.Name)
			next++
			positions = append(positions, pos)
			return next, true
		}).
		Times(4)

	gomock.InOrder(
		notifier.EXPECT().Broadcast("EventStart", "Ring", anchor.String(), "2m"),
		world.EXPECT().SpawnCrate(anchor.Add(model.Location{Y: 100}), 30.0, 0.0).Return(crateID),
		world.EXPECT().SpawnCargoPlane(anchor, 30*time.Second).Return(planeID),
		rewards.EXPECT().LockObjectiveToPlayer(crateID, winner),
		world.EXPECT().StartHacking(crateID),
		world.EXPECT().SetDecay(crateID, true),
		notifier.EXPECT().Broadcast("EventCompleted", "Ring", "sniper"),
		world.EXPECT().Alive(planeID).Return(true),
		world.EXPECT().Kill(planeID),
	)
	clans.EXPECT().ClanTag(uint64(9)).Return("", false).AnyTimes()

	e := encounter.NewEngine(encounter.DefaultOptions(), encounter.Deps{
		Npcs:     npcs,
		World:    world,
		Rewards:  rewards,
		Clans:    clans,
		Notifier: notifier,
	})

	def := encounter.Definition{
		Name:         "Ring",
		Kind:         encounter.KindDrop,
		Duration:     2 * time.Minute,
		GuardCount:   4,
		Guard:        config.GuardProfile{Name: "Ring Guard", Health: 100, Kits: []string{"k"}},
		LockToPlayer: true,
		AutoHack:     true,
		HackSeconds:  30,
		FlightTime:   30 * time.Second,
	}

	inst, err := e.RegisterTrigger(anchor, def)
	require.NoError(t, err)

	for range 15 {
		e.Tick(50 * time.Millisecond)
	}

	require.Len(t, positions, 4)
	for i, pos := range positions {
		assert.InDelta(t, 5, pos.Distance2D(anchor), 1e-6, "guard %d on the ring", i)
	}
	assert.InDelta(t, 10, positions[0].Distance2D(positions[2]), 1e-6, "opposite guards")

	for _, id := range inst.Squad().IDs() {
		e.OnChildEntityTerminated(id, winner)
	}
	assert.Equal(t, encounter.StateEnded, inst.State())
}

func TestEngine_SubscriberToggle(t *testing.T) {
	ctrl := gomock.NewController(t)

	npcs := mocks.NewMockNpcSpawner(ctrl)
	npcs.EXPECT().Ready().Return(true).AnyTimes()

	sub := &recordingSubscriber{}
	e := encounter.NewEngine(encounter.DefaultOptions(), encounter.Deps{
		Npcs:       npcs,
		World:      mocks.NewMockEntities(ctrl),
		Rewards:    mocks.NewMockRewardLocker(ctrl),
		Subscriber: sub,
	})

	def := encounter.Definition{
		Name:       "Quiet",
		Kind:       encounter.KindDrop,
		Duration:   time.Minute,
		GuardCount: 1,
		Guard:      config.GuardProfile{Name: "g", Health: 1, Kits: []string{"k"}},
	}

	_, err := e.RegisterTrigger(model.NewLocation(1, 0, 1), def)
	require.NoError(t, err)
	_, err = e.RegisterTrigger(model.NewLocation(500, 0, 500), def)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, sub.toggles)

	e.ShutdownAll()
	assert.Equal(t, []bool{true, false}, sub.toggles)

	_, err = e.RegisterTrigger(model.NewLocation(1, 0, 1), def)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, sub.toggles)
}

type recordingSubscriber struct {
	toggles []bool
}

func (s *recordingSubscriber) SetSubscribed(active bool) { s.toggles = append(s.toggles, active) }

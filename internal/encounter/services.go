package encounter

//go:generate go tool mockgen -destination=./mocks/services_mock.go -package=mocks . NpcSpawner,Entities,RewardLocker,ClanLookup,Notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

// NpcSpawner creates guards. It may become unavailable at runtime.
type NpcSpawner interface {
	Ready() bool
	SpawnGuard(pos model.Location, profile config.GuardProfile) (model.EntityID, bool)
}

// Entities is the host world surface the engine drives.
type Entities interface {
	SpawnMarker(pos model.Location, radius float64, color, label string) model.EntityID
	UpdateMarker(id model.EntityID, label string)
	SpawnCrate(pos model.Location, hackSeconds, fallDrag float64) model.EntityID
	FillLoot(crate model.EntityID, items []model.ItemStack)
	StartHacking(crate model.EntityID)
	SetDecay(crate model.EntityID, decay bool)
	SpawnCargoPlane(target model.Location, flight time.Duration) model.EntityID
	SpawnTransport(from, landing model.Location) model.EntityID
	DropSmoke(pos model.Location) model.EntityID
	UnlockCratesNear(pos model.Location, radius float64) int
	ExtinguishNear(pos model.Location, radius float64) int
	Alive(id model.EntityID) bool
	Kill(id model.EntityID)
}

// RewardLocker hands a finished objective to the winner.
type RewardLocker interface {
	LockObjectiveToPlayer(objective model.EntityID, player *model.Player)
}

// ClanLookup resolves the clan tag of a player. Optional.
type ClanLookup interface {
	ClanTag(playerID uint64) (string, bool)
}

// Notifier broadcasts a localized message key to all players.
type Notifier interface {
	Broadcast(key string, args ...any)
}

// Subscriber toggles the host death callbacks the engine listens to.
type Subscriber interface {
	SetSubscribed(active bool)
}

// Stepper is a time-sliced background job advanced once per frame.
type Stepper interface {
	Step()
}

// LootRoller produces the contents of a freshly spawned crate.
type LootRoller interface {
	Roll(table config.LootTable) []model.ItemStack
}

// Result is how an instance finished.
type Result string

const (
	ResultCompleted Result = "completed"
	ResultFailed    Result = "failed"
	ResultAborted   Result = "aborted"
)

// Outcome describes one finished instance.
type Outcome struct {
	InstanceID   uuid.UUID
	Name         string
	Kind         Kind
	Result       Result
	Anchor       model.Location
	WinnerID     uint64
	WinnerName   string
	GuardsTotal  int
	GuardsKilled int
	StartedAt    time.Time
	EndedAt      time.Time
}

// HistoryRecorder receives outcomes. Record must not block.
type HistoryRecorder interface {
	Record(o Outcome)
}

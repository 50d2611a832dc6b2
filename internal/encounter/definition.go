package encounter

import (
	"fmt"
	"strings"
	"time"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

// Kind selects the objective and delivery flavour of an encounter.
type Kind uint8

const (
	// KindDrop is a free-placement event: an airdropped crate guarded at a random spawn point.
	KindDrop Kind = iota + 1
	// KindWreck is a fixed-location event: a destroyed vehicle inside a monument zone.
	KindWreck
)

func (k Kind) String() string {
	switch k {
	case KindDrop:
		return "drop"
	case KindWreck:
		return "wreck"
	default:
		return "unknown"
	}
}

// ParseKind converts a String() value back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop":
		return KindDrop, nil
	case "wreck":
		return KindWreck, nil
	default:
		return 0, fmt.Errorf("unknown encounter kind %q", s)
	}
}

// Definition is the immutable snapshot an instance runs with.
// RegisterTrigger deep-copies it, so later edits never reach a live instance.
type Definition struct {
	Name       string
	Kind       Kind
	Duration   time.Duration
	GuardCount int
	Guard      config.GuardProfile

	// ResetTimerOnKill restarts the countdown every time a guard dies.
	ResetTimerOnKill bool

	// Drop objective.
	Marker          bool
	MarkerRadius    float64
	MarkerColor     string
	LockToPlayer    bool
	AutoHack        bool
	HackSeconds     float64
	EliminateGuards bool
	FlightTime      time.Duration
	FallDrag        float64
	Loot            config.LootTable

	// Wreck objective.
	Bounds        *model.Bounds
	Landing       model.Location
	TransportFrom model.Location
	Unlock        bool
	Extinguish    bool
	ClearRadius   float64
}

// Validate reports ErrConfigurationInvalid for definitions that cannot run.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is blank", ErrConfigurationInvalid)
	}
	if d.Kind != KindDrop && d.Kind != KindWreck {
		return fmt.Errorf("%w: %q has unknown kind %d", ErrConfigurationInvalid, d.Name, d.Kind)
	}
	if d.Duration <= 0 {
		return fmt.Errorf("%w: %q duration must be positive", ErrConfigurationInvalid, d.Name)
	}
	if d.GuardCount <= 0 {
		return fmt.Errorf("%w: %q guard count must be positive", ErrConfigurationInvalid, d.Name)
	}
	if err := d.Guard.Validate(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrConfigurationInvalid, d.Name, err)
	}
	if d.Kind == KindWreck && d.Bounds == nil {
		return fmt.Errorf("%w: %q wreck has no bounds", ErrConfigurationInvalid, d.Name)
	}
	return nil
}

// clone deep-copies the definition.
func (d Definition) clone() Definition {
	d.Guard = d.Guard.Clone()
	d.Loot = d.Loot.Clone()
	if d.Bounds != nil {
		b := *d.Bounds
		d.Bounds = &b
	}
	return d
}

// DropDefinition builds a free-placement definition from a crate event entry.
func DropDefinition(ev config.CrateEvent) Definition {
	ev = ev.Clone()
	return Definition{
		Name:             ev.Name,
		Kind:             KindDrop,
		Duration:         ev.Duration,
		GuardCount:       ev.GuardAmount,
		Guard:            ev.Guard,
		ResetTimerOnKill: ev.ResetTimerOnKill,
		Marker:           ev.EnableMarker,
		MarkerRadius:     ev.MarkerRadius,
		MarkerColor:      ev.MarkerColor,
		LockToPlayer:     ev.EnableLockToPlayer,
		AutoHack:         ev.EnableAutoHack,
		HackSeconds:      ev.HackSeconds,
		EliminateGuards:  ev.EnableEliminateGuards,
		FlightTime:       ev.FlightTime,
		FallDrag:         ev.FallDrag,
		Loot:             ev.Loot,
	}
}

// WreckDefinition builds a fixed-location definition for a monument placed at tr.
func WreckDefinition(ev config.MonumentEvent, tr model.Transform) Definition {
	ev = ev.Clone()
	bounds := model.NewBounds(tr, ev.BoundsCenter.Location(), ev.BoundsSize.Location())
	return Definition{
		Name:             ev.Name,
		Kind:             KindWreck,
		Duration:         ev.Duration,
		GuardCount:       ev.GuardAmount,
		Guard:            ev.Guard,
		ResetTimerOnKill: ev.ResetTimerOnKill,
		Bounds:           &bounds,
		Landing:          tr.Point(ev.LandingPosition.Location()),
		TransportFrom:    tr.Point(ev.TransportPosition.Location()),
		Unlock:           ev.EnableUnlocking,
		Extinguish:       ev.EnableExtinguish,
		ClearRadius:      ev.ClearRadius,
	}
}

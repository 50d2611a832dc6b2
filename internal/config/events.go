package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/udisondev/encounters/internal/model"
)

// Vector is a YAML-friendly position.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Location converts the vector to a model.Location.
func (v Vector) Location() model.Location {
	return model.NewLocation(v.X, v.Y, v.Z)
}

// ItemConfig is one item handed to a guard.
type ItemConfig struct {
	ShortName string `yaml:"short_name"`
	Amount    int    `yaml:"amount"`
	SkinID    uint64 `yaml:"skin_id"`
}

// GuardProfile is the behaviour and loadout blob passed to the NPC spawn service.
type GuardProfile struct {
	Name                  string       `yaml:"name"`
	Health                float64      `yaml:"health"`
	RoamRange             float64      `yaml:"roam_range"`
	ChaseRange            float64      `yaml:"chase_range"`
	SenseRange            float64      `yaml:"sense_range"`
	AttackRangeMultiplier float64      `yaml:"attack_range_multiplier"`
	CheckVisionCone       bool         `yaml:"check_vision_cone"`
	VisionCone            float64      `yaml:"vision_cone"`
	DamageScale           float64      `yaml:"damage_scale"`
	AimConeScale          float64      `yaml:"aim_cone_scale"`
	Speed                 float64      `yaml:"speed"`
	MemoryDuration        float64      `yaml:"memory_duration"`
	DisableRadio          bool         `yaml:"disable_radio"`
	Stationary            bool         `yaml:"stationary"`
	CanRunAwayWater       bool         `yaml:"can_run_away_water"`
	Kits                  []string     `yaml:"kits"`
	WearItems             []ItemConfig `yaml:"wear_items"`
	BeltItems             []ItemConfig `yaml:"belt_items"`
}

// Clone returns a deep copy.
func (g GuardProfile) Clone() GuardProfile {
	g.Kits = slices.Clone(g.Kits)
	g.WearItems = slices.Clone(g.WearItems)
	g.BeltItems = slices.Clone(g.BeltItems)
	return g
}

// Validate checks the profile is usable by the NPC spawn service.
func (g GuardProfile) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("guard profile name is blank")
	}
	if g.Health <= 0 {
		return fmt.Errorf("guard profile %q: health must be positive", g.Name)
	}
	if len(g.WearItems) == 0 && len(g.Kits) == 0 {
		return fmt.Errorf("guard profile %q: no wear items or kits", g.Name)
	}
	if len(g.BeltItems) == 0 && len(g.Kits) == 0 {
		return fmt.Errorf("guard profile %q: no belt items or kits", g.Name)
	}
	return nil
}

// LootItem is one loot table entry.
type LootItem struct {
	ShortName string `yaml:"short_name"`
	MinAmount int    `yaml:"min_amount"`
	MaxAmount int    `yaml:"max_amount"`
	SkinID    uint64 `yaml:"skin_id"`
}

// LootTable controls custom crate contents.
type LootTable struct {
	Enabled  bool       `yaml:"enabled"`
	MinItems int        `yaml:"min_items"`
	MaxItems int        `yaml:"max_items"`
	Items    []LootItem `yaml:"items"`
}

// Clone returns a deep copy.
func (l LootTable) Clone() LootTable {
	l.Items = slices.Clone(l.Items)
	return l
}

// CrateEvent is a free-placement (airdropped crate) event definition.
type CrateEvent struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`

	GuardAmount int          `yaml:"guard_amount"`
	Guard       GuardProfile `yaml:"guard"`

	EnableMarker bool    `yaml:"enable_marker"`
	MarkerRadius float64 `yaml:"marker_radius"`
	MarkerColor  string  `yaml:"marker_color"`

	EnableLockToPlayer    bool    `yaml:"enable_lock_to_player"`
	EnableAutoHack        bool    `yaml:"enable_auto_hack"`
	HackSeconds           float64 `yaml:"hack_seconds"`
	EnableEliminateGuards bool    `yaml:"enable_eliminate_guards"`
	ResetTimerOnKill      bool    `yaml:"reset_timer_on_kill"`

	FlightTime time.Duration `yaml:"flight_time"`
	FallDrag   float64       `yaml:"fall_drag"`

	Loot LootTable `yaml:"loot"`
}

// Validate checks the entry can start an encounter.
func (e CrateEvent) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("crate event name is blank")
	}
	if e.Duration <= 0 {
		return fmt.Errorf("crate event %q: duration must be positive", e.Name)
	}
	if e.GuardAmount <= 0 {
		return fmt.Errorf("crate event %q: guard_amount must be positive", e.Name)
	}
	if err := e.Guard.Validate(); err != nil {
		return fmt.Errorf("crate event %q: %w", e.Name, err)
	}
	return nil
}

// Clone returns a deep copy.
func (e CrateEvent) Clone() CrateEvent {
	e.Guard = e.Guard.Clone()
	e.Loot = e.Loot.Clone()
	return e
}

// MonumentEvent is a fixed-location (wreck at a monument) event definition.
type MonumentEvent struct {
	Name     string `yaml:"name"`
	Monument string `yaml:"monument"` // prefab path fragment
	Enabled  bool   `yaml:"enabled"`

	BoundsCenter      Vector  `yaml:"bounds_center"`
	BoundsSize        Vector  `yaml:"bounds_size"`
	LandingPosition   Vector  `yaml:"landing_position"`
	LandingYaw        float64 `yaml:"landing_yaw"`
	TransportPosition Vector  `yaml:"transport_position"`

	Duration    time.Duration `yaml:"duration"`
	GuardAmount int           `yaml:"guard_amount"`
	Guard       GuardProfile  `yaml:"guard"`

	CrateAmount      int     `yaml:"crate_amount"`
	VehicleHealth    float64 `yaml:"vehicle_health"`
	EnableUnlocking  bool    `yaml:"enable_unlocking"`
	EnableExtinguish bool    `yaml:"enable_extinguish"`
	ClearRadius      float64 `yaml:"clear_radius"`
	ResetTimerOnKill bool    `yaml:"reset_timer_on_kill"`
}

// Validate checks the entry can start an encounter.
func (e MonumentEvent) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("monument event name is blank")
	}
	if e.Monument == "" {
		return fmt.Errorf("monument event %q: monument prefab is blank", e.Name)
	}
	if e.Duration <= 0 {
		return fmt.Errorf("monument event %q: duration must be positive", e.Name)
	}
	if e.GuardAmount <= 0 {
		return fmt.Errorf("monument event %q: guard_amount must be positive", e.Name)
	}
	if e.BoundsSize.X <= 0 || e.BoundsSize.Y <= 0 || e.BoundsSize.Z <= 0 {
		return fmt.Errorf("monument event %q: bounds_size must be positive", e.Name)
	}
	if err := e.Guard.Validate(); err != nil {
		return fmt.Errorf("monument event %q: %w", e.Name, err)
	}
	return nil
}

// Clone returns a deep copy.
func (e MonumentEvent) Clone() MonumentEvent {
	e.Guard = e.Guard.Clone()
	return e
}

func defaultGuard(name string) GuardProfile {
	return GuardProfile{
		Name:                  name,
		Health:                200,
		RoamRange:             20,
		ChaseRange:            100,
		SenseRange:            50,
		AttackRangeMultiplier: 1,
		CheckVisionCone:       false,
		VisionCone:            135,
		DamageScale:           1,
		AimConeScale:          1,
		Speed:                 7.5,
		MemoryDuration:        30,
		DisableRadio:          true,
		WearItems: []ItemConfig{
			{ShortName: "hazmatsuit.spacesuit", Amount: 1},
		},
		BeltItems: []ItemConfig{
			{ShortName: "rifle.ak", Amount: 1},
			{ShortName: "syringe.medical", Amount: 5},
		},
	}
}

// DefaultCrateEvents returns the stock crate difficulty tiers.
func DefaultCrateEvents() []CrateEvent {
	tier := func(name string, duration time.Duration, guards int, health float64) CrateEvent {
		g := defaultGuard(name + " Guard")
		g.Health = health
		return CrateEvent{
			Name:                  name,
			Duration:              duration,
			GuardAmount:           guards,
			Guard:                 g,
			EnableMarker:          true,
			MarkerRadius:          0.5,
			MarkerColor:           "#e6a117",
			EnableLockToPlayer:    true,
			EnableAutoHack:        true,
			HackSeconds:           60,
			EnableEliminateGuards: true,
			ResetTimerOnKill:      true,
			FlightTime:            30 * time.Second,
			FallDrag:              0.6,
			Loot: LootTable{
				MinItems: 6,
				MaxItems: 12,
			},
		}
	}
	return []CrateEvent{
		tier("Easy", 20*time.Minute, 8, 175),
		tier("Medium", 25*time.Minute, 10, 200),
		tier("Hard", 30*time.Minute, 12, 250),
		tier("Elite", 35*time.Minute, 14, 300),
	}
}

// DefaultMonumentEvents returns the stock Launch Site wreck event.
func DefaultMonumentEvents() []MonumentEvent {
	return []MonumentEvent{
		{
			Name:              "Launch Site",
			Monument:          "launch_site",
			Enabled:           true,
			BoundsSize:        Vector{X: 580, Y: 280, Z: 300},
			LandingPosition:   Vector{X: 152.3, Y: 3, Z: 0},
			LandingYaw:        90,
			TransportPosition: Vector{X: -195, Y: 150, Z: 25},
			Duration:          20 * time.Minute,
			GuardAmount:       10,
			Guard:             defaultGuard("Launch Site Guard"),
			CrateAmount:       4,
			VehicleHealth:     1000,
			EnableUnlocking:   true,
			EnableExtinguish:  true,
			ClearRadius:       25,
		},
	}
}

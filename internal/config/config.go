package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/encounters/internal/model"
)

// Encounters holds all configuration for the encounter daemon.
type Encounters struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Engine heartbeat
	Engine EngineConfig `yaml:"engine"`

	// Periodic free-placement events
	AutoStart AutoStartConfig `yaml:"auto_start"`

	Messages    MessageConfig     `yaml:"messages"`
	ZoneManager ZoneManagerConfig `yaml:"zone_manager"`

	// Biomes a free-placement objective may not land on
	BlockedBiomes []string `yaml:"blocked_biomes"`

	SpawnFinder SpawnFinderConfig `yaml:"spawn_finder"`
	Npc         NpcConfig         `yaml:"npc"`
	Notify      NotifyConfig      `yaml:"notify"`
	World       WorldConfig       `yaml:"world"`

	CrateEvents    []CrateEvent    `yaml:"crate_events"`
	MonumentEvents []MonumentEvent `yaml:"monument_events"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"` // 0 = pgxpool default

	// DSNOverride replaces the composed DSN when set (env ENCOUNTERS_DATABASE_DSN).
	DSNOverride string `yaml:"dsn"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// EngineConfig controls the engine loop.
type EngineConfig struct {
	FrameInterval   time.Duration `yaml:"frame_interval"`
	ThinkInterval   time.Duration `yaml:"think_interval"`
	InitializeDelay time.Duration `yaml:"initialize_delay"` // monument table build delay
	IntersectRadius float64       `yaml:"intersect_radius"`
	HistoryQueue    int           `yaml:"history_queue"`
}

// AutoStartConfig controls periodic free-placement events.
type AutoStartConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// MessageConfig mirrors the announcement channels.
type MessageConfig struct {
	EnableChat         bool   `yaml:"enable_chat"`
	ChatPrefix         string `yaml:"chat_prefix"`
	ChatIcon           uint64 `yaml:"chat_icon"`
	EnableToast        bool   `yaml:"enable_toast"`
	EnableAnnouncement bool   `yaml:"enable_announcement"`
	EnableClanTag      bool   `yaml:"enable_clan_tag"`
}

// ZoneManagerConfig lists zones free-placement events must avoid.
type ZoneManagerConfig struct {
	Enabled      bool     `yaml:"enabled"`
	IgnoredZones []string `yaml:"ignored_zones"`
}

// SpawnFinderConfig tunes the spawn point search.
type SpawnFinderConfig struct {
	Target            int      `yaml:"target"`
	MaxAttempts       int      `yaml:"max_attempts"`
	Batch             int      `yaml:"batch"`
	LowWater          int      `yaml:"low_water"`
	ProbeHeight       float64  `yaml:"probe_height"`
	ClusterRadius     float64  `yaml:"cluster_radius"`
	ColliderRadius    float64  `yaml:"collider_radius"`
	PlayerRadius      float64  `yaml:"player_radius"`
	StructureRadius   float64  `yaml:"structure_radius"`
	HazardNames       []string `yaml:"hazard_names"`
	BlockedTopologies []string `yaml:"blocked_topologies"`
}

// NpcConfig controls the guard spawn service.
type NpcConfig struct {
	Enabled   bool `yaml:"enabled"`
	MaxGuards int  `yaml:"max_guards"` // 0 = unlimited
}

// NotifyConfig controls the observer websocket and the message locale.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Locale  string `yaml:"locale"`
}

// WorldConfig describes the reference world hosted by the daemon.
type WorldConfig struct {
	MapSize   float64             `yaml:"map_size"`
	Seed      int64               `yaml:"seed"`
	SeaLevel  float64             `yaml:"sea_level"`
	Monuments []MonumentPlacement `yaml:"monuments"`
	Zones     []ZoneDef           `yaml:"zones"`
	Clans     []ClanDef           `yaml:"clans"`
}

// ZoneDef is a named cylinder zone in the reference world.
type ZoneDef struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Center Vector  `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

// ClanDef seeds the clan tag registry.
type ClanDef struct {
	Tag     string   `yaml:"tag"`
	Members []uint64 `yaml:"members"`
}

// MonumentPlacement puts a monument prefab into the reference world.
type MonumentPlacement struct {
	Prefab   string  `yaml:"prefab"`
	Position Vector  `yaml:"position"`
	Yaw      float64 `yaml:"yaw"`
}

// envOverrides are applied after the YAML file.
type envOverrides struct {
	LogLevel    string `env:"ENCOUNTERS_LOG_LEVEL"`
	DatabaseDSN string `env:"ENCOUNTERS_DATABASE_DSN"`
	NotifyAddr  string `env:"ENCOUNTERS_NOTIFY_ADDR"`
	AutoStart   *bool  `env:"ENCOUNTERS_AUTO_START"`
}

// DefaultEncounters returns Encounters config with sensible defaults.
func DefaultEncounters() Encounters {
	return Encounters{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "encounters",
			DBName:   "encounters",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Engine: EngineConfig{
			FrameInterval:   50 * time.Millisecond,
			ThinkInterval:   time.Second,
			InitializeDelay: 10 * time.Second,
			IntersectRadius: 80,
			HistoryQueue:    256,
		},
		AutoStart: AutoStartConfig{
			Enabled:  true,
			Interval: time.Hour,
		},
		Messages: MessageConfig{
			EnableChat:         true,
			ChatPrefix:         "<color=#e6a117>[Guarded Crate]</color>",
			EnableToast:        false,
			EnableAnnouncement: false,
			EnableClanTag:      true,
		},
		BlockedBiomes: []string{"Arctic"},
		SpawnFinder:   DefaultSpawnFinder(),
		Npc:           NpcConfig{Enabled: true, MaxGuards: 200},
		Notify: NotifyConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8088",
			Locale:  "en-US",
		},
		World: WorldConfig{
			MapSize:  4000,
			Seed:     1,
			SeaLevel: 0,
			Monuments: []MonumentPlacement{
				{Prefab: "assets/bundled/prefabs/autospawn/monument/large/launch_site_1.prefab", Position: Vector{X: 800, Y: 5, Z: -900}},
			},
		},
		CrateEvents:    DefaultCrateEvents(),
		MonumentEvents: DefaultMonumentEvents(),
	}
}

// DefaultSpawnFinder returns the search tuning used by GuardedCrate-style drops.
func DefaultSpawnFinder() SpawnFinderConfig {
	return SpawnFinderConfig{
		Target:          100,
		MaxAttempts:     10000,
		Batch:           10,
		LowWater:        2,
		ProbeHeight:     100,
		ClusterRadius:   10,
		ColliderRadius:  15,
		PlayerRadius:    100,
		StructureRadius: 100,
		HazardNames:     []string{"radiation", "rock", "cliff", "fireball", "iceberg", "ice_sheet"},
		BlockedTopologies: []string{
			"Cliffside", "Cliff", "Lake", "Ocean", "Monument", "Building", "Offshore", "River", "Swamp",
		},
	}
}

// LoadEncounters loads Encounters config from a YAML file, then applies env overrides.
// Returns default config if file does not exist.
func LoadEncounters(path string) (Encounters, error) {
	cfg := DefaultEncounters()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	cfg.dropInvalidEvents()

	return cfg, nil
}

func applyEnv(cfg *Encounters) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.DatabaseDSN != "" {
		cfg.Database.Enabled = true
		cfg.Database.DSNOverride = o.DatabaseDSN
	}
	if o.NotifyAddr != "" {
		cfg.Notify.Addr = o.NotifyAddr
	}
	if o.AutoStart != nil {
		cfg.AutoStart.Enabled = *o.AutoStart
	}
	return nil
}

// validate rejects settings the engine cannot run with.
func (c *Encounters) validate() error {
	if _, err := model.ParseBiomes(c.BlockedBiomes); err != nil {
		return fmt.Errorf("blocked_biomes: %w", err)
	}
	if _, err := model.ParseTopologies(c.SpawnFinder.BlockedTopologies); err != nil {
		return fmt.Errorf("spawn_finder.blocked_topologies: %w", err)
	}
	if c.Engine.FrameInterval <= 0 {
		return fmt.Errorf("engine.frame_interval must be positive, got %s", c.Engine.FrameInterval)
	}
	if c.Engine.ThinkInterval <= 0 {
		return fmt.Errorf("engine.think_interval must be positive, got %s", c.Engine.ThinkInterval)
	}
	if c.AutoStart.Enabled && c.AutoStart.Interval <= 0 {
		return fmt.Errorf("auto_start.interval must be positive, got %s", c.AutoStart.Interval)
	}
	if c.SpawnFinder.Batch <= 0 || c.SpawnFinder.Target <= 0 || c.SpawnFinder.MaxAttempts <= 0 {
		return fmt.Errorf("spawn_finder: batch, target and max_attempts must be positive")
	}
	return nil
}

// dropInvalidEvents skips event entries that fail validation.
func (c *Encounters) dropInvalidEvents() {
	crates := c.CrateEvents[:0]
	for _, ev := range c.CrateEvents {
		if err := ev.Validate(); err != nil {
			slog.Warn("skip crate event", "name", ev.Name, "error", err)
			continue
		}
		crates = append(crates, ev)
	}
	c.CrateEvents = crates

	monuments := c.MonumentEvents[:0]
	for _, ev := range c.MonumentEvents {
		if err := ev.Validate(); err != nil {
			slog.Warn("skip monument event", "name", ev.Name, "error", err)
			continue
		}
		monuments = append(monuments, ev)
	}
	c.MonumentEvents = monuments
}

// BlockedBiomeMask returns the parsed blocked biome mask.
func (c *Encounters) BlockedBiomeMask() model.Biome {
	mask, _ := model.ParseBiomes(c.BlockedBiomes)
	return mask
}

// BlockedTopologyMask returns the parsed blocked topology mask.
func (c *Encounters) BlockedTopologyMask() model.Topology {
	mask, _ := model.ParseTopologies(c.SpawnFinder.BlockedTopologies)
	return mask
}

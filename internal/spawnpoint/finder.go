// Package spawnpoint ищет точки для событий со свободным размещением.
//
// Поиск разбит на кадры: Step делает не больше Batch попыток, поэтому
// вызывается из heartbeat движка и не блокирует игровой цикл.
package spawnpoint

import (
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

// Collider is static geometry returned by Terrain.CollidersNear.
type Collider struct {
	Name string
	Info model.ColliderInfo
}

// Terrain answers the physical questions the search asks about the map.
type Terrain interface {
	// MapSize is the edge length of the square map centred on the origin.
	MapSize() float64
	// Surface returns the higher of the water and terrain heights at (x, z).
	Surface(x, z float64) float64
	// Probe casts a ray straight down from `from` and returns the hit point.
	Probe(from model.Location, distance float64) (model.Location, bool)
	InsideGeometry(p model.Location) bool
	Underwater(p model.Location) bool
	Topology(p model.Location) model.Topology
	Biome(p model.Location) model.Biome
	CollidersNear(p model.Location, radius float64) []Collider
	PlayersNear(p model.Location, radius float64) []*model.Player
	StructuresNear(p model.Location, radius float64) int
}

// ZoneQuery resolves zone ids into cylinders on the ground plane.
type ZoneQuery interface {
	ZoneIDs() []string
	ZoneLocation(id string) (model.Location, bool)
	ZoneRadius(id string) float64
}

// Options tunes the finder.
type Options struct {
	config.SpawnFinderConfig

	BlockedBiomes     model.Biome
	BlockedTopologies model.Topology

	// IgnoredZones are zone ids to avoid. Nil or empty disables the check.
	IgnoredZones []string
}

// OptionsFromConfig collects finder options from the loaded configuration.
func OptionsFromConfig(cfg *config.Encounters) Options {
	opts := Options{
		SpawnFinderConfig: cfg.SpawnFinder,
		BlockedBiomes:     cfg.BlockedBiomeMask(),
		BlockedTopologies: cfg.BlockedTopologyMask(),
	}
	if cfg.ZoneManager.Enabled {
		opts.IgnoredZones = append([]string(nil), cfg.ZoneManager.IgnoredZones...)
	}
	return opts
}

type zone struct {
	center   model.Location
	radiusSq float64
}

// Finder accumulates validated candidates in a FIFO queue.
// Не потокобезопасен: все вызовы идут из цикла движка.
type Finder struct {
	opts    Options
	terrain Terrain
	zones   ZoneQuery
	rng     *rand.Rand

	queue     []model.Location
	searching bool
	attempts  int
	ignored   []zone
	zonesRead bool
}

// NewFinder creates a finder. zones may be nil; rng may be nil for a random seed.
func NewFinder(opts Options, terrain Terrain, zones ZoneQuery, rng *rand.Rand) *Finder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Batch <= 0 {
		opts.Batch = 1
	}
	return &Finder{
		opts:    opts,
		terrain: terrain,
		zones:   zones,
		rng:     rng,
	}
}

// Start begins a search pass unless one is already running.
func (f *Finder) Start() {
	if f.searching {
		return
	}
	f.searching = true
	f.attempts = 0
	f.zonesRead = false
	slog.Debug("spawn point search started", "queued", len(f.queue), "target", f.opts.Target)
}

// Step performs one slice of the current pass. No-op when idle.
func (f *Finder) Step() {
	if !f.searching {
		return
	}
	if !f.zonesRead {
		f.refreshIgnoredZones()
		f.zonesRead = true
		return
	}

	for range f.opts.Batch {
		if len(f.queue) >= f.opts.Target || f.attempts >= f.opts.MaxAttempts {
			f.finish()
			return
		}
		f.attempts++
		if p, ok := f.attempt(); ok {
			f.queue = append(f.queue, p)
		}
	}
	if len(f.queue) >= f.opts.Target || f.attempts >= f.opts.MaxAttempts {
		f.finish()
	}
}

func (f *Finder) finish() {
	f.searching = false
	slog.Info("spawn point search finished", "found", len(f.queue), "attempts", f.attempts)
}

// Next pops the first candidate that is still valid.
//
// When the finder is idle and at most LowWater candidates remain, a new pass
// is started and the zero location is returned: the caller retries later.
func (f *Finder) Next() model.Location {
	if !f.searching && len(f.queue) <= f.opts.LowWater {
		f.Start()
		return model.Location{}
	}
	for len(f.queue) > 0 {
		p := f.queue[0]
		f.queue = f.queue[1:]
		if f.stillValid(p) {
			return p
		}
	}
	return model.Location{}
}

// Len returns the number of queued candidates.
func (f *Finder) Len() int { return len(f.queue) }

// Searching reports whether a pass is in progress.
func (f *Finder) Searching() bool { return f.searching }

// Reset drops the queue and stops any running pass.
func (f *Finder) Reset() {
	f.queue = nil
	f.searching = false
	f.attempts = 0
	f.ignored = nil
	f.zonesRead = false
}

func (f *Finder) refreshIgnoredZones() {
	f.ignored = f.ignored[:0]
	if f.zones == nil || len(f.opts.IgnoredZones) == 0 {
		return
	}
	wanted := make(map[string]struct{}, len(f.opts.IgnoredZones))
	for _, id := range f.opts.IgnoredZones {
		wanted[id] = struct{}{}
	}
	for _, id := range f.zones.ZoneIDs() {
		if _, ok := wanted[id]; !ok {
			continue
		}
		center, ok := f.zones.ZoneLocation(id)
		if !ok {
			continue
		}
		r := f.zones.ZoneRadius(id)
		f.ignored = append(f.ignored, zone{center: center, radiusSq: r * r})
	}
	slog.Debug("ignored zones refreshed", "count", len(f.ignored))
}

// attempt samples one random point and runs the full rejection chain.
func (f *Finder) attempt() (model.Location, bool) {
	half := f.terrain.MapSize() / 2
	x := (f.rng.Float64()*2 - 1) * half
	z := (f.rng.Float64()*2 - 1) * half
	p := model.NewLocation(x, f.terrain.Surface(x, z), z)

	hit, ok := f.terrain.Probe(p.WithY(p.Y+f.opts.ProbeHeight), f.opts.ProbeHeight)
	if !ok {
		return model.Location{}, false
	}
	p = hit

	switch {
	case f.terrain.InsideGeometry(p):
		return model.Location{}, false
	case f.clustered(p):
		return model.Location{}, false
	case f.inIgnoredZone(p):
		return model.Location{}, false
	case f.terrain.Topology(p)&f.opts.BlockedTopologies != 0:
		return model.Location{}, false
	case f.opts.BlockedBiomes != 0 && f.terrain.Biome(p)&f.opts.BlockedBiomes != 0:
		return model.Location{}, false
	}
	return p, f.stillValid(p)
}

// stillValid re-checks the predicates that change over time.
func (f *Finder) stillValid(p model.Location) bool {
	if f.terrain.Underwater(p) {
		return false
	}
	if f.hazardNear(p) {
		return false
	}
	for _, pl := range f.terrain.PlayersNear(p, f.opts.PlayerRadius) {
		if pl.IsAwakeHuman() {
			return false
		}
	}
	return f.terrain.StructuresNear(p, f.opts.StructureRadius) == 0
}

func (f *Finder) clustered(p model.Location) bool {
	limit := f.opts.ClusterRadius * f.opts.ClusterRadius
	for _, q := range f.queue {
		if q.Distance2DSquared(p) <= limit {
			return true
		}
	}
	return false
}

func (f *Finder) inIgnoredZone(p model.Location) bool {
	for _, z := range f.ignored {
		if z.center.Distance2DSquared(p) <= z.radiusSq {
			return true
		}
	}
	return false
}

func (f *Finder) hazardNear(p model.Location) bool {
	for _, c := range f.terrain.CollidersNear(p, f.opts.ColliderRadius) {
		if blockedLayer(c.Info.Layer) || c.Info.SafeZone {
			return true
		}
		name := strings.ToLower(c.Name)
		for _, h := range f.opts.HazardNames {
			if strings.Contains(name, strings.ToLower(h)) {
				return true
			}
		}
	}
	return false
}

func blockedLayer(l model.Layer) bool {
	switch l {
	case model.LayerPreventBuilding, model.LayerVehicleDetailed, model.LayerVehicleWorld, model.LayerVehicleLarge:
		return true
	default:
		return false
	}
}

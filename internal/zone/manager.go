package zone

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

const gridSize = 512.0 // мировые единицы на ячейку сетки

type gridKey struct {
	gx, gz int32
}

// Manager holds all zones with a grid index for point lookups.
// Заполняется при старте и дальше только читается.
type Manager struct {
	zones []*Zone
	byID  map[string]*Zone
	grid  map[gridKey][]*Zone
}

// NewManager creates a new empty zone manager.
func NewManager() *Manager {
	return &Manager{
		byID: make(map[string]*Zone),
		grid: make(map[gridKey][]*Zone),
	}
}

// Load adds zones from the world configuration.
func (m *Manager) Load(defs []config.ZoneDef) error {
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("load zones: zone %q has no id", d.Name)
		}
		if d.Radius <= 0 {
			slog.Warn("skip zone with non-positive radius", "id", d.ID, "radius", d.Radius)
			continue
		}
		if err := m.Add(New(d.ID, d.Name, d.Center.Location(), d.Radius)); err != nil {
			return fmt.Errorf("load zones: %w", err)
		}
	}

	slog.Info("zone manager initialized",
		"zones", len(m.zones),
		"grid_cells", len(m.grid),
	)
	return nil
}

// Add registers a zone. Duplicate ids are rejected.
func (m *Manager) Add(z *Zone) error {
	if _, ok := m.byID[z.id]; ok {
		return fmt.Errorf("duplicate zone id %q", z.id)
	}
	m.zones = append(m.zones, z)
	m.byID[z.id] = z

	gxMin, gxMax := cell(z.center.X-z.radius), cell(z.center.X+z.radius)
	gzMin, gzMax := cell(z.center.Z-z.radius), cell(z.center.Z+z.radius)
	for gx := gxMin; gx <= gxMax; gx++ {
		for gz := gzMin; gz <= gzMax; gz++ {
			key := gridKey{gx: gx, gz: gz}
			m.grid[key] = append(m.grid[key], z)
		}
	}
	return nil
}

// ZonesAt returns all zones containing p.
func (m *Manager) ZonesAt(p model.Location) []*Zone {
	var result []*Zone
	for _, z := range m.grid[gridKey{gx: cell(p.X), gz: cell(p.Z)}] {
		if z.Contains(p) {
			result = append(result, z)
		}
	}
	return result
}

// Zone returns a zone by id, or nil if not found.
func (m *Manager) Zone(id string) *Zone {
	return m.byID[id]
}

// ZoneIDs returns all zone ids in sorted order.
func (m *Manager) ZoneIDs() []string {
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ZoneLocation returns the zone center.
func (m *Manager) ZoneLocation(id string) (model.Location, bool) {
	z, ok := m.byID[id]
	if !ok {
		return model.Location{}, false
	}
	return z.center, true
}

// ZoneRadius returns the zone radius, 0 for unknown ids.
func (m *Manager) ZoneRadius(id string) float64 {
	if z, ok := m.byID[id]; ok {
		return z.radius
	}
	return 0
}

// Len returns the number of zones.
func (m *Manager) Len() int { return len(m.zones) }

func cell(v float64) int32 {
	return int32(math.Floor(v / gridSize))
}

package world

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/encounters/internal/model"
)

// Heightmap is a deterministic procedural terrain.
// Высота — сумма нескольких синусоид с фазами из seed.
type Heightmap struct {
	mapSize  float64
	seaLevel float64
	phase    [4]float64
}

// NewHeightmap creates a heightmap for a square map.
func NewHeightmap(mapSize, seaLevel float64, seed int64) *Heightmap {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	h := &Heightmap{mapSize: mapSize, seaLevel: seaLevel}
	for i := range h.phase {
		h.phase[i] = rng.Float64() * 2 * math.Pi
	}
	return h
}

// Height returns the terrain height at (x, z).
// Ближе к краю карты рельеф уходит под воду.
func (h *Heightmap) Height(x, z float64) float64 {
	base := 20 +
		15*math.Sin(x/300+h.phase[0])*math.Cos(z/260+h.phase[1]) +
		6*math.Sin((x-z)/90+h.phase[2])

	half := h.mapSize / 2
	edge := max(math.Abs(x), math.Abs(z)) / half
	if edge > 0.85 {
		base -= (edge - 0.85) * 400
	}
	return base
}

// Slope returns the gradient magnitude at (x, z).
func (h *Heightmap) Slope(x, z float64) float64 {
	const d = 1.0
	dx := (h.Height(x+d, z) - h.Height(x-d, z)) / (2 * d)
	dz := (h.Height(x, z+d) - h.Height(x, z-d)) / (2 * d)
	return math.Hypot(dx, dz)
}

// Surface returns the higher of the water and terrain heights.
func (h *Heightmap) Surface(x, z float64) float64 {
	return max(h.Height(x, z), h.seaLevel)
}

// WaterDepth returns the water column above the terrain at (x, z).
func (h *Heightmap) WaterDepth(x, z float64) float64 {
	return max(h.seaLevel-h.Height(x, z), 0)
}

// Topology classifies the terrain at p. Monument flags are added by the world.
func (h *Heightmap) Topology(p model.Location) model.Topology {
	height := h.Height(p.X, p.Z)
	switch {
	case height < h.seaLevel-20:
		return model.TopologyOcean | model.TopologyOffshore
	case height < h.seaLevel:
		return model.TopologyOcean
	case height < h.seaLevel+2:
		return model.TopologyBeach | model.TopologyOceanside
	}

	var t model.Topology
	switch slope := h.Slope(p.X, p.Z); {
	case slope > 0.6:
		t |= model.TopologyCliff
	case slope > 0.11:
		t |= model.TopologyCliffside
	}
	if height > 38 {
		t |= model.TopologyMountain
	}
	if math.Sin(p.X/140+h.phase[3])*math.Sin(p.Z/170) > 0.4 {
		t |= model.TopologyForest
	}
	if t == 0 {
		t = model.TopologyField
	}
	return t
}

// Biome returns the biome at p. North (+Z) is colder.
func (h *Heightmap) Biome(p model.Location) model.Biome {
	rel := p.Z / (h.mapSize / 2)
	switch {
	case rel > 0.7:
		return model.BiomeArctic
	case rel > 0.3:
		return model.BiomeTundra
	case rel < -0.6:
		return model.BiomeArid
	default:
		return model.BiomeTemperate
	}
}

package world

import "math"

// RegionSize is the edge length of one grid region in world units.
const RegionSize = 256.0

// Grid maps world X/Z coordinates onto a square region grid centred on the origin.
type Grid struct {
	mapSize float64
	regions int32 // regions per side
}

// NewGrid creates a grid covering a square map of the given edge length.
func NewGrid(mapSize float64) Grid {
	n := int32(math.Ceil(mapSize / RegionSize))
	if n < 1 {
		n = 1
	}
	return Grid{mapSize: mapSize, regions: n}
}

// Regions returns the number of regions per side.
func (g Grid) Regions() int32 { return g.regions }

// CoordToRegionIndex converts world coordinates to a region index.
// Formula: floor((coord + mapSize/2) / RegionSize)
func (g Grid) CoordToRegionIndex(x, z float64) (rx, rz int32) {
	half := g.mapSize / 2
	rx = int32(math.Floor((x + half) / RegionSize))
	rz = int32(math.Floor((z + half) / RegionSize))
	return rx, rz
}

// IsValidRegionIndex checks if region index is within the grid.
func (g Grid) IsValidRegionIndex(rx, rz int32) bool {
	return rx >= 0 && rx < g.regions && rz >= 0 && rz < g.regions
}

// InsideMap reports whether (x, z) lies on the map.
func (g Grid) InsideMap(x, z float64) bool {
	half := g.mapSize / 2
	return x >= -half && x <= half && z >= -half && z <= half
}

// RegionSpan returns the index range of regions touched by a circle.
func (g Grid) RegionSpan(x, z, radius float64) (minX, minZ, maxX, maxZ int32) {
	minX, minZ = g.CoordToRegionIndex(x-radius, z-radius)
	maxX, maxZ = g.CoordToRegionIndex(x+radius, z+radius)
	minX, minZ = max(minX, 0), max(minZ, 0)
	maxX, maxZ = min(maxX, g.regions-1), min(maxZ, g.regions-1)
	return minX, minZ, maxX, maxZ
}

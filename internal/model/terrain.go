package model

import (
	"fmt"
	"strings"
)

// Biome is a bitmask of terrain biomes.
type Biome uint32

const (
	BiomeArid Biome = 1 << iota
	BiomeTemperate
	BiomeTundra
	BiomeArctic
	BiomeJungle
)

// Topology is a bitmask of terrain topology flags.
type Topology uint32

const (
	TopologyField Topology = 1 << iota
	TopologyCliff
	TopologySummit
	TopologyBeachside
	TopologyBeach
	TopologyForest
	TopologyForestside
	TopologyOcean
	TopologyOceanside
	TopologyDecor
	TopologyMonument
	TopologyRoad
	TopologyRoadside
	TopologySwamp
	TopologyRiver
	TopologyRiverside
	TopologyLake
	TopologyLakeside
	TopologyOffshore
	TopologyRail
	TopologyRailside
	TopologyBuilding
	TopologyCliffside
	TopologyMountain
)

// Explicit name tables. Lookup is case-insensitive.
var biomeNames = map[string]Biome{
	"arid":      BiomeArid,
	"temperate": BiomeTemperate,
	"tundra":    BiomeTundra,
	"arctic":    BiomeArctic,
	"jungle":    BiomeJungle,
}

var topologyNames = map[string]Topology{
	"field":      TopologyField,
	"cliff":      TopologyCliff,
	"summit":     TopologySummit,
	"beachside":  TopologyBeachside,
	"beach":      TopologyBeach,
	"forest":     TopologyForest,
	"forestside": TopologyForestside,
	"ocean":      TopologyOcean,
	"oceanside":  TopologyOceanside,
	"decor":      TopologyDecor,
	"monument":   TopologyMonument,
	"road":       TopologyRoad,
	"roadside":   TopologyRoadside,
	"swamp":      TopologySwamp,
	"river":      TopologyRiver,
	"riverside":  TopologyRiverside,
	"lake":       TopologyLake,
	"lakeside":   TopologyLakeside,
	"offshore":   TopologyOffshore,
	"rail":       TopologyRail,
	"railside":   TopologyRailside,
	"building":   TopologyBuilding,
	"cliffside":  TopologyCliffside,
	"mountain":   TopologyMountain,
}

// DefaultBlockedTopology is the topology a free-placement objective may not land on.
const DefaultBlockedTopology = TopologyCliffside | TopologyCliff | TopologyLake | TopologyOcean |
	TopologyMonument | TopologyBuilding | TopologyOffshore | TopologyRiver | TopologySwamp

// ParseBiomes folds biome names into a mask. Unknown names are an error.
func ParseBiomes(names []string) (Biome, error) {
	var mask Biome
	for _, n := range names {
		b, ok := biomeNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown biome %q", n)
		}
		mask |= b
	}
	return mask, nil
}

// ParseTopologies folds topology names into a mask. Unknown names are an error.
func ParseTopologies(names []string) (Topology, error) {
	var mask Topology
	for _, n := range names {
		tp, ok := topologyNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown topology %q", n)
		}
		mask |= tp
	}
	return mask, nil
}

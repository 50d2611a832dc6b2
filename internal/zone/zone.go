// Package zone implements named cylinder zones with a spatial grid index.
// Manager satisfies spawnpoint.ZoneQuery.
package zone

import (
	"github.com/udisondev/encounters/internal/model"
)

// Zone is a vertical cylinder on the ground plane. Height is ignored.
type Zone struct {
	id     string
	name   string
	center model.Location
	radius float64
}

// New creates a zone.
func New(id, name string, center model.Location, radius float64) *Zone {
	return &Zone{id: id, name: name, center: center, radius: radius}
}

// ID returns the zone identifier.
func (z *Zone) ID() string { return z.id }

// Name returns the zone display name.
func (z *Zone) Name() string { return z.name }

// Center returns the cylinder axis position.
func (z *Zone) Center() model.Location { return z.center }

// Radius returns the cylinder radius.
func (z *Zone) Radius() float64 { return z.radius }

// Contains reports whether p is inside the cylinder (inclusive).
func (z *Zone) Contains(p model.Location) bool {
	return z.center.Distance2DSquared(p) <= z.radius*z.radius
}

package model

import "math"

// Transform places a local frame in the world: a position plus a yaw
// (degrees, clockwise about +Y when seen from above).
type Transform struct {
	Position Location
	Yaw      float64
}

// Point converts a point from the local frame into world coordinates.
func (t Transform) Point(local Location) Location {
	sin, cos := math.Sincos(t.Yaw * math.Pi / 180)
	return Location{
		X: t.Position.X + local.X*cos + local.Z*sin,
		Y: t.Position.Y + local.Y,
		Z: t.Position.Z - local.X*sin + local.Z*cos,
	}
}

// InversePoint converts a world point into the local frame.
func (t Transform) InversePoint(world Location) Location {
	d := world.Sub(t.Position)
	sin, cos := math.Sincos(t.Yaw * math.Pi / 180)
	return Location{
		X: d.X*cos - d.Z*sin,
		Y: d.Y,
		Z: d.X*sin + d.Z*cos,
	}
}

// Bounds is an oriented bounding box: a center, a yaw and half-sizes per axis.
type Bounds struct {
	Center  Location
	Yaw     float64
	Extents Location
}

// NewBounds creates a box of the given full size whose center sits at
// localCenter inside the frame described by t.
func NewBounds(t Transform, localCenter, size Location) Bounds {
	return Bounds{
		Center:  t.Point(localCenter),
		Yaw:     t.Yaw,
		Extents: size.Scale(0.5),
	}
}

// Contains reports whether p lies inside the box (faces inclusive).
func (b Bounds) Contains(p Location) bool {
	local := Transform{Position: b.Center, Yaw: b.Yaw}.InversePoint(p)
	return math.Abs(local.X) <= b.Extents.X &&
		math.Abs(local.Y) <= b.Extents.Y &&
		math.Abs(local.Z) <= b.Extents.Z
}

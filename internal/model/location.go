package model

import (
	"fmt"
	"math"
)

// Location представляет координаты в мире.
// Y направлена вверх, горизонтальная плоскость — X/Z.
// Value type, передаётся по значению (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// IsZero reports whether l is the zero vector.
// The zero vector doubles as the "no position" sentinel.
func (l Location) IsZero() bool {
	return l.X == 0 && l.Y == 0 && l.Z == 0
}

// Add returns l + o.
func (l Location) Add(o Location) Location {
	return Location{X: l.X + o.X, Y: l.Y + o.Y, Z: l.Z + o.Z}
}

// Sub returns l - o.
func (l Location) Sub(o Location) Location {
	return Location{X: l.X - o.X, Y: l.Y - o.Y, Z: l.Z - o.Z}
}

// Scale returns l multiplied by f.
func (l Location) Scale(f float64) Location {
	return Location{X: l.X * f, Y: l.Y * f, Z: l.Z * f}
}

// WithY возвращает новый Location с обновлённой высотой (immutable pattern).
func (l Location) WithY(y float64) Location {
	l.Y = y
	return l
}

// Length returns the euclidean length of l.
func (l Location) Length() float64 {
	return math.Sqrt(l.X*l.X + l.Y*l.Y + l.Z*l.Z)
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance2DSquared возвращает квадрат расстояния в горизонтальной плоскости X/Z.
func (l Location) Distance2DSquared(other Location) float64 {
	dx := l.X - other.X
	dz := l.Z - other.Z
	return dx*dx + dz*dz
}

// Distance2D returns the horizontal (X/Z) distance to other.
func (l Location) Distance2D(other Location) float64 {
	return math.Sqrt(l.Distance2DSquared(other))
}

func (l Location) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", l.X, l.Y, l.Z)
}

// PointAround returns the point at radius from center, angleDeg degrees
// clockwise from +Z in the horizontal plane. Height is taken from center.
func PointAround(center Location, radius, angleDeg float64) Location {
	rad := angleDeg * math.Pi / 180
	return Location{
		X: center.X + radius*math.Sin(rad),
		Y: center.Y,
		Z: center.Z + radius*math.Cos(rad),
	}
}

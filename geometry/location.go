package geometry

import (
	"fmt"
	"math"
)

// Location is an (x, y) pair on the integer grid. It is value-typed: two
// locations with equal coordinates compare equal and hash identically, so
// Location is safe to use directly as a map key.
type Location struct {
	X int32
	Y int32
}

// NewLocation constructs a Location from plain coordinates.
func NewLocation(x, y int32) Location {
	return Location{X: x, Y: y}
}

func (l Location) String() string {
	return fmt.Sprintf("<%d,%d>", l.X, l.Y)
}

// DistanceToSquared returns the squared Euclidean distance to other. Used
// for adjacency legality checks, which compare against a fixed threshold
// without needing a square root.
func (l Location) DistanceToSquared(other Location) int64 {
	dx := int64(other.X - l.X)
	dy := int64(other.Y - l.Y)
	return dx*dx + dy*dy
}

// DistanceTo returns the floating-point Euclidean distance to other.
func (l Location) DistanceTo(other Location) float64 {
	return math.Sqrt(float64(l.DistanceToSquared(other)))
}

// DirectionTo returns the Direction from l to other. Panics if l == other;
// callers are expected to have already excluded that case, mirroring the
// original source's assertion.
func (l Location) DirectionTo(other Location) Direction {
	dx := other.X - l.X
	dy := other.Y - l.Y
	d, err := FromDelta(dx, dy)
	if err != nil {
		panic("geometry: DirectionTo called with identical locations")
	}
	return d
}

// AdjacentInDirection returns the location one cell away in d.
func (l Location) AdjacentInDirection(d Direction) Location {
	return Location{X: l.X + d.DX, Y: l.Y + d.DY}
}

// InDirection returns the location `distance` cells away in d. distance
// must be greater than 0.
func (l Location) InDirection(d Direction, distance int32) Location {
	if distance <= 0 {
		panic("geometry: InDirection requires a positive distance")
	}
	return Location{X: l.X + d.DX*distance, Y: l.Y + d.DY*distance}
}

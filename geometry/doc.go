// Package geometry provides the integer grid coordinates and 8-direction
// vectors used throughout the world mirror.
//
// Location is a value-typed (x, y) pair with structural equality, safe to
// use as a map key. Direction is one of the 8 unit vectors over {-1,0,1}^2
// excluding (0,0); Directions() returns them in a canonical cyclic order so
// rotation by multiples of 45 degrees can be expressed as an index offset.
package geometry

// Package geom provides the small amount of 3D vector math the turtle needs.
// Arithmetic and rotation are delegated to gonum's r3; Vec3 adds the wire
// tags the command encodings rely on.
package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X float64 `json:"x" cbor:"1,keyasint" msgpack:"x"`
	Y float64 `json:"y" cbor:"2,keyasint" msgpack:"y"`
	Z float64 `json:"z" cbor:"3,keyasint" msgpack:"z"`
}

// Origin is the zero vector.
var Origin = Vec3{}

// UnitY is the turtle's initial heading.
var UnitY = Vec3{0, 1, 0}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(v), r3.Vec(o)))
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(v), r3.Vec(o)))
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, r3.Vec(v)))
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return r3.Norm(r3.Vec(v))
}

// ApproxEqual reports whether every component of v and o differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------------
// Rotation
// ---------------------------------------------------------------------------

// Axis names one of the fixed frame axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", a)
}

var unitAxes = [...]r3.Vec{
	AxisX: {X: 1},
	AxisY: {Y: 1},
	AxisZ: {Z: 1},
}

// Euler is a rotation in radians about the X, Y and Z axes.
type Euler struct {
	X float64 `json:"x" cbor:"1,keyasint" msgpack:"x"`
	Y float64 `json:"y" cbor:"2,keyasint" msgpack:"y"`
	Z float64 `json:"z" cbor:"3,keyasint" msgpack:"z"`
}

// RotateAbout rotates v by angle radians about a fixed frame axis,
// right-handed.
func (v Vec3) RotateAbout(axis Axis, angle float64) Vec3 {
	if int(axis) >= len(unitAxes) {
		return v
	}
	return Vec3(r3.NewRotation(angle, unitAxes[axis]).Rotate(r3.Vec(v)))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

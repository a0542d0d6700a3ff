package turtle

import (
	"fmt"
	"math"

	"github.com/chazu/sprig/geom"
)

// Op is what a symbol does to the turtle. Every symbol resolves to exactly
// one Op.
type Op uint8

const (
	OpNone     Op = iota // unrecognized: skipped
	OpInstance           // place a registered template
	OpForward            // F: move and draw
	OpMove               // f: move without drawing
	OpPush               // [
	OpPop                // ]
	OpRotate             // + - & ^ < > |
)

var opNames = [...]string{
	OpNone:     "none",
	OpInstance: "instance",
	OpForward:  "forward",
	OpMove:     "move",
	OpPush:     "push",
	OpPop:      "pop",
	OpRotate:   "rotate",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Rotation describes a rotate symbol: heading turns about Axis by Sign
// times the angle. A Fixed rotation ignores the angle and turns by Fixed
// radians.
type Rotation struct {
	Axis  geom.Axis
	Sign  float64
	Fixed float64
}

// Yaw turns about Z, pitch about X and roll about Y. The axes are those of
// the fixed frame, not the turtle's own.
var rotations = map[rune]Rotation{
	'+': {Axis: geom.AxisZ, Sign: 1},
	'-': {Axis: geom.AxisZ, Sign: -1},
	'&': {Axis: geom.AxisX, Sign: 1},
	'^': {Axis: geom.AxisX, Sign: -1},
	'<': {Axis: geom.AxisY, Sign: 1},
	'>': {Axis: geom.AxisY, Sign: -1},
	'|': {Axis: geom.AxisZ, Fixed: math.Pi},
}

// Registry maps instance symbols to opaque template handles owned by the
// caller.
type Registry map[rune]any

// Has reports whether sym places an instance.
func (r Registry) Has(sym rune) bool {
	_, ok := r[sym]
	return ok
}

// Classify resolves sym to its Op. Registered instance symbols win over
// built-in meanings.
func Classify(sym rune, reg Registry) (Op, Rotation) {
	if reg.Has(sym) {
		return OpInstance, Rotation{}
	}
	switch sym {
	case 'F':
		return OpForward, Rotation{}
	case 'f':
		return OpMove, Rotation{}
	case '[':
		return OpPush, Rotation{}
	case ']':
		return OpPop, Rotation{}
	}
	if rot, ok := rotations[sym]; ok {
		return OpRotate, rot
	}
	return OpNone, Rotation{}
}

// Apply rotates heading by rot given the instruction angle in degrees.
func (rot Rotation) Apply(heading geom.Vec3, degrees float64) geom.Vec3 {
	if rot.Fixed != 0 {
		return heading.RotateAbout(rot.Axis, rot.Fixed)
	}
	return heading.RotateAbout(rot.Axis, rot.Sign*geom.Radians(degrees))
}

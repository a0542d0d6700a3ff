package command

import (
	"math"

	"github.com/chazu/sprig/geom"
)

// Stats summarizes a command stream.
type Stats struct {
	Markers   int
	Lines     int
	Instances int
	Length    float64 // total drawn length
	Min, Max  geom.Vec3
}

// Summarize computes Stats over cmds. Min and Max bound every point the
// stream touches; both are zero for an empty stream.
func Summarize(cmds []Command) Stats {
	var s Stats
	first := true
	include := func(v geom.Vec3) {
		if first {
			s.Min, s.Max = v, v
			first = false
			return
		}
		s.Min = geom.Vec3{X: math.Min(s.Min.X, v.X), Y: math.Min(s.Min.Y, v.Y), Z: math.Min(s.Min.Z, v.Z)}
		s.Max = geom.Vec3{X: math.Max(s.Max.X, v.X), Y: math.Max(s.Max.Y, v.Y), Z: math.Max(s.Max.Z, v.Z)}
	}
	for _, c := range cmds {
		switch c.Kind {
		case KindStartMarker:
			s.Markers++
			include(c.At)
		case KindLineSegment:
			s.Lines++
			s.Length += c.To.Sub(c.From).Len()
			include(c.From)
			include(c.To)
		case KindInstancePlacement:
			s.Instances++
			include(c.At)
		}
	}
	return s
}

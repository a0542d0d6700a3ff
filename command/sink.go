package command

import (
	"fmt"

	"github.com/chazu/sprig/geom"
)

// ---------------------------------------------------------------------------
// Emitters and sinks
// ---------------------------------------------------------------------------

// Emitter receives commands in emission order. A non-nil error aborts the
// drawing pass that produced the command.
type Emitter interface {
	Emit(c Command) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(c Command) error

// Emit calls f(c).
func (f EmitterFunc) Emit(c Command) error {
	return f(c)
}

// Sink materializes geometry. It is implemented outside this module by
// whatever owns meshes and scene graphs.
type Sink interface {
	OnStartMarker(at geom.Vec3) error
	OnLineSegment(from, to geom.Vec3) error
	OnInstancePlacement(template any, at geom.Vec3, rot geom.Euler) error
}

// Dispatcher forwards commands to a Sink, looking up the template handle
// for each instance placement. Placements whose symbol has no template are
// dropped.
type Dispatcher struct {
	Sink      Sink
	Templates map[rune]any
}

// Emit forwards c to the sink.
func (d *Dispatcher) Emit(c Command) error {
	switch c.Kind {
	case KindStartMarker:
		return d.Sink.OnStartMarker(c.At)
	case KindLineSegment:
		return d.Sink.OnLineSegment(c.From, c.To)
	case KindInstancePlacement:
		tmpl, ok := d.Templates[c.Sym()]
		if !ok {
			return nil
		}
		return d.Sink.OnInstancePlacement(tmpl, c.At, c.Rotation)
	}
	return fmt.Errorf("command: cannot dispatch %v", c.Kind)
}

// Recorder keeps every command it receives.
type Recorder struct {
	cmds []Command
}

// Emit appends c.
func (r *Recorder) Emit(c Command) error {
	r.cmds = append(r.cmds, c)
	return nil
}

// Commands returns the recorded stream.
func (r *Recorder) Commands() []Command {
	return r.cmds
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.cmds)
}

// Reset discards recorded commands.
func (r *Recorder) Reset() {
	r.cmds = nil
}

type tee []Emitter

func (t tee) Emit(c Command) error {
	for _, e := range t {
		if err := e.Emit(c); err != nil {
			return err
		}
	}
	return nil
}

// Tee returns an Emitter that forwards each command to every emitter in
// order, stopping at the first error.
func Tee(emitters ...Emitter) Emitter {
	return tee(emitters)
}

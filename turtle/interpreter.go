// Package turtle interprets instruction strings as 3D turtle motion and
// emits the resulting geometry commands.
//
// A drawing pass is a pure function of its input strings and the random
// stream: all output goes through a command.Emitter, and nothing outside
// the pass holds turtle state.
package turtle

import (
	"errors"
	"fmt"
	"io"

	"github.com/chazu/sprig/command"
	"github.com/chazu/sprig/geom"
	"github.com/chazu/sprig/grammar"
	"github.com/chazu/sprig/instruction"
	"github.com/chazu/sprig/rng"
)

// ErrUnbalancedBranch is returned when ']' is read with nothing to pop.
var ErrUnbalancedBranch = errors.New("unbalanced branch")

// ReplayMode selects which generations a drawing pass interprets.
type ReplayMode int

const (
	// ReplayCumulative interprets every generation in order with one
	// running turtle, so geometry from each growth stage overlaps.
	ReplayCumulative ReplayMode = iota
	// ReplayFinal interprets only the last generation.
	ReplayFinal
)

func (m ReplayMode) String() string {
	switch m {
	case ReplayCumulative:
		return "cumulative"
	case ReplayFinal:
		return "final"
	}
	return fmt.Sprintf("ReplayMode(%d)", m)
}

// ParseReplayMode maps a mode name to a ReplayMode. The empty string is
// cumulative.
func ParseReplayMode(name string) (ReplayMode, error) {
	switch name {
	case "", "cumulative":
		return ReplayCumulative, nil
	case "final":
		return ReplayFinal, nil
	}
	return 0, fmt.Errorf("turtle: unknown replay mode %q", name)
}

// Options configures an Interpreter.
type Options struct {
	StepLength float64 // F and f without a parameter
	Angle      float64 // degrees, rotations without a parameter
	Instances  Registry
	Replay     ReplayMode
}

// Interpreter runs drawing passes. It draws ranged parameters and instance
// rotations from src, so it must not be shared between goroutines.
type Interpreter struct {
	opts Options
	src  *rng.Source
}

// New creates an interpreter drawing from src.
func New(opts Options, src *rng.Source) *Interpreter {
	return &Interpreter{opts: opts, src: src}
}

// Result describes a finished or aborted pass.
type Result struct {
	Commands int   // commands emitted, including the start marker
	Final    State // turtle state when the pass stopped
	Depth    int   // branch stack depth when the pass stopped
}

// Run draws prod: one start marker at the origin, then each selected
// generation with the same turtle state and branch stack carried across
// generation boundaries. On error, commands already emitted stand.
func (it *Interpreter) Run(prod grammar.Production, out command.Emitter) (Result, error) {
	p := it.NewPass(out)
	if err := p.emit(command.StartMarker(p.State.Position)); err != nil {
		return p.Result(), err
	}

	first := 0
	if it.opts.Replay == ReplayFinal && len(prod) > 0 {
		first = len(prod) - 1
	}
	for gen := first; gen < len(prod); gen++ {
		if err := p.Interpret(prod[gen]); err != nil {
			return p.Result(), fmt.Errorf("turtle: generation %d: %w", gen, err)
		}
	}
	return p.Result(), nil
}

// ---------------------------------------------------------------------------
// Pass: turtle state for one drawing pass
// ---------------------------------------------------------------------------

// Pass is the scratch state of one drawing pass. Callers that chain
// strings by hand use NewPass and Interpret; Run does this for a whole
// production.
type Pass struct {
	State State
	Stack Stack

	it      *Interpreter
	out     command.Emitter
	emitted int
}

// NewPass starts a pass from the initial state. No start marker is
// emitted.
func (it *Interpreter) NewPass(out command.Emitter) *Pass {
	return &Pass{State: Initial(), it: it, out: out}
}

// Result reports the pass's progress so far.
func (p *Pass) Result() Result {
	return Result{Commands: p.emitted, Final: p.State, Depth: p.Stack.Len()}
}

// Interpret parses s and executes its instructions in order. Parsing is
// lazy, so random draws for ranged parameters interleave with instance
// rotation draws in source order.
func (p *Pass) Interpret(s string) error {
	parser := instruction.NewParser(s, p.it.src)
	for {
		in, err := parser.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.Step(in); err != nil {
			return err
		}
	}
}

// Step executes one instruction.
func (p *Pass) Step(in instruction.Instruction) error {
	opts := &p.it.opts
	op, rot := Classify(in.Symbol, opts.Instances)
	switch op {
	case OpInstance:
		src := p.it.src
		r := geom.Euler{X: src.UniformAngle(), Y: src.UniformAngle(), Z: src.UniformAngle()}
		return p.emit(command.InstancePlacement(in.Symbol, p.State.Position, r))

	case OpForward:
		next := p.advance(in.ParamOr(opts.StepLength))
		if err := p.emit(command.LineSegment(p.State.Position, next)); err != nil {
			return err
		}
		p.State.Position = next

	case OpMove:
		p.State.Position = p.advance(in.ParamOr(opts.StepLength))

	case OpPush:
		p.Stack.Push(p.State)

	case OpPop:
		s, ok := p.Stack.Pop()
		if !ok {
			return fmt.Errorf("offset %d: %w", in.Offset, ErrUnbalancedBranch)
		}
		p.State = s

	case OpRotate:
		p.State.Heading = rot.Apply(p.State.Heading, in.ParamOr(opts.Angle))

	case OpNone:
	}
	return nil
}

func (p *Pass) advance(step float64) geom.Vec3 {
	return p.State.Position.Add(p.State.Heading.Scale(step))
}

func (p *Pass) emit(c command.Command) error {
	if err := p.out.Emit(c); err != nil {
		return fmt.Errorf("emit %v: %w", c.Kind, err)
	}
	p.emitted++
	return nil
}

// Package lsystem ties the grammar engine, the random stream and the
// turtle interpreter into one generator.
//
// An LSystem expands its grammar once, at construction, and keeps the
// production for its lifetime. Each call to Draw runs a fresh turtle pass
// over that production. The random stream is owned by the LSystem and
// keeps advancing across passes; build a new LSystem with the same seed to
// replay a run exactly.
package lsystem

import (
	"errors"
	"fmt"
	"math"

	"github.com/tliron/commonlog"

	"github.com/chazu/sprig/command"
	"github.com/chazu/sprig/grammar"
	"github.com/chazu/sprig/rng"
	"github.com/chazu/sprig/turtle"
)

// logger is looked up per call so a backend configured after package
// initialization still applies.
func logger() commonlog.Logger {
	return commonlog.GetLogger("sprig.lsystem")
}

// ErrInvalidConfig is returned by New for unusable drawing parameters.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is everything an LSystem is built from. It is not modified after
// New returns.
type Config struct {
	Iterations int
	Axiom      string
	Rules      grammar.RuleSet
	StepLength float64 // must be > 0
	Angle      float64 // degrees
	Instances  turtle.Registry
	Seed       *uint64 // nil seeds from entropy
	Replay     turtle.ReplayMode
}

// Seed is a convenience for filling Config.Seed.
func Seed(v uint64) *uint64 {
	return &v
}

// LSystem is a grammar with its expanded production. It is not safe for
// concurrent use; run independent LSystems in parallel instead.
type LSystem struct {
	cfg    Config
	prod   grammar.Production
	src    *rng.Source
	interp *turtle.Interpreter
}

// New validates cfg and expands the grammar.
func New(cfg Config) (*LSystem, error) {
	if !(cfg.StepLength > 0) || math.IsInf(cfg.StepLength, 0) {
		return nil, fmt.Errorf("lsystem: step length %g: %w", cfg.StepLength, ErrInvalidConfig)
	}
	if math.IsNaN(cfg.Angle) || math.IsInf(cfg.Angle, 0) {
		return nil, fmt.Errorf("lsystem: angle %g: %w", cfg.Angle, ErrInvalidConfig)
	}
	if cfg.Replay != turtle.ReplayCumulative && cfg.Replay != turtle.ReplayFinal {
		return nil, fmt.Errorf("lsystem: %v: %w", cfg.Replay, ErrInvalidConfig)
	}

	prod, err := grammar.Generate(cfg.Iterations, cfg.Axiom, cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("lsystem: %w", err)
	}
	if log := logger(); log.AllowLevel(commonlog.Debug) {
		for i, s := range prod {
			log.Debugf("generation %d: %d bytes", i, len(s))
		}
	}

	var src *rng.Source
	if cfg.Seed != nil {
		src = rng.New(*cfg.Seed)
	} else {
		src = rng.NewUnseeded()
	}

	l := &LSystem{
		cfg:  cfg,
		prod: prod,
		src:  src,
		interp: turtle.New(turtle.Options{
			StepLength: cfg.StepLength,
			Angle:      cfg.Angle,
			Instances:  cfg.Instances,
			Replay:     cfg.Replay,
		}, src),
	}
	return l, nil
}

// Config returns the configuration the LSystem was built from.
func (l *LSystem) Config() Config {
	return l.cfg
}

// Production returns the expanded generations. Callers must not modify it.
func (l *LSystem) Production() grammar.Production {
	return l.prod
}

// Source returns the random stream the LSystem draws from.
func (l *LSystem) Source() *rng.Source {
	return l.src
}

// Draw runs one drawing pass, sending every command to out.
func (l *LSystem) Draw(out command.Emitter) (turtle.Result, error) {
	log := logger()
	res, err := l.interp.Run(l.prod, out)
	if err != nil {
		log.Warningf("drawing pass aborted after %d commands: %v", res.Commands, err)
		return res, fmt.Errorf("lsystem: %w", err)
	}
	if res.Depth != 0 {
		log.Debugf("drawing pass ended with %d unclosed branches", res.Depth)
	}
	log.Infof("drew %d commands over %d generations (%v)", res.Commands, len(l.prod), l.cfg.Replay)
	return res, nil
}

// Record runs a drawing pass and returns its commands. On error the
// commands emitted before the failure are returned with it.
func (l *LSystem) Record() ([]command.Command, error) {
	var rec command.Recorder
	_, err := l.Draw(&rec)
	return rec.Commands(), err
}

// Render runs a drawing pass straight into sink, passing each placement
// the template registered for its symbol.
func (l *LSystem) Render(sink command.Sink) (turtle.Result, error) {
	return l.Draw(&command.Dispatcher{Sink: sink, Templates: l.cfg.Instances})
}

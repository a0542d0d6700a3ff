// Package rng is the single random stream shared by the instruction parser
// and the turtle interpreter during one run.
//
// A Source is owned by exactly one run at a time. It is not safe for
// concurrent use: two goroutines drawing from one seeded Source break
// reproducibility even if the draws themselves were synchronized.
package rng

import (
	"math"
	"math/rand/v2"
)

// streamSalt decorrelates the second PCG word from the seed.
const streamSalt = 0x9e3779b97f4a7c15

// Source is a seeded pseudo-random stream.
type Source struct {
	r      *rand.Rand
	seed   uint64
	seeded bool
}

// New returns a reproducible Source: every Source built from the same seed
// yields the same sequence of draws.
func New(seed uint64) *Source {
	return &Source{
		r:      rand.New(rand.NewPCG(seed, seed^streamSalt)),
		seed:   seed,
		seeded: true,
	}
}

// NewUnseeded returns a Source seeded from the runtime's entropy source.
// Draws differ between processes.
func NewUnseeded() *Source {
	return &Source{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Seed returns the seed the Source was built with and whether one was given.
func (s *Source) Seed() (uint64, bool) {
	return s.seed, s.seeded
}

// Uniform returns a value in [min, max). A degenerate range returns min.
func (s *Source) Uniform(min, max float64) float64 {
	return min + (max-min)*s.r.Float64()
}

// UniformAngle returns an angle in radians in [0, 2π).
func (s *Source) UniformAngle() float64 {
	return s.Uniform(0, 2*math.Pi)
}

package turtle

import "github.com/chazu/sprig/geom"

// State is the turtle's position and unit heading. It is a value: copies
// never alias.
type State struct {
	Position geom.Vec3
	Heading  geom.Vec3
}

// Initial is the state every pass starts from: at the origin, heading +Y.
func Initial() State {
	return State{Position: geom.Origin, Heading: geom.UnitY}
}

// Stack holds states saved by '[' for restoration by ']'.
type Stack struct {
	frames []State
}

// Push saves a copy of s.
func (st *Stack) Push(s State) {
	st.frames = append(st.frames, s)
}

// Pop removes and returns the most recently pushed state. ok is false if
// the stack is empty.
func (st *Stack) Pop() (s State, ok bool) {
	n := len(st.frames)
	if n == 0 {
		return State{}, false
	}
	s = st.frames[n-1]
	st.frames = st.frames[:n-1]
	return s, true
}

// Len returns the current depth.
func (st *Stack) Len() int {
	return len(st.frames)
}

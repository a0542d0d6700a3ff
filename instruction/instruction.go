// Package instruction tokenizes an expanded generation string into turtle
// instructions.
//
// The parser knows nothing about grammar rules. It sees one symbol at a
// time, plus that symbol's parenthesized parameter list when one follows
// immediately:
//
//	F        no parameter; the interpreter applies its default
//	F(2)     fixed parameter 2
//	+(10,30) parameter drawn uniformly from [10, 30) at parse time
package instruction

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedInstruction is returned for a parameter list that cannot be
// parsed, most commonly an opening parenthesis with no closing one.
var ErrMalformedInstruction = errors.New("malformed instruction")

// Instruction is one parsed symbol with its resolved parameter.
type Instruction struct {
	Symbol   rune
	Param    float64
	HasParam bool
	Offset   int // byte offset of Symbol in the source string
}

// ParamOr returns the parameter, or def when none was given.
func (in Instruction) ParamOr(def float64) float64 {
	if in.HasParam {
		return in.Param
	}
	return def
}

func (in Instruction) String() string {
	if !in.HasParam {
		return string(in.Symbol)
	}
	return string(in.Symbol) + "(" + strconv.FormatFloat(in.Param, 'f', -1, 64) + ")"
}

// SyntaxError reports where a parameter list went wrong.
type SyntaxError struct {
	Offset int    // byte offset of the instruction's symbol
	Text   string // offending source text
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s: %q", e.Offset, e.Msg, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedInstruction
}

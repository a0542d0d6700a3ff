package instruction

import (
	"errors"
	"io"
	"testing"

	"github.com/chazu/sprig/rng"
)

func TestParseFixedParameters(t *testing.T) {
	input := "F(2)+[F(1)]F(3)"
	expected := []struct {
		sym      rune
		param    float64
		hasParam bool
		offset   int
	}{
		{'F', 2, true, 0},
		{'+', 0, false, 4},
		{'[', 0, false, 5},
		{'F', 1, true, 6},
		{']', 0, false, 10},
		{'F', 3, true, 11},
	}

	got, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("got %d instructions, want %d: %v", len(got), len(expected), got)
	}
	for i, exp := range expected {
		in := got[i]
		if in.Symbol != exp.sym || in.Param != exp.param || in.HasParam != exp.hasParam || in.Offset != exp.offset {
			t.Errorf("instr[%d] = %+v, want %+v", i, in, exp)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"F(1)", 1},
		{"F(0.25)", 0.25},
		{"&(90)", 90},
		{"+( 45 )", 45},
		{"-(-12.5)", -12.5},
		{"f(1e2)", 100},
		{"X(.5)", 0.5},
	}
	for _, tc := range tests {
		got, err := Parse(tc.input, nil)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.input, err)
			continue
		}
		if len(got) != 1 || !got[0].HasParam || got[0].Param != tc.want {
			t.Errorf("Parse(%q) = %v, want one instruction with %g", tc.input, got, tc.want)
		}
	}
}

func TestParseRangeUsesSource(t *testing.T) {
	a, err := Parse("+(10,30)^(0,1)", rng.New(3))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse("+(10,30)^(0,1)", rng.New(3))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("instr[%d]: %v != %v with the same seed", i, a[i], b[i])
		}
	}
	if v := a[0].Param; v < 10 || v >= 30 {
		t.Errorf("+(10,30) resolved to %g", v)
	}
	if v := a[1].Param; v < 0 || v >= 1 {
		t.Errorf("^(0,1) resolved to %g", v)
	}
}

func TestParseDegenerateRange(t *testing.T) {
	for _, seed := range []uint64{0, 1, 12345} {
		got, err := Parse("F(2,2)", rng.New(seed))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got[0].Param != 2 {
			t.Errorf("seed %d: F(2,2) = %g, want 2", seed, got[0].Param)
		}
	}
	got, err := Parse("F(2,2)", nil)
	if err != nil || got[0].Param != 2 {
		t.Errorf("F(2,2) without source = %v, %v", got, err)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"F(2", 0},
		{"FF(", 1},
		{"F()", 0},
		{"F(1,2,3)", 0},
		{"F(abc)", 0},
		{"F(1,)", 0},
		{"+(NaN)", 0},
		{"F[F(1", 2},
	}
	for _, tc := range tests {
		_, err := Parse(tc.input, rng.New(1))
		if !errors.Is(err, ErrMalformedInstruction) {
			t.Errorf("Parse(%q) err = %v, want ErrMalformedInstruction", tc.input, err)
			continue
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) err is %T, want *SyntaxError", tc.input, err)
			continue
		}
		if se.Offset != tc.offset {
			t.Errorf("Parse(%q) offset = %d, want %d", tc.input, se.Offset, tc.offset)
		}
	}
}

func TestRangeWithoutSource(t *testing.T) {
	_, err := Parse("F(1,2)", nil)
	if !errors.Is(err, ErrMalformedInstruction) {
		t.Errorf("err = %v, want ErrMalformedInstruction", err)
	}
}

func TestParserStopsAfterError(t *testing.T) {
	p := NewParser("F(F", nil)
	if _, err := p.Next(); err == nil {
		t.Fatal("expected error")
	}
	if _, err := p.Next(); err != io.EOF {
		t.Errorf("Next after error = %v, want io.EOF", err)
	}
}

func TestParseUnicodeSymbols(t *testing.T) {
	got, err := Parse("✿(3)F", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 || got[0].Symbol != '✿' || got[0].Param != 3 || got[1].Symbol != 'F' {
		t.Errorf("Parse = %v", got)
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{Instruction{Symbol: 'F'}, "F"},
		{Instruction{Symbol: '+', Param: 22.5, HasParam: true}, "+(22.5)"},
		{Instruction{Symbol: 'f', Param: 0, HasParam: true}, "f(0)"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParamOr(t *testing.T) {
	if got := (Instruction{Symbol: 'F'}).ParamOr(1.5); got != 1.5 {
		t.Errorf("ParamOr = %g, want 1.5", got)
	}
	if got := (Instruction{Symbol: 'F', Param: 0, HasParam: true}).ParamOr(1.5); got != 0 {
		t.Errorf("ParamOr = %g, want 0", got)
	}
}

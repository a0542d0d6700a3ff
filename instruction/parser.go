package instruction

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/chazu/sprig/rng"
)

// ---------------------------------------------------------------------------
// Parser: streaming tokenizer over one generation string
// ---------------------------------------------------------------------------

// Parser yields instructions left to right. Ranged parameters are drawn
// from src as they are reached, so draws interleave with whatever else the
// caller pulls from the same Source between calls to Next.
type Parser struct {
	input string
	pos   int // offset of the next unread byte
	src   *rng.Source
}

// NewParser creates a parser over input. src may be nil if input contains
// no ranged parameters.
func NewParser(input string, src *rng.Source) *Parser {
	return &Parser{input: input, src: src}
}

// Next returns the next instruction, or io.EOF once input is exhausted.
// After an error the parser is exhausted.
func (p *Parser) Next() (Instruction, error) {
	if p.pos >= len(p.input) {
		return Instruction{}, io.EOF
	}

	start := p.pos
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	in := Instruction{Symbol: r, Offset: start}

	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return in, nil
	}

	end := strings.IndexByte(p.input[p.pos:], ')')
	if end < 0 {
		text := p.input[start:]
		p.pos = len(p.input)
		return in, &SyntaxError{Offset: start, Text: text, Msg: "unterminated parameter list"}
	}
	body := p.input[p.pos+1 : p.pos+end]
	p.pos += end + 1

	v, err := p.resolve(body)
	if err != nil {
		p.pos = len(p.input)
		return in, &SyntaxError{Offset: start, Text: p.input[start:p.pos], Msg: err.Error()}
	}
	in.Param = v
	in.HasParam = true
	return in, nil
}

// resolve turns "v" or "min,max" into a single value.
func (p *Parser) resolve(body string) (float64, error) {
	parts := strings.Split(body, ",")
	switch len(parts) {
	case 1:
		return parseNumber(parts[0])
	case 2:
		lo, err := parseNumber(parts[0])
		if err != nil {
			return 0, err
		}
		hi, err := parseNumber(parts[1])
		if err != nil {
			return 0, err
		}
		if p.src == nil {
			if lo == hi {
				return lo, nil
			}
			return 0, errors.New("ranged parameter without a random source")
		}
		return p.src.Uniform(lo, hi), nil
	}
	return 0, errors.New("expected one value or a min,max pair")
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty parameter")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("invalid number " + strconv.Quote(s))
	}
	return v, nil
}

// Parse tokenizes all of input. On error it returns the instructions read
// before the failure along with the error.
func Parse(input string, src *rng.Source) ([]Instruction, error) {
	p := NewParser(input, src)
	var out []Instruction
	for {
		in, err := p.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, in)
	}
}

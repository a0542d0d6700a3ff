// Package grammar implements context-free L-system rewriting.
//
// Rewriting is pure string substitution. Parameter lists in rule bodies,
// such as F(1,2), are copied as literal text; they are resolved later by
// the instruction parser.
package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrInvalidGrammar is returned for a grammar that cannot be expanded.
var ErrInvalidGrammar = errors.New("invalid grammar")

// RuleSet maps a symbol to its replacement. Symbols without an entry
// rewrite to themselves.
type RuleSet map[rune]string

// Symbols returns the rule heads in sorted order.
func (rs RuleSet) Symbols() []rune {
	syms := make([]rune, 0, len(rs))
	for s := range rs {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

func (rs RuleSet) String() string {
	var sb strings.Builder
	for i, s := range rs.Symbols() {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%c -> %s", s, rs[s])
	}
	return sb.String()
}

// Production holds one string per generation. Index 0 is the start string.
type Production []string

// Generations returns the number of rewrites applied.
func (p Production) Generations() int {
	return len(p) - 1
}

// Final returns the last generation.
func (p Production) Final() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Rewrite applies rules once to every symbol of s, left to right. Bytes
// that are not valid UTF-8 are copied through unchanged.
func Rewrite(s string, rules RuleSet) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteByte(s[i])
		} else if repl, ok := rules[r]; ok {
			sb.WriteString(repl)
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}

// Generate expands start numIters times. The result has numIters+1 entries.
// There is no cap on growth; callers choose numIters.
func Generate(numIters int, start string, rules RuleSet) (Production, error) {
	if numIters < 0 {
		return nil, fmt.Errorf("grammar: iteration count %d: %w", numIters, ErrInvalidGrammar)
	}
	prod := make(Production, 0, numIters+1)
	prod = append(prod, start)
	cur := start
	for i := 0; i < numIters; i++ {
		cur = Rewrite(cur, rules)
		prod = append(prod, cur)
	}
	return prod, nil
}

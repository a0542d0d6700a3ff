// Package command defines the geometry command stream produced by the
// turtle, the sink interface that consumes it, and its wire encodings.
package command

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/chazu/sprig/geom"
)

// Kind tags a Command.
type Kind uint8

const (
	KindStartMarker Kind = iota + 1
	KindLineSegment
	KindInstancePlacement
)

var kindNames = map[Kind]string{
	KindStartMarker:       "start",
	KindLineSegment:       "line",
	KindInstancePlacement: "instance",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("command: unknown kind %d", k)
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("command: unknown kind %q", name)
}

// Command is one entry of the geometry stream. Which fields are meaningful
// depends on Kind:
//
//	KindStartMarker        At
//	KindLineSegment        From, To
//	KindInstancePlacement  Symbol, At, Rotation
//
// Commands are values; once emitted they are never modified.
type Command struct {
	Kind     Kind       `json:"kind" cbor:"1,keyasint" msgpack:"kind"`
	From     geom.Vec3  `json:"from" cbor:"2,keyasint" msgpack:"from"`
	To       geom.Vec3  `json:"to" cbor:"3,keyasint" msgpack:"to"`
	At       geom.Vec3  `json:"at" cbor:"4,keyasint" msgpack:"at"`
	Symbol   string     `json:"symbol,omitempty" cbor:"5,keyasint,omitempty" msgpack:"symbol,omitempty"`
	Rotation geom.Euler `json:"rotation" cbor:"6,keyasint" msgpack:"rotation"`
}

// StartMarker returns the command that marks where a drawing pass begins.
func StartMarker(at geom.Vec3) Command {
	return Command{Kind: KindStartMarker, At: at}
}

// LineSegment returns a drawn forward move.
func LineSegment(from, to geom.Vec3) Command {
	return Command{Kind: KindLineSegment, From: from, To: to}
}

// InstancePlacement returns a request to place the template registered
// for sym.
func InstancePlacement(sym rune, at geom.Vec3, rot geom.Euler) Command {
	return Command{Kind: KindInstancePlacement, Symbol: string(sym), At: at, Rotation: rot}
}

// Sym returns the instance symbol as a rune, or utf8.RuneError if the
// command carries none.
func (c Command) Sym() rune {
	r, _ := utf8.DecodeRuneInString(c.Symbol)
	return r
}

func (c Command) String() string {
	switch c.Kind {
	case KindStartMarker:
		return fmt.Sprintf("start %v", c.At)
	case KindLineSegment:
		return fmt.Sprintf("line %v -> %v", c.From, c.To)
	case KindInstancePlacement:
		return fmt.Sprintf("instance %s at %v rot (%g, %g, %g)",
			c.Symbol, c.At, c.Rotation.X, c.Rotation.Y, c.Rotation.Z)
	}
	return c.Kind.String()
}

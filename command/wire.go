package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/chazu/sprig/geom"
)

// Format selects a wire encoding for a command stream.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatCBOR
	FormatMsgpack
)

var formatNames = map[Format]string{
	FormatText:    "text",
	FormatJSON:    "json",
	FormatCBOR:    "cbor",
	FormatMsgpack: "msgpack",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == strings.ToLower(name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("command: unknown format %q", name)
}

// cborEncMode uses canonical encoding so equal streams encode to equal
// bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("command: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalCBOR serializes a stream to canonical CBOR.
func MarshalCBOR(cmds []Command) ([]byte, error) {
	return cborEncMode.Marshal(cmds)
}

// UnmarshalCBOR deserializes a stream from CBOR.
func UnmarshalCBOR(data []byte) ([]Command, error) {
	var cmds []Command
	if err := cbor.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("command: unmarshal cbor: %w", err)
	}
	return cmds, nil
}

// Encode writes cmds to w in format f.
func Encode(w io.Writer, f Format, cmds []Command) error {
	switch f {
	case FormatText:
		return encodeText(w, cmds)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cmds)
	case FormatCBOR:
		data, err := MarshalCBOR(cmds)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(cmds)
	}
	return fmt.Errorf("command: cannot encode %v", f)
}

// Decode reads a stream written by Encode.
func Decode(r io.Reader, f Format) ([]Command, error) {
	var cmds []Command
	switch f {
	case FormatText:
		return decodeText(r)
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&cmds); err != nil {
			return nil, fmt.Errorf("command: decode json: %w", err)
		}
	case FormatCBOR:
		if err := cbor.NewDecoder(r).Decode(&cmds); err != nil {
			return nil, fmt.Errorf("command: decode cbor: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&cmds); err != nil {
			return nil, fmt.Errorf("command: decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("command: cannot decode %v", f)
	}
	return cmds, nil
}

// ---------------------------------------------------------------------------
// Text format: one command per line, floats in shortest exact form.
//
//	start x y z
//	line x1 y1 z1 x2 y2 z2
//	instance S x y z rx ry rz
// ---------------------------------------------------------------------------

func encodeText(w io.Writer, cmds []Command) error {
	bw := bufio.NewWriter(w)
	for _, c := range cmds {
		var fields []string
		switch c.Kind {
		case KindStartMarker:
			fields = append(fields, "start")
			fields = appendVec(fields, c.At)
		case KindLineSegment:
			fields = append(fields, "line")
			fields = appendVec(fields, c.From)
			fields = appendVec(fields, c.To)
		case KindInstancePlacement:
			fields = append(fields, "instance", strconv.Quote(c.Symbol))
			fields = appendVec(fields, c.At)
			fields = appendVec(fields, geom.Vec3(c.Rotation))
		default:
			return fmt.Errorf("command: cannot encode %v as text", c.Kind)
		}
		if _, err := bw.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendVec(fields []string, v geom.Vec3) []string {
	return append(fields, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func decodeText(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		c, err := parseTextLine(text)
		if err != nil {
			return nil, fmt.Errorf("command: line %d: %w", line, err)
		}
		cmds = append(cmds, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func parseNums(ss []string, want int) ([]float64, error) {
	if len(ss) != want {
		return nil, fmt.Errorf("expected %d numbers, got %d", want, len(ss))
	}
	out := make([]float64, want)
	for i, s := range ss {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseTextLine(text string) (Command, error) {
	keyword, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		keyword, rest = text[:i], strings.TrimLeftFunc(text[i:], unicode.IsSpace)
	}

	switch keyword {
	case "start":
		n, err := parseNums(strings.Fields(rest), 3)
		if err != nil {
			return Command{}, err
		}
		return StartMarker(geom.Vec3{X: n[0], Y: n[1], Z: n[2]}), nil
	case "line":
		n, err := parseNums(strings.Fields(rest), 6)
		if err != nil {
			return Command{}, err
		}
		return LineSegment(geom.Vec3{X: n[0], Y: n[1], Z: n[2]}, geom.Vec3{X: n[3], Y: n[4], Z: n[5]}), nil
	case "instance":
		// The symbol is quoted and may itself be whitespace.
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return Command{}, fmt.Errorf("instance symbol: %w", err)
		}
		sym, err := strconv.Unquote(quoted)
		if err != nil {
			return Command{}, fmt.Errorf("instance symbol: %w", err)
		}
		n, err := parseNums(strings.Fields(rest[len(quoted):]), 6)
		if err != nil {
			return Command{}, err
		}
		return Command{
			Kind:     KindInstancePlacement,
			Symbol:   sym,
			At:       geom.Vec3{X: n[0], Y: n[1], Z: n[2]},
			Rotation: geom.Euler{X: n[3], Y: n[4], Z: n[5]},
		}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", keyword)
}

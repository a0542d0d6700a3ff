// Package preset handles grammar definition files.
//
// A preset is a TOML or YAML document describing one L-system:
//
//	name = "coral"
//	iterations = 3
//	axiom = "G"
//	step = 1.0
//	angle = 30.0
//	seed = 7           # optional
//	replay = "final"   # optional, default "cumulative"
//
//	[rules]
//	G = "[+FAG][-FAG][++FBG][--FBG]"
//
//	[instances]
//	P = "core"
package preset

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/chazu/sprig/grammar"
	"github.com/chazu/sprig/lsystem"
	"github.com/chazu/sprig/turtle"
)

// ErrInvalidPreset is returned for a preset that fails validation.
var ErrInvalidPreset = errors.New("invalid preset")

// Format is a preset file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks a Format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("preset: unsupported file type %q", filepath.Ext(path))
}

// Preset is one grammar definition.
type Preset struct {
	Name       string            `toml:"name" yaml:"name" json:"name" cbor:"name"`
	Iterations int               `toml:"iterations" yaml:"iterations" json:"iterations" cbor:"iterations"`
	Axiom      string            `toml:"axiom" yaml:"axiom" json:"axiom" cbor:"axiom"`
	Step       float64           `toml:"step" yaml:"step" json:"step" cbor:"step"`
	Angle      float64           `toml:"angle" yaml:"angle" json:"angle" cbor:"angle"`
	Seed       *uint64           `toml:"seed" yaml:"seed" json:"seed,omitempty" cbor:"seed,omitempty"`
	Replay     string            `toml:"replay" yaml:"replay" json:"replay,omitempty" cbor:"replay,omitempty"`
	Rules      map[string]string `toml:"rules" yaml:"rules" json:"rules,omitempty" cbor:"rules,omitempty"`
	Instances  map[string]string `toml:"instances" yaml:"instances" json:"instances,omitempty" cbor:"instances,omitempty"`

	// Path is the file the preset was loaded from (set at load time).
	Path string `toml:"-" yaml:"-" json:"-" cbor:"-"`
}

// Load reads, defaults and validates the preset at path.
func Load(path string) (*Preset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	p.Path = path
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse decodes a preset and applies defaults. It does not validate.
// Defaults only fill keys the document omits; an explicit step of 0 is
// kept so Validate can reject it.
func Parse(data []byte, format Format) (*Preset, error) {
	var p Preset
	var hasStep bool
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &p)
		if err != nil {
			return nil, err
		}
		hasStep = md.IsDefined("step")
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		var keys struct {
			Step *float64 `yaml:"step"`
		}
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return nil, err
		}
		hasStep = keys.Step != nil
	default:
		return nil, fmt.Errorf("preset: unknown format %q", format)
	}

	// Defaults
	if !hasStep {
		p.Step = 1
	}
	return &p, nil
}

// Config converts the preset to an lsystem.Config. template resolves an
// instance template name to the caller's handle; if nil, the name itself is
// the handle.
func (p *Preset) Config(template func(name string) (any, error)) (lsystem.Config, error) {
	replay, err := turtle.ParseReplayMode(p.Replay)
	if err != nil {
		return lsystem.Config{}, fmt.Errorf("preset %s: %w", p.Name, err)
	}

	rules := make(grammar.RuleSet, len(p.Rules))
	for k, v := range p.Rules {
		sym, err := symbol(k)
		if err != nil {
			return lsystem.Config{}, fmt.Errorf("preset %s: rule %w", p.Name, err)
		}
		rules[sym] = v
	}

	var instances turtle.Registry
	if len(p.Instances) > 0 {
		instances = make(turtle.Registry, len(p.Instances))
	}
	for k, name := range p.Instances {
		sym, err := symbol(k)
		if err != nil {
			return lsystem.Config{}, fmt.Errorf("preset %s: instance %w", p.Name, err)
		}
		var handle any = name
		if template != nil {
			if handle, err = template(name); err != nil {
				return lsystem.Config{}, fmt.Errorf("preset %s: template %q: %w", p.Name, name, err)
			}
		}
		instances[sym] = handle
	}

	return lsystem.Config{
		Iterations: p.Iterations,
		Axiom:      p.Axiom,
		Rules:      rules,
		StepLength: p.Step,
		Angle:      p.Angle,
		Instances:  instances,
		Seed:       p.Seed,
		Replay:     replay,
	}, nil
}

func symbol(key string) (rune, error) {
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || r == utf8.RuneError {
		return 0, fmt.Errorf("key %q: %w: want a single character", key, ErrInvalidPreset)
	}
	return r, nil
}

// Hash returns a content hash of the preset's definition. Presets that
// differ only in Path hash equal.
func (p *Preset) Hash() ([32]byte, error) {
	data, err := hashEncMode.Marshal(p)
	if err != nil {
		return [32]byte{}, fmt.Errorf("preset: hash %s: %w", p.Name, err)
	}
	return sha256.Sum256(data), nil
}

var hashEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("preset: failed to create CBOR enc mode: %v", err))
	}
	hashEncMode = em
}

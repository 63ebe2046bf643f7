// Package kinds loads the immutable table of cell kinds.
// A Registry is built once from a YAML document, validated against an
// embedded JSON schema, and passed explicitly to everything that builds cells.
package kinds

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-craft/internal/core"
)

// KindID indexes a Def inside a Registry palette.
type KindID uint16

// Air is always palette entry 0.
const Air KindID = 0

// AirName is the kind every registry must define.
const AirName = "air"

var (
	// ErrUnknownKind is returned when a name or id does not resolve.
	ErrUnknownKind = errors.New("kinds: unknown kind")

	// ErrInvalidDocument is returned when a registry document is malformed.
	ErrInvalidDocument = errors.New("kinds: invalid document")
)

//go:embed kinds.yaml
var defaultDocument []byte

// Def is the static definition of one kind.
type Def struct {
	ID     KindID
	Name   string
	Solid  bool
	Health int // Max health, at least 1 for solid kinds
	Color  core.Color
	Glyph  rune
	Drop   KindID // Kind released when a cell of this kind is destroyed
	Frames []rune // Optional animation glyphs cycled while rendering
}

// Registry is an immutable palette of kind definitions.
type Registry struct {
	defs   []Def
	index  map[string]KindID
	digest string
}

// document mirrors the YAML file layout.
type document struct {
	Kinds []entry `yaml:"kinds" json:"kinds"`
}

type entry struct {
	Name   string   `yaml:"name" json:"name"`
	Solid  bool     `yaml:"solid" json:"solid"`
	Health int      `yaml:"health,omitempty" json:"health,omitempty"`
	Color  string   `yaml:"color,omitempty" json:"color,omitempty"`
	Glyph  string   `yaml:"glyph,omitempty" json:"glyph,omitempty"`
	Drop   string   `yaml:"drop,omitempty" json:"drop,omitempty"`
	Frames []string `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// Default returns the registry built from the embedded kinds.yaml.
func Default() (*Registry, error) {
	return Parse(defaultDocument)
}

// LoadFile reads and parses a registry document from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kinds: read %s: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse validates a YAML document against the kind schema and builds a Registry.
func Parse(data []byte) (*Registry, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return build(doc.Kinds)
}

func build(entries []entry) (*Registry, error) {
	byName := make(map[string]entry, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, dup := byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate kind %q", ErrInvalidDocument, e.Name)
		}
		byName[e.Name] = e
		if e.Name != AirName {
			names = append(names, e.Name)
		}
	}
	if _, ok := byName[AirName]; !ok {
		return nil, fmt.Errorf("%w: %q must be defined", ErrUnknownKind, AirName)
	}
	sort.Strings(names)
	names = append([]string{AirName}, names...)

	r := &Registry{
		defs:  make([]Def, len(names)),
		index: make(map[string]KindID, len(names)),
	}
	for i, name := range names {
		r.index[name] = KindID(i)
	}

	for i, name := range names {
		e := byName[name]
		def := Def{
			ID:    KindID(i),
			Name:  name,
			Solid: e.Solid,
			Glyph: ' ',
			Drop:  KindID(i),
		}
		if e.Solid {
			def.Health = max(e.Health, 1)
		}
		if e.Name == AirName && e.Solid {
			return nil, fmt.Errorf("%w: %q cannot be solid", ErrInvalidDocument, AirName)
		}
		if e.Color != "" {
			c, ok := core.ParseColor(e.Color)
			if !ok {
				return nil, fmt.Errorf("%w: kind %q: unknown color %q", ErrInvalidDocument, name, e.Color)
			}
			def.Color = c
		}
		if e.Glyph != "" {
			def.Glyph, _ = utf8.DecodeRuneInString(e.Glyph)
		}
		if e.Drop != "" {
			id, ok := r.index[e.Drop]
			if !ok {
				return nil, fmt.Errorf("%w %q (drop of %q)", ErrUnknownKind, e.Drop, name)
			}
			def.Drop = id
		}
		for _, f := range e.Frames {
			g, _ := utf8.DecodeRuneInString(f)
			def.Frames = append(def.Frames, g)
		}
		r.defs[i] = def
	}

	canon, err := json.Marshal(r.canonical())
	if err != nil {
		return nil, fmt.Errorf("kinds: digest: %w", err)
	}
	sum := sha256.Sum256(canon)
	r.digest = hex.EncodeToString(sum[:])
	return r, nil
}

// canonical returns the registry as palette-ordered entries for hashing.
func (r *Registry) canonical() []entry {
	out := make([]entry, len(r.defs))
	for i, d := range r.defs {
		e := entry{
			Name:   d.Name,
			Solid:  d.Solid,
			Health: d.Health,
			Color:  fmt.Sprint(uint8(d.Color)),
			Glyph:  string(d.Glyph),
			Drop:   r.defs[d.Drop].Name,
		}
		for _, f := range d.Frames {
			e.Frames = append(e.Frames, string(f))
		}
		out[i] = e
	}
	return out
}

// Lookup resolves a kind name to its id.
func (r *Registry) Lookup(name string) (KindID, error) {
	id, ok := r.index[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
	}
	return id, nil
}

// Get returns the definition for id.
func (r *Registry) Get(id KindID) (Def, error) {
	if int(id) >= len(r.defs) {
		return Def{}, fmt.Errorf("%w: id %d", ErrUnknownKind, id)
	}
	return r.defs[id], nil
}

// Name returns the kind name for id, or "?" if it does not resolve.
func (r *Registry) Name(id KindID) string {
	if int(id) >= len(r.defs) {
		return "?"
	}
	return r.defs[id].Name
}

// Solid reports whether id is a solid kind. Unknown ids are not solid.
func (r *Registry) Solid(id KindID) bool {
	return int(id) < len(r.defs) && r.defs[id].Solid
}

// Glyph returns the rune to draw for id at animation tick t.
func (r *Registry) Glyph(id KindID, t int) rune {
	if int(id) >= len(r.defs) {
		return '?'
	}
	d := r.defs[id]
	if len(d.Frames) == 0 {
		return d.Glyph
	}
	return d.Frames[(t%len(d.Frames)+len(d.Frames))%len(d.Frames)]
}

// Defs returns a copy of every definition in palette order.
func (r *Registry) Defs() []Def {
	out := make([]Def, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the palette size.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Digest is a sha256 over the resolved palette. Two registries with the
// same digest number and define their kinds identically.
func (r *Registry) Digest() string {
	return r.digest
}

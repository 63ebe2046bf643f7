package kinds

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-craft/internal/core"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	air, err := reg.Get(Air)
	if err != nil || air.Name != AirName || air.Solid {
		t.Fatalf("palette entry 0 = %+v, %v; expected non-solid air", air, err)
	}

	ground, err := reg.Lookup("ground")
	if err != nil {
		t.Fatalf("Lookup(ground) error = %v", err)
	}
	def, _ := reg.Get(ground)
	if !def.Solid || def.Health != 3 || def.Color != core.ColorBrown || def.Glyph != '#' {
		t.Errorf("ground def = %+v", def)
	}
	if def.Drop != ground {
		t.Errorf("ground should drop itself, got %s", reg.Name(def.Drop))
	}

	stone, _ := reg.Lookup("stone")
	cobble, _ := reg.Lookup("cobble")
	if d, _ := reg.Get(stone); d.Drop != cobble {
		t.Errorf("stone should drop cobble, got %s", reg.Name(d.Drop))
	}

	if reg.Digest() == "" || len(reg.Digest()) != 64 {
		t.Errorf("Digest() = %q, expected sha256 hex", reg.Digest())
	}
}

func TestPaletteOrdering(t *testing.T) {
	doc := `
kinds:
  - {name: zinc, solid: true}
  - {name: brick, solid: true, health: 2}
  - {name: air, solid: false}
`
	reg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	expected := []string{"air", "brick", "zinc"}
	defs := reg.Defs()
	if len(defs) != len(expected) {
		t.Fatalf("Len = %d, expected %d", len(defs), len(expected))
	}
	for i, name := range expected {
		if defs[i].Name != name || defs[i].ID != KindID(i) {
			t.Errorf("palette[%d] = %s (id %d), expected %s", i, defs[i].Name, defs[i].ID, name)
		}
	}

	zinc := defs[2]
	if zinc.Health != 1 {
		t.Errorf("solid kind without health should default to 1, got %d", zinc.Health)
	}

	// Reordering the document must not change ids or digest.
	reordered := `
kinds:
  - {name: air, solid: false}
  - {name: brick, solid: true, health: 2}
  - {name: zinc, solid: true}
`
	reg2, err := Parse([]byte(reordered))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if reg.Digest() != reg2.Digest() {
		t.Error("digest should not depend on document order")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			"unknown drop",
			"kinds:\n  - {name: air, solid: false}\n  - {name: ore, solid: true, drop: gem}\n",
			ErrUnknownKind,
		},
		{
			"missing air",
			"kinds:\n  - {name: ground, solid: true}\n",
			ErrUnknownKind,
		},
		{
			"missing solid field",
			"kinds:\n  - {name: air}\n",
			ErrInvalidDocument,
		},
		{
			"negative health",
			"kinds:\n  - {name: air, solid: false}\n  - {name: ore, solid: true, health: -1}\n",
			ErrInvalidDocument,
		},
		{
			"unexpected field",
			"kinds:\n  - {name: air, solid: false, sprite: air.png}\n",
			ErrInvalidDocument,
		},
		{
			"bad name",
			"kinds:\n  - {name: air, solid: false}\n  - {name: Big Rock, solid: true}\n",
			ErrInvalidDocument,
		},
		{
			"unknown color",
			"kinds:\n  - {name: air, solid: false, color: ultraviolet}\n",
			ErrInvalidDocument,
		},
		{
			"duplicate",
			"kinds:\n  - {name: air, solid: false}\n  - {name: air, solid: false}\n",
			ErrInvalidDocument,
		},
		{
			"solid air",
			"kinds:\n  - {name: air, solid: true}\n",
			ErrInvalidDocument,
		},
		{
			"empty",
			"",
			ErrInvalidDocument,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Lookup("unobtainium"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Lookup error = %v, expected ErrUnknownKind", err)
	}
	if _, err := reg.Get(KindID(reg.Len())); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Get error = %v, expected ErrUnknownKind", err)
	}
	if reg.Solid(KindID(reg.Len() + 5)) {
		t.Error("unknown id should not be solid")
	}
}

func TestGlyphFrames(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	lantern, err := reg.Lookup("lantern")
	if err != nil {
		t.Fatal(err)
	}

	expected := []rune{'o', 'O', '0', 'O', 'o'}
	for tick, want := range expected {
		if got := reg.Glyph(lantern, tick); got != want {
			t.Errorf("Glyph(lantern, %d) = %q, expected %q", tick, got, want)
		}
	}

	ground, _ := reg.Lookup("ground")
	if reg.Glyph(ground, 7) != '#' {
		t.Error("kinds without frames should use their glyph")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kinds.yaml")
	doc := "kinds:\n  - {name: air, solid: false}\n  - {name: sand, solid: true, health: 1, color: yellow, glyph: ':'}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error = %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, expected 2", reg.Len())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

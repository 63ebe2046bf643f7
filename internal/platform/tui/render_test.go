package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-craft/internal/core"
)

func TestRenderScreenPlainRows(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "dig")
	s.DrawText(1, 1, "up")

	expected := "dig   \n up   "
	if got := RenderScreen(s); got != expected {
		t.Errorf("RenderScreen = %q, expected %q", got, expected)
	}
}

func TestRenderScreenKeepsColoredText(t *testing.T) {
	s := core.NewScreen(8, 1)
	s.DrawTextColored(0, 0, "wood", core.ColorBrown)
	s.DrawTextColored(4, 0, "sky", core.ColorSky)

	got := RenderScreen(s)
	for _, part := range []string{"wood", "sky"} {
		if !strings.Contains(got, part) {
			t.Errorf("RenderScreen = %q, missing %q", got, part)
		}
	}
}

func TestEveryPaletteColorStyled(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorSky; c++ {
		if _, ok := styleFor(c); !ok {
			t.Errorf("color %d has no style", c)
		}
	}
	if _, ok := styleFor(core.ColorDefault); ok {
		t.Error("default color should render unstyled")
	}
	if _, ok := styleFor(core.Color(200)); ok {
		t.Error("unknown color should render unstyled")
	}
}

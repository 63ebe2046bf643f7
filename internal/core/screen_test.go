package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("NewScreen(80, 24) has size %dx%d", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '#', ColorBrown)
	got := s.GetCell(5, 5)
	if got.Rune != '#' || got.Color != ColorBrown {
		t.Errorf("GetCell(5, 5) = %+v, expected '#' in brown", got)
	}

	s.Set(5, 5, 'X')
	if got := s.GetCell(5, 5); got.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", got.Color)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)

	points := []Point{{-1, 0}, {4, 0}, {0, -1}, {0, 4}}
	for _, p := range points {
		s.SetColored(p.X, p.Y, 'A', ColorRed) // must not panic
		if s.Get(p.X, p.Y) != ' ' {
			t.Errorf("Get(%d, %d) out of bounds should be space", p.X, p.Y)
		}
		if s.InBounds(p.X, p.Y) {
			t.Errorf("InBounds(%d, %d) should be false", p.X, p.Y)
		}
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.FillCell(ScreenCell{Rune: '~', Color: ColorSky})
	if s.GetCell(2, 2).Color != ColorSky {
		t.Error("FillCell should fill color")
	}

	s.Clear()
	if s.String() != strings.TrimSuffix(strings.Repeat("     \n", 5), "\n") {
		t.Errorf("after Clear, screen = %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "wood×3", ColorYellow)

	if s.Row(1)[:2] != "  " {
		t.Error("DrawText should start at x=2")
	}
	// Multibyte runes take one column each.
	if s.Get(6, 1) != '×' || s.Get(7, 1) != '3' {
		t.Errorf("expected '×3' at x=6, got %q%q", s.Get(6, 1), s.Get(7, 1))
	}
	if s.GetCell(7, 1).Color != ColorYellow {
		t.Error("DrawTextColored should color every rune")
	}

	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered: row = %q", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.r {
			t.Errorf("corner (%d, %d) = %q, expected %q", c.x, c.y, got, c.r)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}

	s.DrawRect(NewRect(2, 2, 3, 2), '#')
	if s.Row(2) != " │###│    " {
		t.Errorf("DrawRect row = %q", s.Row(2))
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawHLine(2, 1, 5, '-')

	if s.Row(1) != "  -----   " {
		t.Errorf("DrawHLine row = %q", s.Row(1))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorGreen)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") || s.GetCell(0, 0).Color != ColorGreen {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Error("out of bounds row should be spaces")
	}
}

package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '[', ColorCyan)
	got := s.GetCell(5, 5)
	if got.Rune != '[' || got.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected '[' in cyan", got)
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(100, 0, 'A', ColorRed)
	s.SetColored(0, -1, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)

	if s.GetCell(-1, 0).Rune != ' ' {
		t.Error("Out of bounds GetCell should return space")
	}
	if s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds GetCell should be uncolored")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "XXXXXXXXXX", ColorRed)

	s.Clear()

	for x := 0; x < 10; x++ {
		if c := s.GetCell(x, 0); c != blankCell {
			t.Errorf("After Clear, expected blank at (%d, 0), got %+v", x, c)
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.GetCell(2+i, 1).Rune != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.GetCell(2+i, 1).Rune)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextColoredMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColored(0, 0, "←↓→", ColorBlue)

	expected := []rune{'←', '↓', '→'}
	for i, r := range expected {
		c := s.GetCell(i, 0)
		if c.Rune != r || c.Color != ColorBlue {
			t.Errorf("cell %d = %+v, expected %q in blue", i, c, r)
		}
	}
	if s.GetCell(3, 0).Rune != ' ' {
		t.Error("multibyte runes must occupy one cell each")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.GetCell(x, 2).Rune != 'H' || s.GetCell(x+1, 2).Rune != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

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
		got := s.GetCell(c.x, c.y)
		if got.Rune != c.r || got.Color != ColorGray {
			t.Errorf("corner (%d, %d) = %+v, expected %q in gray", c.x, c.y, got, c.r)
		}
	}

	for x := 2; x < 5; x++ {
		if s.GetCell(x, 1).Rune != '─' || s.GetCell(x, 4).Rune != '─' {
			t.Errorf("Horizontal edges should be '─' at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.GetCell(1, y).Rune != '│' || s.GetCell(5, y).Rune != '│' {
			t.Errorf("Vertical edges should be '│' at y=%d", y)
		}
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '_', ColorDim)

	for x := 2; x < 7; x++ {
		if s.GetCell(x, 2).Rune != '_' {
			t.Errorf("DrawHLine: expected '_' at (%d, 2), got %q", x, s.GetCell(x, 2).Rune)
		}
	}
	if s.GetCell(7, 2).Rune != ' ' {
		t.Error("DrawHLine drew past its length")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawTextColored(0, 1, "BBBBB", ColorRed)
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if row0 := line(s, 0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	s.Resize(15, 8)
	if row0 := line(s, 0); !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
	if row5 := line(s, 5); strings.TrimSpace(row5) != "" {
		t.Errorf("Rows cut by the shrink should come back blank, got %q", row5)
	}
}

func line(s *Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}

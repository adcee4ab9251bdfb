package sprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellsShapes(t *testing.T) {
	for k := Kind(0); k < NumKinds; k++ {
		for rot := 0; rot < 4; rot++ {
			seen := make(map[Point]bool)
			for _, c := range Cells(k, rot, 4, 10) {
				seen[c] = true
			}
			assert.Len(t, seen, 4, "%s rotation %d must occupy four distinct cells", k, rot)
		}
	}
}

func TestCellsYGrowsUpward(t *testing.T) {
	// J spawn: corner block sits above the bar.
	cells := Cells(KindJ, 0, 4, 10)
	assert.ElementsMatch(t, []Point{{3, 11}, {3, 10}, {4, 10}, {5, 10}}, cells[:])
}

func TestBlocked(t *testing.T) {
	b := NewBoard(10, 20, 20)
	b.Set(4, 5, KindO.Cell())

	tests := []struct {
		name string
		kind Kind
		rot  int
		x, y int
		want bool
	}{
		{"open space", KindT, 0, 4, 10, false},
		{"left wall", KindI, 0, 0, 10, true},
		{"right wall", KindI, 0, 8, 10, true},
		{"flush right", KindI, 0, 7, 10, false},
		{"floor", KindT, 2, 4, 0, true},
		{"ceiling", KindI, 1, 4, 39, true},
		{"overlap", KindT, 0, 4, 5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Blocked(tc.kind, tc.rot, tc.x, tc.y))
		})
	}
}

func TestSlide(t *testing.T) {
	b := NewBoard(10, 20, 20)

	p := NewPiece(KindT, 0, 4, 10)
	assert.Equal(t, 4, Slide(b, &p, Horizontal, 10))
	assert.Equal(t, 8, p.X)
	assert.Equal(t, Cells(KindT, 0, 8, 10), p.Cells)

	assert.Equal(t, -7, Slide(b, &p, Horizontal, -100))
	assert.Equal(t, 1, p.X)

	assert.Equal(t, -10, Slide(b, &p, Vertical, -40))
	assert.Equal(t, 0, p.Y)

	assert.Equal(t, 2, Slide(b, &p, Vertical, 2))
	assert.Equal(t, 2, p.Y)
}

func TestSlideZeroIsNoop(t *testing.T) {
	b := NewBoard(10, 20, 20)
	p := NewPiece(KindS, 0, 4, 10)
	before := p

	assert.Equal(t, 0, Slide(b, &p, Horizontal, 0))
	assert.Equal(t, before, p)
}

func TestSlideStopsAtStack(t *testing.T) {
	b := NewBoard(10, 20, 20)
	fillRow(b, 3, KindJ.Cell())

	p := NewPiece(KindO, 0, 4, 19)
	moved := Slide(b, &p, Vertical, -40)
	assert.Equal(t, -15, moved)
	assert.Equal(t, 4, p.Y)
	for _, c := range p.Cells {
		assert.Equal(t, Empty, b.At(c.X, c.Y))
	}
}

func TestGhostLeavesPieceAlone(t *testing.T) {
	b := NewBoard(10, 20, 20)
	p := NewPiece(KindT, 0, 4, 19)

	ghost := Ghost(b, p)
	assert.Equal(t, 0, ghost.Y)
	assert.Equal(t, 19, p.Y)
	assert.Equal(t, Cells(KindT, 0, 4, 0), ghost.Cells)
}

func TestSlideRepeatAfterBlockedIsNoop(t *testing.T) {
	b := NewBoard(10, 20, 20)
	b.Set(2, 10, KindO.Cell())

	tests := []struct {
		name      string
		axis      Axis
		magnitude int
	}{
		{"left into stack", Horizontal, -1},
		{"right wall", Horizontal, 1},
		{"floor", Vertical, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPiece(KindT, 0, 4, 10)
			Slide(b, &p, tc.axis, 40*tc.magnitude)
			stopped := p

			assert.Equal(t, 0, Slide(b, &p, tc.axis, tc.magnitude))
			assert.Equal(t, stopped, p)
			assert.Equal(t, 0, Slide(b, &p, tc.axis, 10*tc.magnitude))
			assert.Equal(t, stopped, p)
		})
	}
}

// unevenBoard builds a stack with no overhangs and a different height per
// column.
func unevenBoard() *Board {
	b := NewBoard(10, 20, 20)
	for x, h := range []int{0, 3, 1, 4, 2, 0, 5, 1, 2, 3} {
		for y := 0; y < h; y++ {
			b.Set(x, y, KindZ.Cell())
		}
	}
	return b
}

func TestDropOnUnevenStackRests(t *testing.T) {
	for k := Kind(0); k < NumKinds; k++ {
		for rot := 0; rot < 4; rot++ {
			for x := 0; x < 10; x++ {
				b := unevenBoard()
				if b.Blocked(k, rot, x, 30) {
					continue
				}
				p := NewPiece(k, rot, x, 30)
				Slide(b, &p, Vertical, -b.Height())
				assert.True(t, b.Blocked(k, rot, p.X, p.Y-1), "%s rot %d x %d can still fall", k, rot, x)

				supported := false
				for _, c := range p.Cells {
					if c.Y == 0 || b.At(c.X, c.Y-1) != Empty {
						supported = true
					}
				}
				b.Lock(p)
				assert.True(t, supported, "%s rot %d x %d floats at y %d", k, rot, x, p.Y)
				for _, c := range p.Cells {
					assert.Equal(t, k.Cell(), b.At(c.X, c.Y))
				}
			}
		}
	}
}

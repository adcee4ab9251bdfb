package sprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateTargetState(t *testing.T) {
	tests := []struct {
		spin Spin
		from int
		want int
	}{
		{SpinCW, 0, 1},
		{SpinCW, 3, 0},
		{SpinFlip, 0, 2},
		{SpinFlip, 3, 1},
		{SpinCCW, 0, 3},
		{SpinCCW, 1, 0},
	}

	for _, tc := range tests {
		b := NewBoard(10, 20, 20)
		p := NewPiece(KindT, tc.from, 4, 10)
		assert.True(t, Rotate(b, &p, tc.spin))
		assert.Equal(t, tc.want, p.Rot, "spin %d from %d", tc.spin, tc.from)
	}
}

func TestRotateOpenSpaceKeepsPivot(t *testing.T) {
	b := NewBoard(10, 20, 20)
	p := NewPiece(KindT, 0, 4, 10)

	assert.True(t, Rotate(b, &p, SpinCW))
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 10, p.Y)
	assert.Equal(t, Cells(KindT, 1, 4, 10), p.Cells)
}

func TestRotateLinePieceShiftsPivot(t *testing.T) {
	b := NewBoard(10, 20, 20)
	p := NewPiece(KindI, 0, 4, 10)

	assert.True(t, Rotate(b, &p, SpinCW))
	assert.Equal(t, 5, p.X)
	assert.Equal(t, 10, p.Y)
}

func TestRotateSquareOccupiesSameCells(t *testing.T) {
	b := NewBoard(10, 20, 20)
	p := NewPiece(KindO, 0, 4, 10)
	before := p.Cells

	for _, spin := range []Spin{SpinCW, SpinFlip, SpinCCW} {
		assert.True(t, Rotate(b, &p, spin))
		assert.ElementsMatch(t, before[:], p.Cells[:])
	}
}

func TestRotateUsesKick(t *testing.T) {
	b := NewBoard(10, 20, 20)
	b.Set(4, 9, KindZ.Cell())
	p := NewPiece(KindT, 0, 4, 10)

	assert.True(t, Rotate(b, &p, SpinCW))
	assert.Equal(t, 1, p.Rot)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 10, p.Y)
}

func TestRotateFailureLeavesPiece(t *testing.T) {
	b := NewBoard(10, 20, 20)
	p := NewPiece(KindT, 0, 4, 10)
	own := make(map[Point]bool)
	for _, c := range p.Cells {
		own[c] = true
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if !own[Point{x, y}] {
				b.Set(x, y, KindJ.Cell())
			}
		}
	}
	before := p

	for _, spin := range []Spin{SpinCW, SpinFlip, SpinCCW} {
		assert.False(t, Rotate(b, &p, spin))
		assert.Equal(t, before, p)
	}
}

func TestRotateFlipTable(t *testing.T) {
	t.Run("jlstz second candidate", func(t *testing.T) {
		b := NewBoard(10, 20, 20)
		b.Set(4, 9, KindZ.Cell())
		p := NewPiece(KindT, 0, 4, 10)

		assert.True(t, Rotate(b, &p, SpinFlip))
		assert.Equal(t, 2, p.Rot)
		assert.Equal(t, 4, p.X)
		assert.Equal(t, 11, p.Y)
	})

	t.Run("line piece uses its own row", func(t *testing.T) {
		b := NewBoard(10, 20, 20)
		b.Set(3, 9, KindZ.Cell())
		p := NewPiece(KindI, 0, 4, 10)

		assert.True(t, Rotate(b, &p, SpinFlip))
		assert.Equal(t, 2, p.Rot)
		assert.Equal(t, 5, p.X)
		assert.Equal(t, 10, p.Y)
	})

	t.Run("only two candidates", func(t *testing.T) {
		b := NewBoard(10, 20, 20)
		b.Set(4, 9, KindZ.Cell())
		b.Set(3, 11, KindZ.Cell())
		p := NewPiece(KindT, 0, 4, 10)
		before := p

		assert.False(t, Rotate(b, &p, SpinFlip))
		assert.Equal(t, before, p)
	})
}

func TestRotateDeterministic(t *testing.T) {
	b := NewBoard(10, 20, 20)
	fillRow(b, 0, KindL.Cell(), 4)
	b.Set(6, 2, KindS.Cell())

	a := NewPiece(KindS, 0, 4, 2)
	c := a
	for _, spin := range []Spin{SpinCW, SpinCW, SpinFlip, SpinCCW} {
		Rotate(b, &a, spin)
		Rotate(b, &c, spin)
		assert.Equal(t, a, c)
	}
}

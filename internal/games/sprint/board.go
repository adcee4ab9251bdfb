package sprint

import "strings"

// Cell is a board cell value. Zero is empty; any other value is opaque.
type Cell uint8

const (
	Empty Cell = 0
	// Washed marks cells greyed out once the goal is reached.
	Washed Cell = 11
)

// Board is the playfield. Row 0 is the bottom row and y grows upward.
// Rows at or above VisibleHeight are the hidden spawn buffer.
type Board struct {
	width   int
	height  int
	visible int
	cells   []Cell
}

// NewBoard creates an empty board with the given visible area and hidden
// rows stacked on top.
func NewBoard(width, visible, buffer int) *Board {
	return &Board{
		width:   width,
		height:  visible + buffer,
		visible: visible,
		cells:   make([]Cell, width*(visible+buffer)),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows including the hidden buffer.
func (b *Board) Height() int { return b.height }

// VisibleHeight returns the number of rows drawn to the player.
func (b *Board) VisibleHeight() int { return b.visible }

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[y*b.width+x]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Clear empties the whole board.
func (b *Board) Clear() {
	clear(b.cells)
}

// Lock writes the piece's cells into the board.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Cells {
		b.Set(c.X, c.Y, p.Kind.Cell())
	}
}

func (b *Board) row(y int) []Cell {
	return b.cells[y*b.width : (y+1)*b.width]
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.row(y) {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearLines removes every full row in a single bottom-to-top pass. Rows
// above a removed row move down by the number of rows removed below them and
// the vacated top rows are emptied. Returns the number of rows removed.
func (b *Board) ClearLines() int {
	cleared := 0
	for y := 0; y < b.height; y++ {
		if b.rowFull(y) {
			cleared++
			continue
		}
		if cleared > 0 {
			copy(b.row(y-cleared), b.row(y))
		}
	}
	for y := b.height - cleared; y < b.height; y++ {
		clear(b.row(y))
	}
	return cleared
}

// Wash greys out every occupied visible cell.
func (b *Board) Wash() {
	for y := 0; y < b.visible; y++ {
		row := b.row(y)
		for x, c := range row {
			if c != Empty {
				row[x] = Washed
			}
		}
	}
}

// Rows returns a copy of the board, bottom row first.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for y := range out {
		out[y] = append([]Cell(nil), b.row(y)...)
	}
	return out
}

// String dumps the visible rows top to bottom. Empty cells are '.', locked
// cells use the kind letter and washed cells are '#'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.visible)
	for y := b.visible - 1; y >= 0; y-- {
		for _, c := range b.row(y) {
			sb.WriteByte(cellGlyph(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellGlyph(c Cell) byte {
	switch {
	case c == Empty:
		return '.'
	case c == Washed:
		return '#'
	case int(c) <= NumKinds:
		return Kind(c - 1).String()[0]
	default:
		return '?'
	}
}

package sprint

import "github.com/vovakirdan/blockfall/internal/core"

// Kind identifies one of the seven piece shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ

	// NumKinds is the number of piece kinds, which is also the bag size.
	NumKinds = 7
)

// String returns the one-letter name of the kind.
func (k Kind) String() string {
	if int(k) >= NumKinds {
		return "?"
	}
	return "IJLOSTZ"[k : k+1]
}

// Cell returns the board value a locked piece of this kind leaves behind.
// Values are opaque to the rules; zero is reserved for empty.
func (k Kind) Cell() Cell {
	return Cell(k) + 1
}

// Color returns the display color of the kind.
func (k Kind) Color() core.Color {
	return kindColors[k%NumKinds]
}

var kindColors = [NumKinds]core.Color{
	core.ColorCyan,
	core.ColorBlue,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorMagenta,
	core.ColorRed,
}

// Point is a board coordinate or an offset. On the board x grows to the
// right and y grows upward from the bottom row.
type Point struct {
	X, Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// shapes holds the four occupied offsets of every kind in every rotation
// state, relative to the pivot. Offsets are written screen-style with y
// growing downward, so a cell sits at (pivot.X+dx, pivot.Y-dy) on the board.
var shapes = [NumKinds][4][4]Point{
	KindI: {
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		{{-2, 0}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -2}, {0, -1}, {0, 0}, {0, 1}},
	},
	KindJ: {
		{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {0, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, -1}, {0, 0}, {-1, 1}, {0, 1}},
	},
	KindL: {
		{{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
	},
	KindO: {
		{{0, -1}, {1, -1}, {0, 0}, {1, 0}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{-1, 0}, {0, 0}, {-1, 1}, {0, 1}},
		{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}},
	},
	KindS: {
		{{0, -1}, {1, -1}, {-1, 0}, {0, 0}},
		{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
		{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
	KindT: {
		{{0, -1}, {-1, 0}, {0, 0}, {1, 0}},
		{{0, -1}, {0, 0}, {1, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
	KindZ: {
		{{-1, -1}, {0, -1}, {0, 0}, {1, 0}},
		{{1, -1}, {0, 0}, {1, 0}, {0, 1}},
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{0, -1}, {-1, 0}, {0, 0}, {-1, 1}},
	},
}

// Class groups kinds that share a kick table.
type Class int

const (
	ClassJLSTZ Class = iota
	ClassI
	ClassO
)

// ClassOf returns the kick class of a kind.
func ClassOf(k Kind) Class {
	switch k {
	case KindI:
		return ClassI
	case KindO:
		return ClassO
	default:
		return ClassJLSTZ
	}
}

// kickCount is the number of kick candidates tried per class.
var kickCount = [3]int{5, 5, 1}

// kicks holds the per-state offset lists. A rotation from state a to state
// b tries pivot shifts kicks[class][a][i] - kicks[class][b][i] in order.
var kicks = [3][4][5]Point{
	ClassJLSTZ: {
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	},
	ClassI: {
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
		{{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
		{{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
		{{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
	},
	ClassO: {
		{{0, 0}},
		{{0, -1}},
		{{-1, -1}},
		{{-1, 0}},
	},
}

// flipKicks replaces kicks for 180 degree rotations of every class except
// O, the I piece included. Row 0 serves JLSTZ, row 1 serves I. Only two
// candidates exist.
var flipKicks = [2][4][2]Point{
	{
		{{0, 0}, {0, 1}},
		{{0, 0}, {1, 0}},
		{{0, 0}, {0, 0}},
		{{0, 0}, {0, 0}},
	},
	{
		{{1, 0}, {1, 0}},
		{{-1, 0}, {0, 0}},
		{{0, 1}, {0, 0}},
		{{0, 1}, {0, 1}},
	},
}

// Cells returns the board cells a piece of the given kind occupies in the
// given rotation state with its pivot at (x, y).
func Cells(k Kind, rot, x, y int) [4]Point {
	var out [4]Point
	for i, off := range shapes[k][rot&3] {
		out[i] = Point{X: x + off.X, Y: y - off.Y}
	}
	return out
}

// Piece is the active falling piece. Cells always matches Kind, Rot, X and
// Y: every accepted change goes through place.
type Piece struct {
	Kind  Kind
	Rot   int
	X, Y  int
	Cells [4]Point
}

// NewPiece creates a piece with its cells computed.
func NewPiece(k Kind, rot, x, y int) Piece {
	p := Piece{Kind: k}
	p.place(x, y, rot)
	return p
}

// place moves the pivot and rotation and recomputes the cached cells.
func (p *Piece) place(x, y, rot int) {
	p.X, p.Y, p.Rot = x, y, rot&3
	p.Cells = Cells(p.Kind, p.Rot, p.X, p.Y)
}

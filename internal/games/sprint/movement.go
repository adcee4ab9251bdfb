package sprint

// Axis selects the direction of a slide.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Blocked reports whether a piece of the given kind and rotation with its
// pivot at (x, y) would leave the board or overlap an occupied cell.
func (b *Board) Blocked(k Kind, rot, x, y int) bool {
	for _, c := range Cells(k, rot, x, y) {
		if !b.InBounds(c.X, c.Y) || b.At(c.X, c.Y) != Empty {
			return true
		}
	}
	return false
}

// Slide moves the piece one step at a time along the axis, up to magnitude
// steps, stopping before the first blocked position. Positive magnitude is
// right or up. Returns the displacement actually applied.
func Slide(b *Board, p *Piece, axis Axis, magnitude int) int {
	if magnitude == 0 {
		return 0
	}
	step := 1
	if magnitude < 0 {
		step = -1
	}

	moved := 0
	for moved != magnitude {
		x, y := p.X, p.Y
		if axis == Horizontal {
			x += moved + step
		} else {
			y += moved + step
		}
		if b.Blocked(p.Kind, p.Rot, x, y) {
			break
		}
		moved += step
	}

	if axis == Horizontal {
		p.place(p.X+moved, p.Y, p.Rot)
	} else {
		p.place(p.X, p.Y+moved, p.Rot)
	}
	return moved
}

// Ghost returns where the piece would land if hard dropped now.
func Ghost(b *Board, p Piece) Piece {
	Slide(b, &p, Vertical, -b.Height())
	return p
}

package sprint

// Spin is a rotation request. The target state is (rot + spin + 1) mod 4.
type Spin int

const (
	SpinCW Spin = iota
	SpinFlip
	SpinCCW
)

// Rotate tries every kick candidate in order and applies the first one that
// fits. When none fits the piece is left untouched and false is returned.
func Rotate(b *Board, p *Piece, s Spin) bool {
	src := p.Rot
	dst := (src + int(s) + 1) % 4
	class := ClassOf(p.Kind)

	for i := 0; i < kickCount[class]; i++ {
		var d Point
		// 180 degree turns use the flip table for every class but O,
		// including I. O keeps its regular kicks.
		if s == SpinFlip && class != ClassO {
			if i >= len(flipKicks[0][0]) {
				break
			}
			row := flipKicks[flipRow(class)]
			d = row[src][i].Sub(row[dst][i])
		} else {
			d = kicks[class][src][i].Sub(kicks[class][dst][i])
		}

		x, y := p.X+d.X, p.Y+d.Y
		if !b.Blocked(p.Kind, dst, x, y) {
			p.place(x, y, dst)
			return true
		}
	}
	return false
}

func flipRow(c Class) int {
	if c == ClassI {
		return 1
	}
	return 0
}

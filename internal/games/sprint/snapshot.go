package sprint

// PieceSnapshot describes the active piece and its landing position.
type PieceSnapshot struct {
	Kind       Kind
	Rotation   int
	X, Y       int
	Cells      [4]Point
	GhostY     int
	GhostCells [4]Point
}

// HoldSnapshot describes the hold slot.
type HoldSnapshot struct {
	Kind   Kind
	Empty  bool
	Usable bool // false once a hold was spent on the current piece
}

// Snapshot is a read-only copy of everything a renderer or test needs.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Board     [][]Cell // bottom row first, includes the hidden rows
	HasPiece  bool
	Piece     PieceSnapshot
	Preview   []Kind
	Hold      HoldSnapshot
	Stats     Stats
	Goal      int
	Remaining int
	DASLeft   int
	DASRight  int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Phase:     g.phase,
		Board:     g.board.Rows(),
		HasPiece:  g.phase == PhaseRunning,
		Preview:   g.queue.Preview(g.cfg.Rules.Preview),
		Hold:      HoldSnapshot{Kind: g.hold, Empty: !g.hasHold, Usable: !g.holdUsed},
		Stats:     g.stats,
		Goal:      g.cfg.Rules.GoalLines,
		Remaining: max(g.cfg.Rules.GoalLines-g.stats.Lines, 0),
	}
	s.DASLeft, s.DASRight = g.input.DAS()

	if s.HasPiece {
		ghost := Ghost(g.board, g.piece)
		s.Piece = PieceSnapshot{
			Kind:       g.piece.Kind,
			Rotation:   g.piece.Rot,
			X:          g.piece.X,
			Y:          g.piece.Y,
			Cells:      g.piece.Cells,
			GhostY:     ghost.Y,
			GhostCells: ghost.Cells,
		}
	}
	return s
}

// Outcome names how the round ended, or "" while it is still going.
func (s Snapshot) Outcome() string {
	switch s.Phase {
	case PhaseClearedOut:
		return "goal_reached"
	case PhaseAborted:
		return "aborted"
	default:
		return ""
	}
}

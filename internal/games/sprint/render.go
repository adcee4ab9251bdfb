package sprint

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

const (
	sidePanelW = 14 // hold box, stats and key display
	miniBoxW   = 10 // hold and preview boxes
)

// layout is where each part of the game lands on screen.
type layout struct {
	board core.Rect // includes the border
	hold  core.Rect
	next  core.Rect

	statsX, statsY int
}

func (g *Game) minScreen() (int, int) {
	boardW := 2*g.cfg.Board.Width + 2
	boardH := g.cfg.Board.VisibleHeight + 2
	return boardW + 2*sidePanelW, boardH + 1
}

func (g *Game) layout() layout {
	boardW := 2*g.cfg.Board.Width + 2
	boardH := g.cfg.Board.VisibleHeight + 2
	x := (g.screenW - boardW) / 2
	y := max((g.screenH-boardH)/2, 1)

	l := layout{board: core.NewRect(x, y, boardW, boardH)}
	l.hold = core.NewRect(x-sidePanelW, y, miniBoxW, 4)
	l.next = core.NewRect(l.board.Right()+2, y, miniBoxW, 3*g.cfg.Rules.Preview+1)
	l.statsX, l.statsY = x-sidePanelW, l.hold.Bottom()+1
	return l
}

// Render draws the game.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		minW, minH := g.minScreen()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	l := g.layout()
	dst.DrawTextColored(l.board.X, l.board.Y-1, g.Title(), core.ColorWhite)

	g.renderBoard(dst, l.board)
	g.renderHold(dst, l.hold)
	if g.cfg.Rules.Preview > 0 {
		g.renderPreview(dst, l.next)
	}
	g.renderStats(dst, l.statsX, l.statsY)
	g.renderOverlay(dst, l.board)
}

// cellPos maps a board cell to the left column of its two-column block.
func (g *Game) cellPos(frame core.Rect, x, y int) (int, int) {
	return frame.X + 1 + 2*x, frame.Y + 1 + (g.board.VisibleHeight() - 1 - y)
}

// drawBlock skips cells that fall outside the well, such as the hidden
// buffer rows above it.
func (g *Game) drawBlock(dst *core.Screen, frame core.Rect, p Point, c core.Color) {
	sx, sy := g.cellPos(frame, p.X, p.Y)
	if !frame.Inner().Contains(sx, sy) {
		return
	}
	dst.DrawTextColored(sx, sy, "[]", c)
}

func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	dst.DrawBox(frame, core.ColorGray)

	// The goal line marks the row that clears the last needed line.
	goalRow := g.cfg.Rules.GoalLines - g.stats.Lines
	if g.phase != PhaseClearedOut && goalRow >= 0 && goalRow < g.board.VisibleHeight() {
		in := frame.Inner()
		_, sy := g.cellPos(frame, 0, goalRow)
		dst.DrawHLine(in.X, sy, in.W, '_', core.ColorDim)
	}

	for y := 0; y < g.board.VisibleHeight(); y++ {
		for x := 0; x < g.board.Width(); x++ {
			switch c := g.board.At(x, y); {
			case c == Washed:
				g.drawBlock(dst, frame, Point{x, y}, core.ColorGray)
			case c != Empty:
				g.drawBlock(dst, frame, Point{x, y}, Kind(c-1).Color())
			}
		}
	}

	if g.phase != PhaseRunning {
		return
	}
	for _, p := range Ghost(g.board, g.piece).Cells {
		g.drawBlock(dst, frame, p, core.ColorDim)
	}
	for _, p := range g.piece.Cells {
		g.drawBlock(dst, frame, p, g.piece.Kind.Color())
	}
}

// drawMini draws a kind in spawn orientation with its top-left at (x, y).
func drawMini(dst *core.Screen, x, y int, k Kind, c core.Color) {
	for _, off := range shapes[k][0] {
		dst.DrawTextColored(x+2*(off.X+1), y+1+off.Y, "[]", c)
	}
}

func (g *Game) renderHold(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)
	dst.DrawText(box.X+1, box.Y, "HOLD")
	if !g.hasHold {
		return
	}
	c := g.hold.Color()
	if g.holdUsed {
		c = core.ColorGray
	}
	in := box.Inner()
	drawMini(dst, in.X, in.Y, g.hold, c)
}

func (g *Game) renderPreview(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)
	dst.DrawText(box.X+1, box.Y, "NEXT")
	in := box.Inner()
	for i, k := range g.queue.Preview(g.cfg.Rules.Preview) {
		drawMini(dst, in.X, in.Y+3*i, k, k.Color())
	}
}

// keyGlyphs labels the gameplay actions in the held-key display.
var keyGlyphs = [core.GameplayActions]rune{'←', '→', '↓', '▼', '↺', '↻', '⇅', 'H'}

func (g *Game) renderStats(dst *core.Screen, x0, y0 int) {
	s := g.stats
	lines := []string{
		fmt.Sprintf("Time  %s", FormatTime(s.ElapsedMs)),
		fmt.Sprintf("PPS   %.2f", s.PPS()),
		fmt.Sprintf("KPP   %.2f", s.KPP()),
		fmt.Sprintf("Hold  %d", s.Holds),
		fmt.Sprintf("Piece %d", s.Pieces),
		fmt.Sprintf("Lines %d/%d", s.Lines, g.cfg.Rules.GoalLines),
	}
	for i, line := range lines {
		dst.DrawText(x0, y0+i, line)
	}

	y := y0 + len(lines) + 1
	for i, r := range keyGlyphs {
		c := core.ColorDim
		if g.input != nil && g.input.Held(core.Action(i)) {
			c = core.ColorWhite
		}
		dst.SetColored(x0+i, y, r, c)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, frame core.Rect) {
	mid := frame.Y + frame.H/2
	center := func(y int, text string, c core.Color) {
		x := frame.X + (frame.W-len([]rune(text)))/2
		dst.DrawTextColored(x, y, text, c)
	}

	switch g.phase {
	case PhaseReady:
		if g.readyTicks > g.introTicks/2 {
			center(mid, "READY", core.ColorYellow)
		} else {
			center(mid, "GO!", core.ColorGreen)
		}
	case PhaseClearedOut:
		center(mid-1, "CLEAR!", core.ColorGreen)
		center(mid, FormatTime(g.stats.ElapsedMs), core.ColorWhite)
		center(mid+1, "R retry  Q quit", core.ColorDim)
	}
}

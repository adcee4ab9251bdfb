package rawterm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// ErrNotTerminal is returned when stdin is not a terminal.
var ErrNotTerminal = errors.New("rawterm: stdin is not a terminal")

// sizePollTicks is how often the loop re-reads the terminal size.
const sizePollTicks = 15

// Options configures a raw-terminal run.
type Options struct {
	Bindings map[core.Action][]string
	Player   string
	Logger   *log.Logger
}

// Run plays the game on the controlling terminal until the player quits or
// ctx is done.
func Run(ctx context.Context, game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	inFd := int(os.Stdin.Fd())
	outFd := int(os.Stdout.Fd())
	if !term.IsTerminal(inFd) {
		return ErrNotTerminal
	}

	if w, h, err := term.GetSize(outFd); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}

	oldState, err := term.MakeRaw(inFd)
	if err != nil {
		return fmt.Errorf("rawterm: cannot enter raw mode: %w", err)
	}
	defer term.Restore(inFd, oldState) //nolint:errcheck // Best-effort restore

	out := os.Stdout
	io.WriteString(out, "\x1b[?1049h\x1b[?25l"+enableKitty) //nolint:errcheck // Terminal setup
	defer io.WriteString(out, disableKitty+"\x1b[?25h\x1b[?1049l") //nolint:errcheck // Terminal teardown

	// The reader goroutine stays blocked in Read after Run returns; the
	// process is about to exit at that point.
	input := make(chan []byte, 16)
	go readInput(os.Stdin, input)

	s := newSession(game, store, cfg, opts)
	s.game.Reset(s.config)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	pacer := core.NewPacer(cfg.TickRate)

	for tick := 0; ; tick++ {
		pacer.Begin()

		if err := ctx.Err(); err != nil {
			return nil
		}

	drain:
		for {
			select {
			case p, ok := <-input:
				if !ok {
					return nil
				}
				s.feed(p)
			default:
				break drain
			}
		}
		if s.quit {
			return nil
		}

		if tick%sizePollTicks == 0 {
			if w, h, err := term.GetSize(outFd); err == nil {
				s.resize(w, h)
				screen.Resize(w, h)
			}
		}

		s.step()
		if s.quit {
			return nil
		}

		screen.Clear()
		s.game.Render(screen)
		if _, err := io.WriteString(out, frameBytes(screen)); err != nil {
			return fmt.Errorf("rawterm: cannot write frame: %w", err)
		}

		pacer.Wait()
	}
}

// frameBytes homes the cursor and draws the screen with raw-mode line
// endings.
func frameBytes(screen *core.Screen) string {
	return "\x1b[H" + strings.ReplaceAll(tui.RenderScreen(screen), "\n", "\r\n")
}

func readInput(r io.Reader, ch chan<- []byte) {
	defer close(ch)
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p := make([]byte, n)
			copy(p, buf[:n])
			ch <- p
		}
		if err != nil {
			return
		}
	}
}

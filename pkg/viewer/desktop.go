//go:build desktop

package viewer

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Desktop shows the window in a native window. Run must be called from the
// main goroutine.
type Desktop struct {
	cfg config
}

func newDesktop(cfg config) (compose.Interactor, error) { return &Desktop{cfg: cfg}, nil }

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (d *Desktop) Run(ctx context.Context, w *compose.Window) error {
	d.cfg.attach(w)
	ebiten.SetWindowTitle(w.Name)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g := &desktopGame{ctx: ctx, w: w, controls: d.cfg.controls}
	if err := ebiten.RunGame(g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "desktop viewer")
	}
	return g.err
}

type desktopGame struct {
	ctx      context.Context
	w        *compose.Window
	controls *Controls
	err      error

	screen  *ebiten.Image
	painted bool
	chars   []rune
}

var desktopKeys = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeyEscape:     KeyEsc,
}

func (g *desktopGame) Update() error {
	if g.ctx.Err() != nil || g.w.State() == compose.Closed {
		return ebiten.Termination
	}
	if g.w.Drain() > 0 {
		g.painted = false
	}

	var keys []string
	for k, name := range desktopKeys {
		if inpututil.IsKeyJustPressed(k) {
			keys = append(keys, name)
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		keys = append(keys, string(r))
	}

	for _, k := range keys {
		if isQuit(k) {
			return ebiten.Termination
		}
		if err := press(g.w, g.controls, k); err != nil {
			g.err = err
			return ebiten.Termination
		}
		g.painted = false
	}
	return nil
}

func (g *desktopGame) Draw(screen *ebiten.Image) {
	frame := g.w.Frame()
	if frame == nil {
		return
	}
	if !g.painted || g.screen == nil {
		g.screen = ebiten.NewImageFromImage(frame)
		g.painted = true
	}
	screen.DrawImage(g.screen, nil)
}

func (g *desktopGame) Layout(_, _ int) (int, int) {
	return g.w.Width, g.w.Height
}

var _ compose.Interactor = (*Desktop)(nil)

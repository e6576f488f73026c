package compose

import (
	"context"
	"image"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/layout"
)

// State is a window lifecycle state.
type State int

const (
	Building State = iota
	Rendered
	Interactive
	Closed
)

func (s State) String() string {
	switch s {
	case Building:
		return "Building"
	case Rendered:
		return "Rendered"
	case Interactive:
		return "Interactive"
	case Closed:
		return "Closed"
	}
	return "Unknown"
}

// Painter turns a window into pixels. Backends implement it; the composer
// only calls it from Render.
type Painter interface {
	Paint(w *Window) (*image.RGBA, error)
}

// Interactor runs the event loop of an interactive window. Run returns when
// the user closes the window or ctx is cancelled; it must call
// Window.Drain regularly so posted work executes on the loop goroutine.
type Interactor interface {
	Run(ctx context.Context, w *Window) error
}

// Window is a composed multi-view window. All methods except Post must be
// called from the goroutine that owns the window.
type Window struct {
	Name          string
	Width, Height int
	Grid          layout.Grid
	Renderers     []*Renderer

	// Diagnostics collects non-fatal issues found while composing.
	Diagnostics []error

	state   State
	obs     observers
	painter Painter
	frame   *image.RGBA
	logger  *log.Logger

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func newWindow(name string, width, height int, grid layout.Grid, logger *log.Logger, p Painter) *Window {
	return &Window{
		Name:    name,
		Width:   width,
		Height:  height,
		Grid:    grid,
		logger:  logger,
		painter: p,
		wake:    make(chan struct{}, 1),
	}
}

// State returns the lifecycle state.
func (w *Window) State() State { return w.state }

// Logger returns the window logger.
func (w *Window) Logger() *log.Logger { return w.logger }

// ContentRenderers returns the renderers of content cells in grid order.
func (w *Window) ContentRenderers() []*Renderer {
	var out []*Renderer
	for _, r := range w.Renderers {
		if !r.Filler {
			out = append(out, r)
		}
	}
	return out
}

// SetPainter replaces the backend used by Render.
func (w *Window) SetPainter(p Painter) { w.painter = p }

// Frame returns the image produced by the last Render, or nil when the
// window has no painter.
func (w *Window) Frame() *image.RGBA { return w.frame }

// AddObserver registers fn for events of kind and returns its id.
func (w *Window) AddObserver(kind EventKind, fn func(Event)) int {
	return w.obs.add(kind, nil, fn)
}

// RemoveObserver unregisters an observer. It reports whether id was found.
func (w *Window) RemoveObserver(id int) bool { return w.obs.remove(id) }

// ObserverCount returns the number of observers registered for kind.
func (w *Window) ObserverCount(kind EventKind) int { return w.obs.count(kind) }

// Render draws the window. The first call switches every widget on.
func (w *Window) Render() error {
	switch w.state {
	case Closed:
		return errors.New(errors.ErrCodeInvalidState, "render on a closed window")
	case Building:
		for _, r := range w.Renderers {
			for _, wd := range r.Widgets {
				wd.enable(w)
			}
		}
		w.state = Rendered
	}
	if w.painter != nil {
		img, err := w.painter.Paint(w)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "paint %s", w.Name)
		}
		w.frame = img
	}
	w.obs.fire(Event{Kind: RenderEvent})
	return nil
}

// KeyPress dispatches a key to observers.
func (w *Window) KeyPress(key string) {
	if w.state == Closed {
		return
	}
	w.obs.fire(Event{Kind: KeyPress, Key: key})
}

// Start renders the window if needed and runs the interactor until it
// returns, then closes the window.
func (w *Window) Start(ctx context.Context, it Interactor) error {
	switch w.state {
	case Closed:
		return errors.New(errors.ErrCodeInvalidState, "start on a closed window")
	case Interactive:
		return errors.New(errors.ErrCodeInvalidState, "window is already interactive")
	case Building:
		if err := w.Render(); err != nil {
			return err
		}
	}
	w.state = Interactive
	w.logger.Debug("interactive", "window", w.Name, "size", [2]int{w.Width, w.Height})
	err := it.Run(ctx, w)
	w.Close()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Close releases widget observers, notifies Close observers and marks the
// window closed. Closing twice is a no-op.
func (w *Window) Close() {
	if w.state == Closed {
		return
	}
	released := w.obs.removeOwned()
	for _, r := range w.Renderers {
		for _, wd := range r.Widgets {
			wd.disable()
		}
	}
	w.obs.fire(Event{Kind: CloseEvent})
	w.obs.list = nil
	w.state = Closed
	w.logger.Debug("closed", "window", w.Name, "released", released)
}

// Post queues fn to run on the window goroutine at the next Drain. It is
// safe to call from any goroutine.
func (w *Window) Post(fn func()) {
	w.mu.Lock()
	w.queue = append(w.queue, fn)
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Posted is signalled after Post; interactors select on it to wake up.
func (w *Window) Posted() <-chan struct{} { return w.wake }

// Drain runs all queued functions in order and returns how many ran.
func (w *Window) Drain() int {
	w.mu.Lock()
	q := w.queue
	w.queue = nil
	w.mu.Unlock()
	for _, fn := range q {
		fn()
	}
	return len(q)
}

func (w *Window) diagnose(err error) {
	w.Diagnostics = append(w.Diagnostics, err)
	w.logger.Warn(errors.UserMessage(err), "code", errors.GetCode(err))
}

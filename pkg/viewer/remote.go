package viewer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/observability"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/sink"
	"github.com/matzehuels/viewgrid/pkg/scene"
)

// Remote serves the window over HTTP. Requests never touch the window
// directly; they post work to the window goroutine and wait for it.
//
// Routes:
//
//	GET  /                  page showing the frame with key buttons
//	GET  /frame.{format}    current frame in any output format
//	GET  /state             camera state of every view as JSON
//	POST /keys/{key}        press a key
//	POST /snapshots         store the current PNG frame, returns its id
//	GET  /snapshots/{id}    fetch a stored snapshot
//	POST /close             close the window
type Remote struct {
	cfg config

	mu        sync.Mutex
	snapshots map[string][]byte
	addr      net.Addr
	ready     chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewRemote returns a remote viewer listening on the configured address.
func NewRemote(opts ...Option) *Remote {
	return &Remote{
		cfg:       newConfig(opts),
		snapshots: make(map[string][]byte),
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Addr returns the bound address once the server listens. It blocks until
// then.
func (rv *Remote) Addr() net.Addr {
	<-rv.ready
	return rv.addr
}

// Run listens on the configured address and serves until the window is
// closed over HTTP or ctx is cancelled.
func (rv *Remote) Run(ctx context.Context, w *compose.Window) error {
	rv.cfg.attach(w)
	ln, err := net.Listen("tcp", rv.cfg.addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "listen %s", rv.cfg.addr)
	}
	rv.addr = ln.Addr()
	close(rv.ready)

	srv := &http.Server{
		Handler:           rv.Handler(w),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	rv.cfg.logger.Info("remote viewer listening", "url", "http://"+ln.Addr().String())

	err = rv.loop(ctx, w)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		rv.cfg.logger.Warn("remote viewer shutdown", "error", serr)
	}
	if serr := <-serveErr; serr != nil && serr != http.ErrServerClosed && err == nil {
		err = serr
	}
	return err
}

// loop owns the window: it runs posted work until closed. Requests made
// after it returns fail with INVALID_STATE.
func (rv *Remote) loop(ctx context.Context, w *compose.Window) error {
	defer close(rv.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rv.done:
			w.Drain()
			return nil
		case <-w.Posted():
			w.Drain()
		}
	}
}

func (rv *Remote) stop() { rv.closeOnce.Do(func() { close(rv.done) }) }

// Handler returns the HTTP routes for w. A goroutine must drain w, as
// Run does.
func (rv *Remote) Handler(w *compose.Window) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestHooks)

	r.Get("/", rv.index(w))
	r.Get("/frame.{format}", rv.frame(w))
	r.Get("/state", rv.state(w))
	r.Post("/keys/{key}", rv.key(w))
	r.Post("/snapshots", rv.snapshot(w))
	r.Get("/snapshots/{id}", rv.getSnapshot)
	r.Post("/close", rv.close(w))
	return r
}

// requestHooks reports every request to the viewer hooks.
func requestHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Viewer().OnRequest(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// onWindow runs fn on the window goroutine and waits for its result. It
// gives up once stopped is closed, since nothing drains the window then.
func onWindow[T any](ctx context.Context, stopped <-chan struct{}, w *compose.Window, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	var zero T
	select {
	case <-stopped:
		return zero, errWindowClosed(w)
	default:
	}
	ch := make(chan result, 1)
	w.Post(func() {
		v, err := fn()
		ch <- result{v, err}
	})
	select {
	case res := <-ch:
		return res.v, res.err
	case <-stopped:
		return zero, errWindowClosed(w)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func errWindowClosed(w *compose.Window) error {
	return errors.New(errors.ErrCodeInvalidState, "window %s is closed", w.Name)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRange:
		status = http.StatusBadRequest
	case errors.ErrCodeInvalidState:
		status = http.StatusConflict
	case errors.ErrCodeMissingFile:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"code":    string(errors.GetCode(err)),
		"message": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Handlers
// =============================================================================

func (rv *Remote) index(win *compose.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := onWindow(r.Context(), rv.stopped, win, func() (string, error) { return win.Name, nil })
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTemplate.Execute(w, indexData{Name: name, Keys: Help()})
	}
}

func (rv *Remote) frame(win *compose.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := render.ParseFormat(chi.URLParam(r, "format"))
		if err != nil {
			writeError(w, err)
			return
		}
		data, err := onWindow(r.Context(), rv.stopped, win, func() ([]byte, error) {
			if f.Raster() && win.Frame() == nil {
				if err := win.Render(); err != nil {
					return nil, err
				}
			}
			return sink.Encode(win, f)
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", f.MIME())
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(data)
	}
}

// ViewState is the camera of one view as reported by GET /state.
type ViewState struct {
	Index      int                `json:"index"`
	Title      string             `json:"title,omitempty"`
	Active     bool               `json:"active"`
	Position   [3]float64         `json:"position"`
	FocalPoint [3]float64         `json:"focal_point"`
	ViewUp     [3]float64         `json:"view_up"`
	Nudges     scene.NudgeRecord  `json:"nudges"`
	Sliders    map[string]float64 `json:"sliders,omitempty"`
}

// WindowState is the body of GET /state.
type WindowState struct {
	Name   string      `json:"name"`
	State  string      `json:"state"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Views  []ViewState `json:"views"`
}

func (rv *Remote) state(win *compose.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := onWindow(r.Context(), rv.stopped, win, func() (WindowState, error) {
			return snapshotState(win, rv.cfg.controls), nil
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func snapshotState(win *compose.Window, c *Controls) WindowState {
	st := WindowState{Name: win.Name, State: win.State().String(), Width: win.Width, Height: win.Height}
	active := c.Active(win)
	for _, r := range win.ContentRenderers() {
		v := ViewState{Index: r.Index, Title: r.Title, Active: r == active}
		if cam := r.Camera; cam != nil {
			v.Position, v.FocalPoint, v.ViewUp = cam.Position, cam.FocalPoint, cam.ViewUp
			v.Nudges = cam.Record
		}
		for _, s := range r.Sliders() {
			if v.Sliders == nil {
				v.Sliders = make(map[string]float64)
			}
			v.Sliders[s.Title] = s.Value()
		}
		st.Views = append(st.Views, v)
	}
	return st
}

func (rv *Remote) key(win *compose.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := url.PathUnescape(chi.URLParam(r, "key"))
		if err != nil || k == "" {
			writeError(w, errors.New(errors.ErrCodeInvalidRange, "bad key %q", chi.URLParam(r, "key")))
			return
		}
		if isQuit(k) {
			rv.close(win)(w, r)
			return
		}
		_, err = onWindow(r.Context(), rv.stopped, win, func() (struct{}, error) {
			return struct{}{}, press(win, rv.cfg.controls, k)
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (rv *Remote) snapshot(win *compose.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := onWindow(r.Context(), rv.stopped, win, func() ([]byte, error) {
			if win.Frame() == nil {
				if err := win.Render(); err != nil {
					return nil, err
				}
			}
			return sink.Encode(win, render.PNG)
		})
		if err != nil {
			writeError(w, err)
			return
		}
		id := uuid.NewString()
		rv.mu.Lock()
		rv.snapshots[id] = data
		rv.mu.Unlock()
		observability.Viewer().OnSnapshot(r.Context(), "/snapshots/"+id, 1, nil)
		w.Header().Set("Location", "/snapshots/"+id)
		writeJSON(w, http.StatusCreated, map[string]any{"id": id, "bytes": len(data)})
	}
}

func (rv *Remote) getSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidRange, "bad snapshot id %q", id))
		return
	}
	rv.mu.Lock()
	data, ok := rv.snapshots[id]
	rv.mu.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeMissingFile, "no snapshot %s", id))
		return
	}
	w.Header().Set("Content-Type", render.PNG.MIME())
	_, _ = w.Write(data)
}

func (rv *Remote) close(win *compose.Window) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rv.stop()
		w.WriteHeader(http.StatusNoContent)
	}
}

package viewer

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Kind selects a viewer backend.
type Kind string

const (
	KindTerm    Kind = "term"
	KindRemote  Kind = "remote"
	KindDesktop Kind = "desktop"
	KindNone    Kind = "none"
)

// Kinds lists every viewer kind in help order.
func Kinds() []Kind { return []Kind{KindTerm, KindRemote, KindDesktop, KindNone} }

// ParseKind converts a flag value to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown viewer %q, want term, remote, desktop or none", s)
}

// DefaultAddr is where the remote viewer listens unless WithAddr is given.
const DefaultAddr = "127.0.0.1:8765"

type config struct {
	addr     string
	logger   *log.Logger
	controls *Controls
	snap     *Snapshotter
}

// Option configures a viewer.
type Option func(*config)

// WithAddr sets the listen address of the remote viewer.
func WithAddr(addr string) Option { return func(c *config) { c.addr = addr } }

// WithLogger sets the viewer logger.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// WithControls replaces the default camera controls.
func WithControls(ctl *Controls) Option { return func(c *config) { c.controls = ctl } }

// WithSnapshotter attaches s to the window when the viewer starts.
func WithSnapshotter(s *Snapshotter) Option { return func(c *config) { c.snap = s } }

func newConfig(opts []Option) config {
	c := config{addr: DefaultAddr}
	for _, o := range opts {
		o(&c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.controls == nil {
		c.controls = NewControls()
	}
	return c
}

// attach wires the snapshotter, if any, into w.
func (c config) attach(w *compose.Window) {
	if c.snap != nil {
		c.snap.Attach(w)
	}
}

// New returns the interactor for kind.
func New(kind Kind, opts ...Option) (compose.Interactor, error) {
	cfg := newConfig(opts)
	switch kind {
	case KindTerm:
		return &Term{cfg: cfg}, nil
	case KindRemote:
		return NewRemote(opts...), nil
	case KindDesktop:
		return newDesktop(cfg)
	case KindNone, "":
		return None{}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown viewer %q", kind)
}

// None returns as soon as it starts, so Start renders once and closes.
// Off-screen runs and tests use it.
type None struct{}

// Run drains pending work and returns.
func (None) Run(ctx context.Context, w *compose.Window) error {
	w.Drain()
	return ctx.Err()
}

var (
	_ compose.Interactor = None{}
	_ compose.Interactor = (*Term)(nil)
	_ compose.Interactor = (*Remote)(nil)
)

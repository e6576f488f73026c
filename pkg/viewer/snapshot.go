package viewer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/viewgrid/pkg/compose"
	"github.com/matzehuels/viewgrid/pkg/errors"
	"github.com/matzehuels/viewgrid/pkg/observability"
	"github.com/matzehuels/viewgrid/pkg/render"
	"github.com/matzehuels/viewgrid/pkg/render/sink"
)

// SnapshotKey writes a snapshot in every viewer.
const SnapshotKey = "k"

// DefaultSnapshotPath returns the snapshot file for a program or scene:
// its base name without extension, plus .png.
func DefaultSnapshotPath(program string) string {
	base := filepath.Base(program)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

// Snapshotter writes the current frame of a window to a single image file.
// Failed writes are retried with exponential backoff and then logged; they
// never close the window.
type Snapshotter struct {
	Path    string
	Format  render.Format
	Quality int
	// MaxRetries bounds the attempts after the first.
	MaxRetries uint64
	Interval   time.Duration

	logger *log.Logger
	write  func(path string, data []byte) error
}

// NewSnapshotter returns a snapshotter for path, which must end in .png,
// .jpg or .jpeg.
func NewSnapshotter(path string, logger *log.Logger) (*Snapshotter, error) {
	if err := errors.ValidateSnapshotPath(path); err != nil {
		return nil, err
	}
	f, err := render.FormatOf(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Snapshotter{
		Path:       path,
		Format:     f,
		Quality:    sink.DefaultJPEGQuality,
		MaxRetries: 3,
		Interval:   50 * time.Millisecond,
		logger:     logger,
		write: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
	}, nil
}

// Attach saves a snapshot whenever SnapshotKey is pressed in w. It returns
// the observer id.
func (s *Snapshotter) Attach(w *compose.Window) int {
	return w.AddObserver(compose.KeyPress, func(ev compose.Event) {
		if ev.Key != SnapshotKey {
			return
		}
		if err := s.Save(context.Background(), w); err != nil {
			s.logger.Error("snapshot failed", "path", s.Path, "error", err)
		}
	})
}

// Save encodes the current frame of w and writes it to s.Path.
func (s *Snapshotter) Save(ctx context.Context, w *compose.Window) error {
	if w.Frame() == nil {
		if err := w.Render(); err != nil {
			return err
		}
	}
	data, err := sink.Encode(w, s.Format, sink.WithQuality(s.Quality))
	if err != nil {
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.Interval
	b.RandomizationFactor = 0
	attempt := 0
	op := func() error {
		attempt++
		err := s.write(s.Path, data)
		observability.Viewer().OnSnapshot(ctx, s.Path, attempt, err)
		return err
	}
	notify := func(err error, next time.Duration) {
		s.logger.Warn("snapshot write failed, retrying", "path", s.Path, "attempt", attempt, "in", next, "error", err)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.MaxRetries), ctx)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write snapshot %s", s.Path)
	}
	s.logger.Info("snapshot saved", "path", s.Path, "bytes", len(data))
	return nil
}

package colormap

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Watch reloads a colormap every time its file is written or replaced and
// hands the new CTF (or the load error) to onChange. The directory is
// watched rather than the file so editors that save by rename are seen.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path, name string, discretize bool, tableSize int, onChange func(*CTF, error)) error {
	path = ResolvePath(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMissingFile, err, "resolve %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeMissingFile, err, "watch %s", filepath.Dir(abs))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			onChange(Load(abs, name, discretize, tableSize))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onChange(nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", abs))
		}
	}
}

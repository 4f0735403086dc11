package fsops

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	perrors "github.com/jmgilman/go/errors"

	"github.com/flarebyte/nodecli/internal/luafilter"
)

// Event is one change reported by Watch. Op is one of create, write,
// remove, rename or chmod; Name is the base name of the changed path.
type Event struct {
	Op   string
	Name string
}

func (e Event) globals() map[string]any {
	return map[string]any{"event": e.Op, "name": e.Name}
}

// WatchOptions tunes Watch.
type WatchOptions struct {
	// Filter drops events for which the predicate is false.
	Filter *luafilter.Filter
	// MaxEvents stops the watch after that many delivered events; 0 means
	// until ctx is done.
	MaxEvents int
	// Ready is called once the watch is registered.
	Ready func()
}

// Watch reports changes to name (a file or a directory) to fn until ctx is
// done, fn returns an error or MaxEvents events were delivered. Only
// OS-backed filesystems can be watched.
func (f *FS) Watch(ctx context.Context, name string, opts WatchOptions, fn func(Event) error) error {
	p, ok := f.OSPath(name)
	if !ok {
		return perrors.Newf(perrors.CodeNotImplemented, "watch %s: filesystem is not backed by the OS", name)
	}
	if _, err := f.fs.Stat(name); err != nil {
		return pathError(err, "watch", name)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return perrors.Wrap(err, perrors.CodeExecutionFailed, "create watcher")
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(p); err != nil {
		return pathError(err, "watch", name)
	}
	f.log.Debug("fs watch started", "path", name)
	if opts.Ready != nil {
		opts.Ready()
	}

	delivered := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			e := Event{Op: opName(ev.Op), Name: filepath.Base(ev.Name)}
			if opts.Filter != nil {
				keep, err := opts.Filter.Match(ctx, e.globals())
				if err != nil {
					f.log.Warn("watch filter failed", "event", e.Op, "name", e.Name, "err", err)
					continue
				}
				if !keep {
					continue
				}
			}
			if err := fn(e); err != nil {
				return err
			}
			delivered++
			if opts.MaxEvents > 0 && delivered >= opts.MaxEvents {
				return nil
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.log.Warn("watch error", "path", name, "err", err)
		}
	}
}

// opName returns the first operation set in op.
func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	case op.Has(fsnotify.Chmod):
		return "chmod"
	}
	return "unknown"
}

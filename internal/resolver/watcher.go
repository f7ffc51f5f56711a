package resolver

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"crucible/internal/config"
	"crucible/pkg/logging"
)

// defaultDebounceInterval is how long the watcher waits for further writes
// before reloading; editors tend to produce bursts of events per save.
const defaultDebounceInterval = 500 * time.Millisecond

// Resolver holds the current Resolved snapshot and can refresh it when the
// configuration file changes. Readers call Active without locking; Reload
// swaps the snapshot pointer atomically and keeps the previous snapshot
// when the new configuration fails to resolve.
type Resolver struct {
	opts     Options
	path     string
	debounce time.Duration
	snapshot atomic.Pointer[Resolved]
}

// New resolves the configuration once and returns a Resolver seeded with
// the snapshot.
func New(opts Options) (*Resolver, error) {
	resolved, err := Load(opts)
	if err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		// Load succeeded, so the default path resolves.
		path, _ = config.DefaultConfigPath()
	}

	r := &Resolver{opts: opts, path: path, debounce: defaultDebounceInterval}
	r.snapshot.Store(resolved)
	return r, nil
}

// Active returns the current snapshot.
func (r *Resolver) Active() *Resolved {
	return r.snapshot.Load()
}

// Reload re-runs the pipeline and swaps in the new snapshot. On failure the
// previous snapshot stays active and the error is returned.
func (r *Resolver) Reload() error {
	resolved, err := Load(r.opts)
	if err != nil {
		return err
	}
	r.snapshot.Store(resolved)
	return nil
}

// Watch reloads the configuration whenever the file changes, until the
// context is cancelled. Reload failures are logged and the last good
// snapshot stays active.
func (r *Resolver) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file: most editors replace the
	// file on save, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return err
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(r.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := r.Reload(); err != nil {
				logging.Error("Resolver", err, "Reload of %s failed, keeping previous configuration", r.path)
			} else {
				logging.Info("Resolver", "Reloaded configuration from %s", r.path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Resolver", "Configuration watcher error: %v", err)
		}
	}
}

package config

import (
	"context"
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher holds a Config that is reloaded automatically when its backing
// file changes on disk. Grounded on kflib.go's DBWatcher: the same
// lock-guarded "pending update" flag observed lazily by the reader, with the
// filesystem event loop running in its own goroutine via Run.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher

	mu        sync.Mutex
	cfg       *Config
	hasUpdate bool
}

// NewWatcher returns a Watcher serving cfg, reloading it from path whenever
// path changes.
func NewWatcher(cfg *Config, path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Register the watch here rather than in Run, so a change made right
	// after NewWatcher returns is seen even if Run has not started yet.
	fw.Add(path)
	return &Watcher{path: path, fw: fw, cfg: cfg}, nil
}

// Config returns the current configuration. If a filesystem change is
// pending, Config first tries to reload it; on a load error the previous
// configuration is kept and the error is logged, matching DBWatcher.Store's
// don't-crash-the-server behavior.
func (w *Watcher) Config() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.hasUpdate {
		c, err := Load(w.path)
		if err != nil {
			log.Printf("WARNING: reload config %q: %v (skipped)", w.path, err)
			w.hasUpdate = false
		} else {
			log.Printf("reloaded config %q", w.path)
			w.hasUpdate = false
			w.cfg = c
		}
	}
	return w.cfg
}

// Run monitors path for changes until ctx ends or the watcher is closed. Run
// should be started in its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()

	for {
		select {
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if evt.Op&fsnotify.Rename != 0 {
				log.Printf("config %q has moved; stopping the watcher", w.path)
				return
			} else if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.mu.Lock()
			w.hasUpdate = true
			w.mu.Unlock()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("WARNING: watching config %q: %v", w.path, err)
		case <-ctx.Done():
			return
		}
	}
}

package levels

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay groups bursts of file events into one reload.
const DefaultReloadDelay = 250 * time.Millisecond

// Watcher reloads a catalog when level files in a directory change.
type Watcher struct {
	dir     string
	catalog *Catalog
	logger  *log.Logger
	delay   time.Duration
	watcher *fsnotify.Watcher

	// OnReload is called after each successful reload with the new level count.
	OnReload func(count int)
}

// NewWatcher creates a watcher for dir. logger may be nil.
func NewWatcher(dir string, catalog *Catalog, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("levels: creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("levels: watching %s: %w", dir, err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{
		dir:     dir,
		catalog: catalog,
		logger:  logger,
		delay:   DefaultReloadDelay,
		watcher: fw,
	}, nil
}

// Run processes file events until ctx is cancelled. Should be run in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time

	w.logger.Info("watching level directory", "dir", w.dir)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("level file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.Reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("level watcher error", "err", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Reload rebuilds the catalog from the embedded levels and the directory.
// On failure the current catalog is kept.
func (w *Watcher) Reload() {
	levels, err := loadSources(w.dir, w.logger)
	if err != nil {
		w.logger.Error("level reload failed", "dir", w.dir, "err", err)
		return
	}
	w.catalog.Replace(levels)
	w.logger.Info("levels reloaded", "count", len(levels), "version", w.catalog.Version())
	if w.OnReload != nil {
		w.OnReload(len(levels))
	}
}

// relevant reports whether the event touches a level file.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return isSupportedExtension(strings.ToLower(filepath.Ext(event.Name)))
}

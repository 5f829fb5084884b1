// Package watcher reports changes to a filesystem layout catalog with debouncing.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bigdbm/extractreg/internal/log"
)

// Watcher monitors a layouts root and sends the ids of layouts whose
// partition directory changed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	prefix    string
	debounce  time.Duration
	onChange  chan []string
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	Root        string // layouts root holding <prefix><id> directories
	Prefix      string // partition directory prefix, e.g. "extractlayoutid="
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(root, prefix string) Config {
	return Config{
		Root:        root,
		Prefix:      prefix,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a new layouts watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      filepath.Clean(cfg.Root),
		prefix:    cfg.Prefix,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan []string, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the root and every existing partition directory.
// Returns a channel that receives the sorted ids of changed layouts.
func (w *Watcher) Start() (<-chan []string, error) {
	if err := w.fsWatcher.Add(w.root); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.root, err)
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", w.root, err)
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), w.prefix) {
			w.watchPartition(filepath.Join(w.root, e.Name()))
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) watchPartition(dir string) {
	if err := w.fsWatcher.Add(dir); err != nil {
		log.Warn(log.CatLayout, "cannot watch layout directory", "dir", dir, "error", err)
	}
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending = make(map[string]struct{})
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			id, isPartition := w.layoutID(event.Name)
			if id == "" {
				continue
			}
			if isPartition && event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.watchPartition(event.Name)
				}
			}
			pending[id] = struct{}{}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			timer = nil
			if len(pending) == 0 {
				continue
			}
			ids := make([]string, 0, len(pending))
			for id := range pending {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			// Keep the batch if the previous one has not been consumed yet.
			select {
			case w.onChange <- ids:
				pending = make(map[string]struct{})
			default:
				timer = time.NewTimer(w.debounce)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatLayout, "layout watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// layoutID maps a path under root to the layout it belongs to. isPartition
// reports whether path is the partition directory itself.
func (w *Watcher) layoutID(path string) (id string, isPartition bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	if !strings.HasPrefix(parts[0], w.prefix) {
		return "", false
	}
	return strings.TrimPrefix(parts[0], w.prefix), len(parts) == 1
}

// Package watcher monitors a boards directory and migrates changed files.
//
// Because the migration is idempotent and clean files are never rewritten,
// the write triggered by a migration settles after one extra no-op pass.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ludos1978/lexera/internal/atomicfile"
	"github.com/ludos1978/lexera/internal/boards"
	"github.com/ludos1978/lexera/internal/rewrite"
)

// Watcher monitors a directory for changes and migrates touched board files.
type Watcher struct {
	root string

	debounceDelay time.Duration
	debug         bool

	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	mu        sync.Mutex

	onMigrate func(path string, changes []rewrite.LineChange, err error)
}

// Config holds configuration options for the Watcher.
type Config struct {
	Root          string
	DebounceDelay time.Duration // Default: 100ms
	Debug         bool
	OnMigrate     func(path string, changes []rewrite.LineChange, err error) // Optional callback
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root path is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}

	return &Watcher{
		root:          cfg.Root,
		debounceDelay: debounce,
		debug:         cfg.Debug,
		pending:       make(map[string]time.Time),
		onMigrate:     cfg.OnMigrate,
	}, nil
}

// Start begins watching the directory for file changes.
// It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	w.logDebug("Watching: %s", w.root)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// MigrateFile rewrites a single board file in place.
// This can be called directly without starting the watcher.
func (w *Watcher) MigrateFile(path string) ([]rewrite.LineChange, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.root, path)
	}
	if !boards.IsMarkdown(path) || w.shouldIgnore(path) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	newContent, changes := rewrite.Content(string(content))
	if len(changes) == 0 {
		return nil, nil
	}

	if err := atomicfile.WriteFile(path, []byte(newContent), 0); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return changes, nil
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !boards.IsMarkdown(path) {
		// But watch new directories
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.addWatchRecursive(path)
			}
		}
		return
	}

	if w.shouldIgnore(path) {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	if event.Op&fsnotify.Write != 0 || event.Op&fsnotify.Create != 0 {
		w.scheduleMigrate(path)
	}
}

// scheduleMigrate adds a file to the pending queue with debouncing.
func (w *Watcher) scheduleMigrate(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now()
}

// processDebounced processes pending files after the debounce delay.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending migrates files whose debounce delay has elapsed.
func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()
	ready := make([]string, 0)

	for path, scheduledAt := range w.pending {
		if now.Sub(scheduledAt) >= w.debounceDelay {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		changes, err := w.MigrateFile(path)
		if w.onMigrate != nil && (err != nil || len(changes) > 0) {
			w.onMigrate(path, changes, err)
		}
		if err != nil {
			w.logDebug("Failed to migrate %s: %v", path, err)
		} else if len(changes) > 0 {
			w.logDebug("Migrated: %s (%d changes)", path, len(changes))
		}
	}
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if w.shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path sits under an ignored directory.
// Same rule as board discovery: hidden directories and node_modules are out.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts[:len(parts)-1] {
		if strings.HasPrefix(part, ".") || part == "node_modules" {
			return true
		}
	}
	return false
}

// shouldIgnoreDir returns true if the directory should not be watched.
// The root itself is always watched, even when its own name is hidden.
func (w *Watcher) shouldIgnoreDir(path string) bool {
	if path == w.root {
		return false
	}
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || base == "node_modules"
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[lexera-watch] "+format+"\n", args...)
	}
}

// Package watch reports changes to .sql files under a path.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Config holds watcher configuration.
type Config struct {
	// Path is a .sql file or a directory watched recursively.
	Path string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Watch calls onChange with the path of every .sql file that is written or
// created, until ctx is cancelled. Bursts of events for the same file are
// coalesced. onChange runs on a timer goroutine; calls for one file never
// overlap but calls for different files may.
func Watch(ctx context.Context, cfg Config, onChange func(path string)) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	info, err := os.Stat(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to stat watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	single := ""
	if info.IsDir() {
		if err := watchDirRecursive(watcher, cfg.Path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Path, err)
		}
	} else {
		// watch the parent so editors that replace the file are seen
		single = filepath.Clean(cfg.Path)
		if err := watcher.Add(filepath.Dir(single)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Path, err)
		}
	}
	logger.Debug("watching for changes", "path", cfg.Path)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if single != "" && name != single {
				continue
			}
			if filepath.Ext(name) != ".sql" {
				if event.Op&fsnotify.Create != 0 && info.IsDir() {
					if st, err := os.Stat(name); err == nil && st.IsDir() {
						_ = watchDirRecursive(watcher, name)
					}
				}
				continue
			}

			mu.Lock()
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(debounce, func() {
				if ctx.Err() != nil {
					return
				}
				logger.Debug("file changed", "file", name)
				onChange(name)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

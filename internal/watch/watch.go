// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch reports changes to the directories mirrored by directory
// sets.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a fixed list of directories, non-recursively, and
// delivers debounced batches of changed directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	dirs     []string
}

// New starts watching dirs. A debounce of zero delivers every event batch
// as soon as the event queue is drained.
func New(dirs []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Watcher{watcher: fw, debounce: debounce, logger: logger}
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		if err := fw.Add(dir); err != nil {
			// directories that vanished are reported by the rescan instead
			logger.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		w.dirs = append(w.dirs, dir)
	}
	return w, nil
}

// Dirs returns the directories being watched.
func (w *Watcher) Dirs() []string {
	return slices.Clone(w.dirs)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers changed directories to fn until ctx is done or fn returns
// an error. Events within the debounce window are merged into one call.
func (w *Watcher) Run(ctx context.Context, fn func(dirs []string) error) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			dir := w.owner(event.Name)
			if dir == "" {
				continue
			}
			w.logger.Debug("directory changed", "dir", dir, "op", event.Op.String())
			pending[dir] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			dirs := make([]string, 0, len(pending))
			for dir := range pending {
				dirs = append(dirs, dir)
			}
			slices.Sort(dirs)
			clear(pending)
			if err := fn(dirs); err != nil {
				return err
			}
		}
	}
}

// owner returns the watched directory an event path belongs to.
func (w *Watcher) owner(path string) string {
	path = filepath.Clean(path)
	if slices.Contains(w.dirs, path) {
		return path
	}
	if parent := filepath.Dir(path); slices.Contains(w.dirs, parent) {
		return parent
	}
	return ""
}

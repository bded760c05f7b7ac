// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jcastrom/dedupetv/internal/log"
)

const debounceDelay = 500 * time.Millisecond

// Watcher re-runs a callback whenever a watched source file changes.
// Rapid bursts of events (editors, partial downloads) collapse into a
// single run through a debounce timer.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(ctx context.Context)
}

// NewWatcher starts watching the given paths. The callback runs from the
// watcher goroutine after the debounce window expires.
func NewWatcher(paths []string, onChange func(ctx context.Context)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for _, p := range paths {
		if err := fs.Add(p); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("watch %q: %w", p, err)
		}
	}
	return &Watcher{fs: fs, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced change events.
func (w *Watcher) Run(ctx context.Context) {
	logger := log.WithComponent("jobs")
	var debounce *time.Timer

	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
		_ = w.fs.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("event", "watcher.stopped").Msg("source watcher stopped")
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Write and Create cover in-place edits and replace-by-rename.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().
				Str("event", "watcher.file_changed").
				Str("path", event.Name).
				Str("op", event.Op.String()).
				Msg("source file changed")

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				w.onChange(ctx)
			})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Error().
				Err(err).
				Str("event", "watcher.error").
				Msg("source watcher error")
		}
	}
}

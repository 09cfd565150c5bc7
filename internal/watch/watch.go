// Package watch re-triggers inheritance when the active profile changes.
//
// The watcher observes the global storage directory, not settings files:
// applying inheritance writes into the same tree being watched, so the
// re-trigger guard is a comparison of the previously observed active-profile
// name against the newly resolved one. Content-level events that leave the
// active profile unchanged are ignored, which is what keeps the watcher from
// feeding on its own writes.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ruminaider/profile-inherit/internal/paths"
	"github.com/ruminaider/profile-inherit/internal/storage"
)

// debounceDelay coalesces the burst of events an editor emits per save.
const debounceDelay = 300 * time.Millisecond

// Watcher watches for profile switches and invokes a callback with the new
// active profile name. Invocations run on the watcher goroutine, one at a
// time.
type Watcher struct {
	userDir  string
	logger   zerolog.Logger
	onSwitch func(active string)

	mu      sync.Mutex
	running bool

	fsw        *fsnotify.Watcher
	stopCh     chan struct{}
	doneCh     chan struct{}
	lastActive string
}

// New creates a Watcher for the given user data directory. onSwitch is
// called with the new active profile name whenever it differs from the last
// observed one.
func New(userDir string, logger zerolog.Logger, onSwitch func(active string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		userDir:  userDir,
		logger:   logger,
		onSwitch: onSwitch,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start records the current active profile and begins watching. Non-blocking;
// the watch loop runs until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.lastActive = storage.Read(w.userDir, w.logger).ActiveProfileName()

	dir := paths.GlobalStorageDir(w.userDir)
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn().Str("dir", dir).Err(err).Msg("could not watch global storage dir")
	} else {
		w.logger.Debug().Str("dir", dir).Str("active", w.lastActive).Msg("watching for profile switches")
	}

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watch error")
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(debounceDelay)
		case <-debounce.C:
			w.checkActiveProfile()
		}
	}
}

// checkActiveProfile re-resolves the active profile and fires the callback
// when its identity changed.
func (w *Watcher) checkActiveProfile() {
	active := storage.Read(w.userDir, w.logger).ActiveProfileName()
	if active == w.lastActive {
		return
	}

	w.logger.Info().Str("from", w.lastActive).Str("to", active).Msg("active profile changed")
	w.lastActive = active
	w.onSwitch(active)
}

package almanac

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sync"
	"time"
)

// Watch timing defaults.
const (
	MinPollInterval     = 100 * time.Millisecond // Hard floor for file stat polling
	DefaultPollInterval = time.Second            // Standard file monitoring frequency
	DefaultDebounce     = 500 * time.Millisecond // File change coalescence period
)

// WatchOptions configures local rc file watching behavior.
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms).
	PollInterval time.Duration

	// Debounce duration to avoid rapid reloads.
	Debounce time.Duration
}

// DefaultWatchOptions returns sensible defaults for file watching.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: DefaultPollInterval,
		Debounce:     DefaultDebounce,
	}
}

// watcher polls the local rc file and re-applies its contribution through
// the resolver when the file changes.
type watcher struct {
	mu            sync.Mutex
	ctx           context.Context
	cancel        context.CancelFunc
	opts          WatchOptions
	filePath      string
	section       string
	lastModTime   time.Time
	lastSize      int64
	ch            chan string
	closed        bool
	debounceTimer *time.Timer
}

// Watch begins polling the local rc file of the most recent resolution
// pass and returns a channel that receives the names of options whose
// values change on reload. Reloads are funneled through the resolver's
// coercion contract, so a malformed or ill-typed edit never corrupts
// resolved state. The returned stop function terminates watching and
// closes the channel.
//
// Watch fails if no resolution pass has configured a local rc file yet.
func (a *Almanac) Watch(opts WatchOptions) (<-chan string, func(), error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.resolved || a.opts.LocalFile == "" {
		return nil, nil, fmt.Errorf("no local rc file configured to watch")
	}
	if a.watcher != nil {
		return nil, nil, fmt.Errorf("already watching %s", a.watcher.filePath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		filePath: a.opts.LocalFile,
		section:  a.opts.Section,
		ch:       make(chan string, 16),
	}
	if info, err := os.Stat(w.filePath); err == nil {
		w.lastModTime = info.ModTime()
		w.lastSize = info.Size()
	}
	a.watcher = w

	go w.watchLoop(a)

	stop := func() {
		a.mutex.Lock()
		if a.watcher == w {
			a.watcher = nil
		}
		a.mutex.Unlock()
		w.stop()
	}
	return w.ch, stop, nil
}

// IsWatching reports whether a watcher is active.
func (a *Almanac) IsWatching() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.watcher != nil
}

// watchLoop is the main file watching loop.
func (w *watcher) watchLoop(a *Almanac) {
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.closed = true
			close(w.ch)
			w.mu.Unlock()
			return
		case <-ticker.C:
			w.checkAndReload(a)
		}
	}
}

// checkAndReload checks if the file changed and schedules a reload.
func (w *watcher) checkAndReload(a *Almanac) {
	info, err := os.Stat(w.filePath)
	if err != nil {
		return
	}
	if info.ModTime().Equal(w.lastModTime) && info.Size() == w.lastSize {
		return
	}

	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()

	// Debounce rapid successive edits.
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
		w.performReload(a)
	})
	w.mu.Unlock()
}

// performReload re-reads the file, applies its candidates to the local
// file source slot, and notifies subscribers of changed option names.
func (w *watcher) performReload(a *Almanac) {
	select {
	case <-w.ctx.Done():
		return
	default:
	}

	cands, err := readRCFile(w.filePath, w.section)
	if err != nil {
		a.mutex.Lock()
		a.warnf("reload of %s failed: %v", w.filePath, err)
		a.mutex.Unlock()
		return
	}

	oldValues := a.Snapshot()
	a.apply(SourceLocalFile, cands)
	newValues := a.Snapshot()

	for name, newVal := range newValues {
		if !reflect.DeepEqual(oldValues[name], newVal) {
			w.notify(name)
		}
	}
}

// notify sends a change notification without blocking.
func (w *watcher) notify(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.ch <- name:
	default:
		// Subscriber not keeping up; drop.
	}
}

// stop terminates the watcher.
func (w *watcher) stop() {
	w.cancel()
}

package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CheckFunc performs a single poll. Returning true marks the watched job as
// finished and stops the watcher; errors are reported but never stop it.
type CheckFunc func(ctx context.Context) (bool, error)

// Watcher runs a CheckFunc on a fixed interval until the check reports
// completion or the watcher is stopped. At most one loop is active per
// watcher.
type Watcher struct {
	name     string
	interval time.Duration
	check    CheckFunc
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewWatcher builds a watcher around the provided check.
func NewWatcher(name string, interval time.Duration, check CheckFunc, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		name:     name,
		interval: interval,
		check:    check,
		logger:   logger,
	}
}

// Start launches the polling loop. It fails if a loop is already active.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher %s already running", w.name)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.loop(ctx, w.done)
	w.logger.Sugar().Infow("watcher started", "watcher", w.name, "interval", w.interval)
	return nil
}

// Stop cancels the loop and waits for it to exit. Safe to call when idle.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	done := w.done
	w.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether a polling loop is currently active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Done exposes the completion channel of the current loop, or nil when idle.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

func (w *Watcher) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Sugar().Infow("watcher cancelled", "watcher", w.name)
			return
		case <-ticker.C:
			finished, err := w.check(ctx)
			if err != nil {
				// Transient poll failures keep the loop alive; only an
				// explicit completion signal ends it.
				w.logger.Sugar().Warnw("poll failed", "watcher", w.name, "error", err)
				continue
			}
			if finished {
				w.logger.Sugar().Infow("watcher finished", "watcher", w.name)
				return
			}
		}
	}
}

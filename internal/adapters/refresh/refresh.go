// Package refresh serializes recomputation. Mutations poke a trigger; a
// single background loop coalesces each burst of pokes into one atomic
// evaluation pass over a fresh snapshot. There is never more than one
// pass in flight, which is what keeps partial updates impossible.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

const defaultDebounce = 250 * time.Millisecond

// Option applies a configuration option to the Trigger.
type Option func(*Trigger)

// WithDebounce sets how long the loop waits after a poke for further edits
// before running the pass.
func WithDebounce(d time.Duration) Option {
	return func(t *Trigger) {
		if d > 0 {
			t.debounce = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(t *Trigger) {
		if log != nil {
			t.log = log
		}
	}
}

// Trigger owns the background recompute loop.
type Trigger struct {
	run      func(ctx context.Context)
	debounce time.Duration
	log      logger.Logger

	notify  chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewTrigger creates a trigger around run, which must perform one complete
// evaluation pass when called.
func NewTrigger(run func(ctx context.Context), opts ...Option) *Trigger {
	t := &Trigger{
		run:      run,
		debounce: defaultDebounce,
		notify:   make(chan struct{}, 1),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start launches the loop. It exits when ctx is cancelled or Stop is called.
func (t *Trigger) Start(ctx context.Context) {
	if t.log == nil {
		t.log = logger.Get()
	}
	go t.loop(ctx)
}

// Poke signals that the result set changed. Non-blocking: a poke while one
// is already pending folds into it.
func (t *Trigger) Poke() {
	select {
	case t.notify <- struct{}{}:
	default:
	}
}

// Stop terminates the loop.
func (t *Trigger) Stop() {
	t.once.Do(func() { close(t.stopped) })
}

func (t *Trigger) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stopped:
			return
		case <-t.notify:
		}

		// Let a burst of edits settle before recomputing.
		timer := time.NewTimer(t.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-t.stopped:
			timer.Stop()
			return
		case <-timer.C:
		}

		start := time.Now()
		t.run(ctx)
		metrics.RecordRefreshPass(float64(time.Since(start).Milliseconds()))
		t.log.Debug(ctx, "refresh pass complete",
			logger.Int("duration_ms", int(time.Since(start).Milliseconds())),
		)
	}
}

// Package dedupe tracks competition ids already accepted by ingestion, so a
// replayed POST does not double-insert a result. Bounded: the oldest entries
// fall off once the cap is reached, which is fine for an idempotency window.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen competition ids for at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets an id, allowing a retry after a failed insert.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of ids currently tracked.
	Size() int
}

// Option applies a configuration option to the ring deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of remembered ids.
func WithMaxSize(n int) Option {
	return func(d *ringDeduper) {
		if n > 0 {
			d.maxSize = n
		}
	}
}

// ringDeduper keeps seen ids in a fixed-size ring: when full, recording a
// new id evicts the oldest one. FIFO eviction matches the ingestion pattern
// where replays arrive shortly after the original request.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

const defaultMaxSize = 4096

// NewRingDeduper creates a bounded in-memory deduper.
func NewRingDeduper(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.ring = make([]string, d.maxSize)
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if old := d.ring[d.next]; old != "" {
		delete(d.seen, old)
	}
	d.ring[d.next] = id
	d.next = (d.next + 1) % d.maxSize
	d.seen[id] = struct{}{}
	return false
}

func (d *ringDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	for i, v := range d.ring {
		if v == id {
			d.ring[i] = ""
			break
		}
	}
}

func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

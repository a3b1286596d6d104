// Package cache memoizes full evaluation passes keyed by a content
// fingerprint of the result-set snapshot. The cache is not a correctness
// boundary: losing it only costs a recompute, never a different answer.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/podium/internal/domain/achievement"
	"github.com/okian/podium/pkg/metrics"
)

const defaultTTL = 5 * time.Minute

// ComputeFunc produces a fresh evaluation for a snapshot.
type ComputeFunc func(ctx context.Context) (achievement.Evaluation, error)

// ResultCache memoizes evaluations with a TTL and deduplicates concurrent
// identical computations: callers racing on the same fingerprint await one
// in-flight pass instead of each running their own.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[Fingerprint]entry

	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group
}

type entry struct {
	value   achievement.Evaluation
	expires time.Time
}

// Option applies a configuration option to the ResultCache.
type Option func(*ResultCache)

// WithTTL sets the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *ResultCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithNow overrides the clock. Tests use it to force expiry.
func WithNow(now func() time.Time) Option {
	return func(c *ResultCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewResultCache creates a cache with a default TTL of five minutes.
func NewResultCache(opts ...Option) *ResultCache {
	c := &ResultCache{
		entries: make(map[Fingerprint]entry),
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached evaluation for fp, or runs compute exactly
// once per fingerprint no matter how many callers arrive concurrently.
// A failed compute caches nothing.
func (c *ResultCache) GetOrCompute(ctx context.Context, fp Fingerprint, compute ComputeFunc) (achievement.Evaluation, error) {
	if ev, ok := c.lookup(fp); ok {
		metrics.RecordCacheHit()
		return ev, nil
	}
	metrics.RecordCacheMiss()

	v, err, _ := c.group.Do(fp.String(), func() (any, error) {
		// Another waiter may have stored the value while we queued.
		if ev, ok := c.lookup(fp); ok {
			return ev, nil
		}
		ev, err := compute(ctx)
		if err != nil {
			return achievement.Evaluation{}, fmt.Errorf("evaluation pass: %w", err)
		}
		c.store(fp, ev)
		return ev, nil
	})
	if err != nil {
		return achievement.Evaluation{}, err
	}
	return v.(achievement.Evaluation), nil
}

// Invalidate drops every entry. Ingestion calls it on any result-set edit;
// it must never be inferred from call timing.
func (c *ResultCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[Fingerprint]entry)
	c.mu.Unlock()
	metrics.RecordCacheInvalidation()
}

// Len returns the number of live entries, counting expired ones that have
// not been touched yet.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResultCache) lookup(fp Fingerprint) (achievement.Evaluation, bool) {
	c.mu.RLock()
	e, ok := c.entries[fp]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return achievement.Evaluation{}, false
	}
	return e.value, true
}

func (c *ResultCache) store(fp Fingerprint, ev achievement.Evaluation) {
	c.mu.Lock()
	c.entries[fp] = entry{value: ev, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

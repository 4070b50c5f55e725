package observability

import (
	"context"
	"sync"
	"time"
)

// Counters tallies every hook event. The zero value is ready to use.
type Counters struct {
	mu sync.Mutex
	s  Stats
}

// Stats is a point-in-time copy of Counters.
type Stats struct {
	Requests    int
	HTTPErrors  int // transport failures plus responses >= 400
	RequestTime time.Duration

	CacheHits   int
	CacheMisses int
	CacheBytes  int

	Runs     int
	Applied  int
	Failures int
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// KeyVals flattens s for a structured logger.
func (s Stats) KeyVals() []any {
	return []any{
		"requests", s.Requests, "http_errors", s.HTTPErrors,
		"request_time", s.RequestTime.Round(time.Millisecond),
		"cache_hits", s.CacheHits, "cache_misses", s.CacheMisses,
		"runs", s.Runs, "applied", s.Applied, "failed_runs", s.Failures,
	}
}

func (c *Counters) add(f func(*Stats)) {
	c.mu.Lock()
	f(&c.s)
	c.mu.Unlock()
}

func (c *Counters) OnRunStart(context.Context, string, int) {
	c.add(func(s *Stats) { s.Runs++ })
}

func (c *Counters) OnCommandApplied(context.Context, string, int64, time.Duration) {
	c.add(func(s *Stats) { s.Applied++ })
}

func (c *Counters) OnRunComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err != nil {
		c.add(func(s *Stats) { s.Failures++ })
	}
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.add(func(s *Stats) { s.CacheHits++ })
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.add(func(s *Stats) { s.CacheMisses++ })
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.add(func(s *Stats) { s.CacheBytes += size })
}

func (c *Counters) OnRequest(context.Context, string, string, string) {
	c.add(func(s *Stats) { s.Requests++ })
}

func (c *Counters) OnResponse(_ context.Context, _, _, _ string, status int, d time.Duration) {
	c.add(func(s *Stats) {
		s.RequestTime += d
		if status >= 400 {
			s.HTTPErrors++
		}
	})
}

func (c *Counters) OnError(context.Context, string, string, string, error) {
	c.add(func(s *Stats) { s.HTTPErrors++ })
}

var (
	_ CommitHooks = (*Counters)(nil)
	_ CacheHooks  = (*Counters)(nil)
	_ HTTPHooks   = (*Counters)(nil)
)

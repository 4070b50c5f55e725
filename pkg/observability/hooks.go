// Package observability lets callers watch commit runs, cache traffic and
// gallery requests without the libraries depending on a metrics backend.
//
// The commit runner, the caches and the gallery client report to whatever
// is installed; by default that is nothing. Install takes any value and
// registers it for every hook interface it implements:
//
//	c := &observability.Counters{}
//	observability.Install(c)
//	defer observability.Reset()
//	// ... run commands ...
//	log.Debug("stats", c.Snapshot().KeyVals()...)
package observability

import (
	"context"
	"sync"
	"time"
)

// CommitHooks sees batch commit runs.
type CommitHooks interface {
	OnRunStart(ctx context.Context, runID string, commands int)
	OnCommandApplied(ctx context.Context, runID string, img int64, duration time.Duration)
	OnRunComplete(ctx context.Context, runID string, applied int, duration time.Duration, err error)
}

// CacheHooks sees cache lookups and writes. backend is "file", "redis"
// or "null".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
}

// HTTPHooks sees requests to the gallery server. OnError is only called
// when no response arrived at all.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, status int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

type noop struct{}

func (noop) OnRunStart(context.Context, string, int)                                {}
func (noop) OnCommandApplied(context.Context, string, int64, time.Duration)         {}
func (noop) OnRunComplete(context.Context, string, int, time.Duration, error)       {}
func (noop) OnCacheHit(context.Context, string)                                     {}
func (noop) OnCacheMiss(context.Context, string)                                    {}
func (noop) OnCacheSet(context.Context, string, int)                                {}
func (noop) OnRequest(context.Context, string, string, string)                      {}
func (noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (noop) OnError(context.Context, string, string, string, error)                 {}

var registry = struct {
	sync.RWMutex
	commit CommitHooks
	cache  CacheHooks
	http   HTTPHooks
}{commit: noop{}, cache: noop{}, http: noop{}}

// Install registers h for each hook interface it implements and reports
// whether it implemented any.
func Install(h any) bool {
	registry.Lock()
	defer registry.Unlock()
	ok := false
	if c, is := h.(CommitHooks); is {
		registry.commit, ok = c, true
	}
	if c, is := h.(CacheHooks); is {
		registry.cache, ok = c, true
	}
	if c, is := h.(HTTPHooks); is {
		registry.http, ok = c, true
	}
	return ok
}

// Reset uninstalls everything.
func Reset() {
	registry.Lock()
	registry.commit, registry.cache, registry.http = noop{}, noop{}, noop{}
	registry.Unlock()
}

// Commit returns the installed commit hooks.
func Commit() CommitHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.commit
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

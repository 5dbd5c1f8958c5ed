package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// maxEntries bounds the fallback map; expired entries are swept before the
// bound is enforced so the map cannot grow without limit.
const maxEntries = 100_000

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the in-process fallback backend. It does not survive a
// restart and is not shared across instances; production deployments should
// run the redis backend.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	rules   map[Action]Rule
	now     func() time.Time
}

// NewMemoryLimiter creates the in-memory fallback limiter.
func NewMemoryLimiter(rules map[Action]Rule) *MemoryLimiter {
	if rules == nil {
		rules = DefaultRules
	}
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		rules:   rules,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Check(ctx context.Context, action Action, identity string) (Result, error) {
	rule, ok := l.rules[action]
	if !ok {
		return Result{}, fmt.Errorf("unknown rate limit action: %s", action)
	}

	key := fmt.Sprintf("%s:%s", action, identity)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.entries[key]
	if !exists || !entry.resetAt.After(now) {
		if len(l.entries) >= maxEntries {
			l.sweepLocked(now)
		}
		resetAt := now.Add(rule.Window)
		l.entries[key] = &memoryEntry{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Remaining: rule.Limit - 1, ResetAt: resetAt}, nil
	}

	if entry.count >= rule.Limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: entry.resetAt}, nil
	}

	entry.count++
	return Result{Allowed: true, Remaining: rule.Limit - entry.count, ResetAt: entry.resetAt}, nil
}

func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for key, entry := range l.entries {
		if !entry.resetAt.After(now) {
			delete(l.entries, key)
		}
	}
}

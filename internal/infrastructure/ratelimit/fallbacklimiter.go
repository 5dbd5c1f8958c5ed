package ratelimit

import (
	"context"
	"sync"

	"github.com/voidlabs/void/internal/shared/logger"
)

// FallbackLimiter delegates to the primary backend and degrades to the
// fallback when the primary errors, so a redis outage never blocks writes.
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	logger   logger.Interface
	warnOnce sync.Once
}

// NewFallbackLimiter wraps primary with fallback.
func NewFallbackLimiter(primary, fallback Limiter, logger logger.Interface) *FallbackLimiter {
	return &FallbackLimiter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (l *FallbackLimiter) Check(ctx context.Context, action Action, identity string) (Result, error) {
	result, err := l.primary.Check(ctx, action, identity)
	if err == nil {
		return result, nil
	}

	l.warnOnce.Do(func() {
		l.logger.Warnw("rate limiter degraded to in-memory fallback; counters are neither durable nor shared across instances",
			"error", err)
	})

	return l.fallback.Check(ctx, action, identity)
}

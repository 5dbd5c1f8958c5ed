package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkScript checks the counter before incrementing so a denied call never
// consumes quota. The window TTL starts on the identity's first permitted
// call, not on a global clock boundary.
var checkScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local limit = tonumber(ARGV[1])
if current >= limit then
  return {0, current, redis.call("PTTL", KEYS[1])}
end
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return {1, count, redis.call("PTTL", KEYS[1])}
`)

// RedisLimiter is the shared fixed-window counter backend.
type RedisLimiter struct {
	client *redis.Client
	rules  map[Action]Rule
}

// NewRedisLimiter creates a limiter backed by the given redis client.
func NewRedisLimiter(client *redis.Client, rules map[Action]Rule) *RedisLimiter {
	if rules == nil {
		rules = DefaultRules
	}
	return &RedisLimiter{client: client, rules: rules}
}

func (l *RedisLimiter) Check(ctx context.Context, action Action, identity string) (Result, error) {
	rule, ok := l.rules[action]
	if !ok {
		return Result{}, fmt.Errorf("unknown rate limit action: %s", action)
	}

	key := fmt.Sprintf("void-rl:%s:%s", action, identity)
	values, err := checkScript.Run(ctx, l.client, []string{key},
		rule.Limit, rule.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(values) != 3 {
		return Result{}, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}

	allowed := values[0] == 1
	count := int(values[1])
	ttl := time.Duration(values[2]) * time.Millisecond
	if ttl < 0 {
		ttl = rule.Window
	}

	remaining := rule.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   allowed,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}

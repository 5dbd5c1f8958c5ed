// Package ratelimit enforces per-action, per-identity quotas over a fixed
// one-hour window anchored at each identity's first call.
package ratelimit

import (
	"context"
	"time"
)

// Action names a rate-limited operation.
type Action string

const (
	ActionCreateSecret Action = "create-secret"
	ActionPullSecret   Action = "pull-secret"
	ActionReplySecret  Action = "reply-secret"
)

// Rule is the quota for one action.
type Rule struct {
	Limit  int
	Window time.Duration
}

// DefaultRules mirrors the product quotas: create 5/h, pull 30/h, reply 3/h.
var DefaultRules = map[Action]Rule{
	ActionCreateSecret: {Limit: 5, Window: time.Hour},
	ActionPullSecret:   {Limit: 30, Window: time.Hour},
	ActionReplySecret:  {Limit: 3, Window: time.Hour},
}

// Result reports one quota decision. ResetAt is when the identity's current
// window expires; on deny the counter is left unchanged.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is the quota check interface. Implementations must increment the
// counter on permit only.
type Limiter interface {
	Check(ctx context.Context, action Action, identity string) (Result, error)
}
